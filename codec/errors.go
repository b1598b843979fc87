package codec

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrSerialization   = errors.New("serialization failed")
	ErrDeserialization = errors.New("deserialization failed")
	ErrTrailingData    = errors.New("trailing data after value")
	ErrEmptyPayload    = errors.New("empty payload")

	errNilValue = errors.New("nil value")
)

// SerializationError reports a value that could not be encoded.
type SerializationError struct {
	Type string
	Err  error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("codec: cannot encode %s: %v", e.Type, e.Err)
}

func (e *SerializationError) Unwrap() []error {
	return []error{ErrSerialization, e.Err}
}

// DeserializationError reports a payload of Len bytes that does not hold a
// valid encoding of Type.
type DeserializationError struct {
	Type string
	Len  int
	Err  error
}

func (e *DeserializationError) Error() string {
	return fmt.Sprintf("codec: cannot decode %s from %d bytes: %v", e.Type, e.Len, e.Err)
}

func (e *DeserializationError) Unwrap() []error {
	return []error{ErrDeserialization, e.Err}
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

func encodeErr[T any](err error) error {
	return &SerializationError{Type: typeName[T](), Err: err}
}

func decodeErr[T any](n int, err error) error {
	return &DeserializationError{Type: typeName[T](), Len: n, Err: err}
}
