package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
)

var errNull = errors.New("null for a type that cannot be nil")

// JSON encodes values with encoding/json.
type JSON[T any] struct{}

func (JSON[T]) Encode(v T) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, encodeErr[T](err)
	}
	return b, nil
}

// Decode rejects empty input, truncated values and bytes after the value. A
// JSON null is only accepted when T is a pointer, slice, map or interface.
func (JSON[T]) Decode(b []byte) (T, error) {
	var v T
	if len(b) == 0 {
		return v, decodeErr[T](0, ErrEmptyPayload)
	}
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) && !nillable[T]() {
		return v, decodeErr[T](len(b), errNull)
	}
	if err := json.Unmarshal(b, &v); err != nil {
		var zero T
		return zero, decodeErr[T](len(b), err)
	}
	return v, nil
}

func nillable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface:
		return true
	}
	return false
}
