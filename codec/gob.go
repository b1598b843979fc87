package codec

import (
	"bytes"
	"encoding/gob"
)

// Gob encodes values with encoding/gob. Each payload is a self-contained
// stream carrying its own type description, so payloads can be decoded in
// any order and by any receiver.
type Gob[T any] struct{}

func (Gob[T]) Encode(v T) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(&v); err != nil {
		return nil, encodeErr[T](err)
	}
	return buf.Bytes(), nil
}

func (Gob[T]) Decode(b []byte) (T, error) {
	var v T
	if len(b) == 0 {
		return v, decodeErr[T](0, ErrEmptyPayload)
	}
	r := bytes.NewReader(b)
	if err := gob.NewDecoder(r).Decode(&v); err != nil {
		var zero T
		return zero, decodeErr[T](len(b), err)
	}
	if r.Len() != 0 {
		var zero T
		return zero, decodeErr[T](len(b), ErrTrailingData)
	}
	return v, nil
}
