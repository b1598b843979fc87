package codec

import "google.golang.org/protobuf/proto"

// Proto encodes protobuf messages. New must return a fresh, empty message
// for every call.
type Proto[T proto.Message] struct {
	New func() T
}

func NewProto[T proto.Message](newFn func() T) Proto[T] {
	return Proto[T]{New: newFn}
}

func (c Proto[T]) Encode(m T) ([]byte, error) {
	if !m.ProtoReflect().IsValid() {
		return nil, encodeErr[T](errNilValue)
	}
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(m)
	if err != nil {
		return nil, encodeErr[T](err)
	}
	return b, nil
}

// Decode accepts an empty payload, which is the encoding of a message with
// every field unset.
func (c Proto[T]) Decode(b []byte) (T, error) {
	m := c.New()
	if err := proto.Unmarshal(b, m); err != nil {
		var zero T
		return zero, decodeErr[T](len(b), err)
	}
	return m, nil
}
