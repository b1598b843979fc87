package codec

import (
	"fmt"

	"github.com/luca-patrignani/collective/displacement"
)

// Codec encodes and decodes a value of type T to and from a byte slice.
// Decode must reject input that is not exactly one encoding of a T.
type Codec[T any] interface {
	Encode(T) ([]byte, error)
	Decode([]byte) (T, error)
}

// EncodeBatch encodes every value independently and concatenates the results
// in input order. lengths[i] is the size of the encoding of values[i], so the
// sum of lengths is always len(buf).
func EncodeBatch[T any](c Codec[T], values []T) (buf []byte, lengths []int, err error) {
	parts := make([][]byte, len(values))
	lengths = make([]int, len(values))
	total := 0
	for i, v := range values {
		b, err := c.Encode(v)
		if err != nil {
			return nil, nil, fmt.Errorf("value %d: %w", i, err)
		}
		parts[i] = b
		lengths[i] = len(b)
		total += len(b)
	}
	buf = make([]byte, 0, total)
	for _, b := range parts {
		buf = append(buf, b...)
	}
	return buf, lengths, nil
}

// DecodeSlots decodes every slot of buf laid out by lengths and displs.
// Slot skip is left as the zero value; pass a negative skip to decode all of
// them. It returns nothing on the first failure.
func DecodeSlots[T any](c Codec[T], buf []byte, lengths, displs []int, skip int) ([]T, error) {
	if err := displacement.Validate(lengths, displs, len(buf)); err != nil {
		return nil, err
	}
	out := make([]T, len(lengths))
	for i := range lengths {
		if i == skip {
			continue
		}
		v, err := c.Decode(displacement.Slot(buf, lengths, displs, i))
		if err != nil {
			return nil, fmt.Errorf("slot %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}
