// Package displacement locates variable-size payloads inside a flat buffer.
//
// A length table says how many bytes each slot holds; the displacement table
// derived from it says where each slot starts. The same tables are computed on
// the sending and the receiving side, so the bytes themselves never carry any
// framing.
package displacement

import (
	"errors"
	"fmt"
	"math"
)

// MaxTotal is the largest buffer Bounded accepts.
const MaxTotal = math.MaxInt32

var (
	ErrShape          = errors.New("length and displacement tables differ in size")
	ErrNegativeLength = errors.New("negative length")
	ErrOutOfRange     = errors.New("slot exceeds buffer")
	ErrTooLarge       = errors.New("buffer exceeds maximum size")
)

// Compute returns the exclusive prefix sum of lengths: out[0] is 0 and
// out[i] is out[i-1]+lengths[i-1].
func Compute(lengths []int) []int {
	displs := make([]int, len(lengths))
	sum := 0
	for i, l := range lengths {
		displs[i] = sum
		sum += l
	}
	return displs
}

// Total is the buffer size needed to hold every slot of lengths.
func Total(lengths []int) int {
	sum := 0
	for _, l := range lengths {
		sum += l
	}
	return sum
}

// Bounded is Total for length tables received from elsewhere. It fails on a
// negative length or once the sum would exceed MaxTotal.
func Bounded(lengths []int) (int, error) {
	sum := 0
	for i, l := range lengths {
		if l < 0 {
			return 0, fmt.Errorf("slot %d: %w %d", i, ErrNegativeLength, l)
		}
		if l > MaxTotal-sum {
			return 0, fmt.Errorf("slot %d: %w: %d bytes after %d", i, ErrTooLarge, l, sum)
		}
		sum += l
	}
	return sum, nil
}

// Validate checks that every slot described by lengths and displs fits in a
// buffer of size bytes.
func Validate(lengths, displs []int, size int) error {
	if len(lengths) != len(displs) {
		return fmt.Errorf("%w: %d lengths, %d displacements", ErrShape, len(lengths), len(displs))
	}
	for i, l := range lengths {
		if l < 0 {
			return fmt.Errorf("slot %d: %w %d", i, ErrNegativeLength, l)
		}
		if displs[i] < 0 || displs[i]+l > size {
			return fmt.Errorf("slot %d: %w: [%d, %d) in %d bytes", i, ErrOutOfRange, displs[i], displs[i]+l, size)
		}
	}
	return nil
}

// Slot returns the bytes of slot i. The result aliases buf.
func Slot(buf []byte, lengths, displs []int, i int) []byte {
	start := displs[i]
	return buf[start : start+lengths[i] : start+lengths[i]]
}
