package topology

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrMismatch is wrapped by transports when participants disagree on the
	// shape of the group or on the operation being run.
	ErrMismatch = errors.New("topology mismatch")
	ErrInvalid  = errors.New("invalid topology")
)

// Topology is the view a single participant has of its group.
type Topology interface {
	Rank() int
	Size() int
	// Neighbors returns the neighbour ranks in slot order.
	Neighbors() []int
}

// Local is a plain Topology value.
type Local struct {
	rank      int
	size      int
	neighbors []int
}

// NewLocal checks that rank and neighbors fit in a group of size
// participants, that no neighbour is repeated, and that rank is not its own
// neighbour.
func NewLocal(rank, size int, neighbors []int) (Local, error) {
	if size < 1 {
		return Local{}, fmt.Errorf("%w: group size %d", ErrInvalid, size)
	}
	if rank < 0 || rank >= size {
		return Local{}, fmt.Errorf("%w: rank %d outside [0, %d)", ErrInvalid, rank, size)
	}
	if err := checkNeighbors(rank, size, neighbors); err != nil {
		return Local{}, err
	}
	return Local{rank: rank, size: size, neighbors: slices.Clone(neighbors)}, nil
}

func (l Local) Rank() int { return l.rank }

func (l Local) Size() int { return l.size }

func (l Local) Neighbors() []int { return slices.Clone(l.neighbors) }

// SlotOf returns the slot of neighbor in t's neighbour list, or -1.
func SlotOf(t Topology, neighbor int) int {
	return slices.Index(t.Neighbors(), neighbor)
}

// Ranks returns 0..Size()-1.
func Ranks(t Topology) []int {
	ranks := make([]int, t.Size())
	for i := range ranks {
		ranks[i] = i
	}
	return ranks
}

func checkNeighbors(rank, size int, neighbors []int) error {
	seen := make(map[int]bool, len(neighbors))
	for _, n := range neighbors {
		if n < 0 || n >= size {
			return fmt.Errorf("%w: rank %d has neighbour %d outside [0, %d)", ErrInvalid, rank, n, size)
		}
		if n == rank {
			return fmt.Errorf("%w: rank %d is its own neighbour", ErrInvalid, rank)
		}
		if seen[n] {
			return fmt.Errorf("%w: rank %d lists neighbour %d twice", ErrInvalid, rank, n)
		}
		seen[n] = true
	}
	return nil
}
