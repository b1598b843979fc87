package collective

import (
	"iter"
	"slices"
)

// NeighborResult holds the values received in a neighbour exchange. Slot k
// holds the value sent by the k-th neighbour of the caller's topology; slots
// are not ranks.
type NeighborResult[T any] struct {
	neighbors []int
	values    []T
}

// Len is the number of neighbour slots.
func (r NeighborResult[T]) Len() int { return len(r.values) }

// Value returns the value received in slot.
func (r NeighborResult[T]) Value(slot int) T { return r.values[slot] }

// Neighbor returns the rank of the participant that filled slot.
func (r NeighborResult[T]) Neighbor(slot int) int { return r.neighbors[slot] }

// Values returns a copy of the received values in slot order.
func (r NeighborResult[T]) Values() []T { return slices.Clone(r.values) }

// Neighbors returns a copy of the neighbour ranks in slot order.
func (r NeighborResult[T]) Neighbors() []int { return slices.Clone(r.neighbors) }

// From returns the value sent by the neighbour with the given rank.
func (r NeighborResult[T]) From(rank int) (T, bool) {
	i := slices.Index(r.neighbors, rank)
	if i < 0 {
		var zero T
		return zero, false
	}
	return r.values[i], true
}

// All yields (neighbour rank, value) pairs in slot order.
func (r NeighborResult[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range r.values {
			if !yield(r.neighbors[i], v) {
				return
			}
		}
	}
}
