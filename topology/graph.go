package topology

import (
	"fmt"
	"slices"
)

// Graph holds the neighbour lists of every rank of a group.
type Graph struct {
	adj [][]int
}

// NewGraph builds a group of len(adj) ranks where adj[r] is the ordered
// neighbour list of rank r. The relation must be symmetric.
func NewGraph(adj [][]int) (*Graph, error) {
	size := len(adj)
	if size < 1 {
		return nil, fmt.Errorf("%w: empty group", ErrInvalid)
	}
	g := &Graph{adj: make([][]int, size)}
	for r, ns := range adj {
		if err := checkNeighbors(r, size, ns); err != nil {
			return nil, err
		}
		g.adj[r] = slices.Clone(ns)
	}
	for r, ns := range g.adj {
		for _, n := range ns {
			if !slices.Contains(g.adj[n], r) {
				return nil, fmt.Errorf("%w: rank %d lists %d but %d does not list %d", ErrInvalid, r, n, n, r)
			}
		}
	}
	return g, nil
}

func (g *Graph) Size() int { return len(g.adj) }

// Neighbors returns the neighbour list of rank.
func (g *Graph) Neighbors(rank int) []int {
	return slices.Clone(g.adj[rank])
}

// At returns the view of the participant with the given rank.
func (g *Graph) At(rank int) Local {
	return Local{rank: rank, size: len(g.adj), neighbors: slices.Clone(g.adj[rank])}
}

// Complete connects every rank to every other rank, in ascending order.
func Complete(n int) (*Graph, error) {
	adj := make([][]int, max(n, 0))
	for r := range adj {
		for o := 0; o < n; o++ {
			if o != r {
				adj[r] = append(adj[r], o)
			}
		}
	}
	return NewGraph(adj)
}

// Ring connects each rank to its predecessor and then its successor.
func Ring(n int) (*Graph, error) {
	adj := make([][]int, max(n, 0))
	for r := range adj {
		adj[r] = dedup(r, []int{(r - 1 + n) % n, (r + 1) % n})
	}
	return NewGraph(adj)
}

// Torus lays rows*cols ranks out row-major on a wrapping grid. Each rank's
// neighbours are, in order, the cells above, below, left and right of it;
// cells that coincide with the rank itself or with an earlier neighbour are
// left out, which only happens on grids narrower than three cells.
func Torus(rows, cols int) (*Graph, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: torus %dx%d", ErrInvalid, rows, cols)
	}
	adj := make([][]int, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			rank := r*cols + c
			adj[rank] = dedup(rank, []int{
				((r-1+rows)%rows)*cols + c,
				((r+1)%rows)*cols + c,
				r*cols + (c-1+cols)%cols,
				r*cols + (c+1)%cols,
			})
		}
	}
	return NewGraph(adj)
}

func dedup(self int, candidates []int) []int {
	out := make([]int, 0, len(candidates))
	for _, c := range candidates {
		if c != self && !slices.Contains(out, c) {
			out = append(out, c)
		}
	}
	return out
}
