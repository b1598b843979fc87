package collective_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/luca-patrignani/collective/memgroup"
	"github.com/luca-patrignani/collective/topology"
)

// runGroup drives fn on one goroutine per member of g and fails on the first
// error.
func runGroup(t *testing.T, g *topology.Graph, fn func(m *memgroup.Member) error) {
	t.Helper()
	members := memgroup.New(g, memgroup.WithTimeout(10*time.Second))
	fatal := make(chan error, len(members))
	for _, m := range members {
		go func() {
			if err := fn(m); err != nil {
				fatal <- fmt.Errorf("from member %d: %w", m.Rank(), err)
				return
			}
			fatal <- nil
		}()
	}
	for range members {
		if err := <-fatal; err != nil {
			t.Fatal(err)
		}
	}
}

func mustComplete(t *testing.T, n int) *topology.Graph {
	t.Helper()
	g, err := topology.Complete(n)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

type cell struct {
	X, Y  int
	Label string
}
