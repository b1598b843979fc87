package topology

import (
	"errors"
	"slices"
	"testing"
)

func TestNewLocal(t *testing.T) {
	l, err := NewLocal(2, 4, []int{3, 0})
	if err != nil {
		t.Fatal(err)
	}
	if l.Rank() != 2 || l.Size() != 4 {
		t.Fatalf("expected rank 2 of 4, actual %d of %d", l.Rank(), l.Size())
	}
	if !slices.Equal(l.Neighbors(), []int{3, 0}) {
		t.Fatalf("expected neighbours [3 0], actual %v", l.Neighbors())
	}
	if SlotOf(l, 0) != 1 || SlotOf(l, 1) != -1 {
		t.Fatalf("unexpected slots %d %d", SlotOf(l, 0), SlotOf(l, 1))
	}
	ns := l.Neighbors()
	ns[0] = 1
	if l.Neighbors()[0] != 3 {
		t.Fatal("Neighbors exposed internal state")
	}
}

func TestNewLocalInvalid(t *testing.T) {
	cases := []struct {
		rank, size int
		neighbors  []int
	}{
		{0, 0, nil},
		{4, 4, nil},
		{0, 4, []int{0}},
		{0, 4, []int{1, 1}},
		{0, 4, []int{7}},
	}
	for _, c := range cases {
		if _, err := NewLocal(c.rank, c.size, c.neighbors); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%+v: expected ErrInvalid, actual %v", c, err)
		}
	}
}

func TestNewGraphAsymmetric(t *testing.T) {
	_, err := NewGraph([][]int{{1}, {}})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, actual %v", err)
	}
}

func TestComplete(t *testing.T) {
	g, err := Complete(4)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.Neighbors(2), []int{0, 1, 3}) {
		t.Fatalf("expected [0 1 3], actual %v", g.Neighbors(2))
	}
	if len(g.At(0).Neighbors()) != 3 || g.At(0).Size() != 4 {
		t.Fatalf("unexpected view %+v", g.At(0))
	}
}

func TestRing(t *testing.T) {
	g, err := Ring(5)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.Neighbors(0), []int{4, 1}) {
		t.Fatalf("expected [4 1], actual %v", g.Neighbors(0))
	}
	two, err := Ring(2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(two.Neighbors(1), []int{0}) {
		t.Fatalf("expected [0], actual %v", two.Neighbors(1))
	}
	one, err := Ring(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(one.Neighbors(0)) != 0 {
		t.Fatalf("expected no neighbours, actual %v", one.Neighbors(0))
	}
	if _, err := Ring(0); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, actual %v", err)
	}
}

func TestTorus(t *testing.T) {
	g, err := Torus(3, 4)
	if err != nil {
		t.Fatal(err)
	}
	if g.Size() != 12 {
		t.Fatalf("expected 12 ranks, actual %d", g.Size())
	}
	// rank 5 sits at row 1, column 1
	if !slices.Equal(g.Neighbors(5), []int{1, 9, 4, 6}) {
		t.Fatalf("expected [1 9 4 6], actual %v", g.Neighbors(5))
	}
	// rank 0 wraps in both directions
	if !slices.Equal(g.Neighbors(0), []int{8, 4, 3, 1}) {
		t.Fatalf("expected [8 4 3 1], actual %v", g.Neighbors(0))
	}
}

func TestTorusSmall(t *testing.T) {
	g, err := Torus(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(g.Neighbors(0), []int{2, 1}) {
		t.Fatalf("expected [2 1], actual %v", g.Neighbors(0))
	}
	line, err := Torus(1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(line.Neighbors(1), []int{0, 2}) {
		t.Fatalf("expected [0 2], actual %v", line.Neighbors(1))
	}
	if _, err := Torus(0, 3); !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, actual %v", err)
	}
}

func TestRanks(t *testing.T) {
	g, _ := Complete(3)
	if !slices.Equal(Ranks(g.At(1)), []int{0, 1, 2}) {
		t.Fatalf("expected [0 1 2], actual %v", Ranks(g.At(1)))
	}
}
