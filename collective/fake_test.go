package collective_test

import (
	"errors"

	"github.com/luca-patrignani/collective/topology"
)

var errLinkDown = errors.New("link down")

// fakeComm answers the fixed-size primitives with canned tables and fails
// whichever primitive err is set on.
type fakeComm struct {
	topology.Local
	lengths []int
	err     error
	calls   int
}

func (f *fakeComm) Gather(send int, root int) ([]int, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.lengths, nil
}

func (f *fakeComm) Gatherv(send []byte, recv []byte, lengths, displs []int, root int) error {
	f.calls++
	return f.err
}

func (f *fakeComm) AllGather(send int) ([]int, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.lengths, nil
}

func (f *fakeComm) AllGatherv(send []byte, recv []byte, lengths, displs []int) error {
	f.calls++
	return f.err
}

func (f *fakeComm) NeighborAllToAll(send []int) ([]int, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.lengths, nil
}

func (f *fakeComm) NeighborAllToAllv(send []byte, sendLengths, sendDispls []int, recv []byte, recvLengths, recvDispls []int) error {
	f.calls++
	return f.err
}

func newFake(rank, size int, neighbors []int) *fakeComm {
	l, err := topology.NewLocal(rank, size, neighbors)
	if err != nil {
		panic(err)
	}
	return &fakeComm{Local: l}
}
