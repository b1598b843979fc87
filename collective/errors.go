package collective

import (
	"errors"
	"fmt"

	"github.com/luca-patrignani/collective/topology"
)

var ErrInvalidRoot = errors.New("root rank out of range")

// Op names a collective operation in errors and logs.
type Op string

const (
	OpGather           Op = "gather"
	OpAllGather        Op = "allgather"
	OpNeighborAllToAll Op = "neighbor-alltoall"
)

// CommunicationError reports a failure of the transport during Op.
type CommunicationError struct {
	Op   Op
	Rank int
	Err  error
}

func (e *CommunicationError) Error() string {
	return fmt.Sprintf("collective: %s on rank %d: %v", e.Op, e.Rank, e.Err)
}

func (e *CommunicationError) Unwrap() error { return e.Err }

// TopologyMismatchError reports participants that disagree on the shape of
// the group. Want and Got are slot counts when the disagreement was noticed
// locally; otherwise Err holds the transport's report.
type TopologyMismatchError struct {
	Op   Op
	Rank int
	Want int
	Got  int
	Err  error
}

func (e *TopologyMismatchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("collective: %s on rank %d: %v", e.Op, e.Rank, e.Err)
	}
	return fmt.Sprintf("collective: %s on rank %d: expected %d slots, got %d", e.Op, e.Rank, e.Want, e.Got)
}

func (e *TopologyMismatchError) Unwrap() []error {
	if e.Err != nil {
		return []error{topology.ErrMismatch, e.Err}
	}
	return []error{topology.ErrMismatch}
}

func transportErr(op Op, rank int, err error) error {
	if errors.Is(err, topology.ErrMismatch) {
		return &TopologyMismatchError{Op: op, Rank: rank, Err: err}
	}
	return &CommunicationError{Op: op, Rank: rank, Err: err}
}
