package collective

import (
	"fmt"
	"log/slog"

	"github.com/luca-patrignani/collective/codec"
	"github.com/luca-patrignani/collective/displacement"
)

type config struct {
	logger *slog.Logger
}

// Option configures an Exchanger.
type Option func(config) config

// WithLogger makes the exchanger log every round at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c config) config {
		c.logger = logger
		return c
	}
}

// Exchanger runs collective operations on values of type T over a
// Communicator. It holds no per-call state, but the operations it runs must
// still be issued one at a time per group.
type Exchanger[T any] struct {
	comm   Communicator
	codec  codec.Codec[T]
	logger *slog.Logger
}

// New returns an Exchanger that encodes values with c and moves them over comm.
func New[T any](comm Communicator, c codec.Codec[T], opts ...Option) *Exchanger[T] {
	cfg := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return &Exchanger[T]{comm: comm, codec: c, logger: cfg.logger}
}

// Gather collects value from every participant at root. At root the result
// holds one value per rank, in rank order, with root's own slot set to value
// itself. Every other participant gets a nil result.
func (e *Exchanger[T]) Gather(value T, root int) ([]T, error) {
	rank, np := e.comm.Rank(), e.comm.Size()
	if root < 0 || root >= np {
		return nil, fmt.Errorf("%s: %w: %d not in [0, %d)", OpGather, ErrInvalidRoot, root, np)
	}
	src, err := e.codec.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpGather, err)
	}
	lengths, err := e.comm.Gather(len(src), root)
	if err != nil {
		return nil, transportErr(OpGather, rank, err)
	}
	if rank != root {
		if err := e.comm.Gatherv(src, nil, nil, nil, root); err != nil {
			return nil, transportErr(OpGather, rank, err)
		}
		e.logger.Debug("gather sent", "rank", rank, "root", root, "bytes", len(src))
		return nil, nil
	}
	if len(lengths) != np {
		return nil, &TopologyMismatchError{Op: OpGather, Rank: rank, Want: np, Got: len(lengths)}
	}
	displs, recv, err := layout(OpGather, rank, lengths)
	if err != nil {
		return nil, err
	}
	if err := e.comm.Gatherv(src, recv, lengths, displs, root); err != nil {
		return nil, transportErr(OpGather, rank, err)
	}
	e.logger.Debug("gather received", "rank", rank, "bytes", len(recv))
	return e.unpack(OpGather, recv, lengths, displs, rank, value)
}

// AllGather collects value from every participant at every participant. The
// result holds one value per rank, in rank order, with the caller's own slot
// set to value itself.
func (e *Exchanger[T]) AllGather(value T) ([]T, error) {
	rank, np := e.comm.Rank(), e.comm.Size()
	src, err := e.codec.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", OpAllGather, err)
	}
	lengths, err := e.comm.AllGather(len(src))
	if err != nil {
		return nil, transportErr(OpAllGather, rank, err)
	}
	if len(lengths) != np {
		return nil, &TopologyMismatchError{Op: OpAllGather, Rank: rank, Want: np, Got: len(lengths)}
	}
	displs, recv, err := layout(OpAllGather, rank, lengths)
	if err != nil {
		return nil, err
	}
	if err := e.comm.AllGatherv(src, recv, lengths, displs); err != nil {
		return nil, transportErr(OpAllGather, rank, err)
	}
	e.logger.Debug("allgather", "rank", rank, "sent", len(src), "received", len(recv))
	return e.unpack(OpAllGather, recv, lengths, displs, rank, value)
}

// NeighborAllToAll sends values[k] to the neighbour in slot k of the
// caller's topology and returns what each neighbour sent back, by slot.
func (e *Exchanger[T]) NeighborAllToAll(values []T) (NeighborResult[T], error) {
	rank := e.comm.Rank()
	neighbors := e.comm.Neighbors()
	if len(values) != len(neighbors) {
		return NeighborResult[T]{}, &TopologyMismatchError{Op: OpNeighborAllToAll, Rank: rank, Want: len(neighbors), Got: len(values)}
	}
	src, srcLengths, err := codec.EncodeBatch(e.codec, values)
	if err != nil {
		return NeighborResult[T]{}, fmt.Errorf("%s: %w", OpNeighborAllToAll, err)
	}
	srcDispls := displacement.Compute(srcLengths)
	dstLengths, err := e.comm.NeighborAllToAll(srcLengths)
	if err != nil {
		return NeighborResult[T]{}, transportErr(OpNeighborAllToAll, rank, err)
	}
	if len(dstLengths) != len(neighbors) {
		return NeighborResult[T]{}, &TopologyMismatchError{Op: OpNeighborAllToAll, Rank: rank, Want: len(neighbors), Got: len(dstLengths)}
	}
	dstDispls, dst, err := layout(OpNeighborAllToAll, rank, dstLengths)
	if err != nil {
		return NeighborResult[T]{}, err
	}
	if err := e.comm.NeighborAllToAllv(src, srcLengths, srcDispls, dst, dstLengths, dstDispls); err != nil {
		return NeighborResult[T]{}, transportErr(OpNeighborAllToAll, rank, err)
	}
	e.logger.Debug("neighbor alltoall", "rank", rank, "neighbors", len(neighbors), "sent", len(src), "received", len(dst))
	out, err := e.unpack(OpNeighborAllToAll, dst, dstLengths, dstDispls, -1, *new(T))
	if err != nil {
		return NeighborResult[T]{}, err
	}
	return NeighborResult[T]{neighbors: neighbors, values: out}, nil
}

// layout allocates the single receive buffer for a length table.
func layout(op Op, rank int, lengths []int) ([]int, []byte, error) {
	total, err := displacement.Bounded(lengths)
	if err != nil {
		return nil, nil, &CommunicationError{Op: op, Rank: rank, Err: err}
	}
	displs := displacement.Compute(lengths)
	if err := displacement.Validate(lengths, displs, total); err != nil {
		return nil, nil, &CommunicationError{Op: op, Rank: rank, Err: err}
	}
	return displs, make([]byte, total), nil
}

// unpack decodes every slot of buf except self, which is filled with value.
func (e *Exchanger[T]) unpack(op Op, buf []byte, lengths, displs []int, self int, value T) ([]T, error) {
	out, err := codec.DecodeSlots(e.codec, buf, lengths, displs, self)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if self >= 0 {
		out[self] = value
	}
	return out, nil
}
