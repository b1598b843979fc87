package link

import (
	"errors"
	"fmt"
	"sync"

	"code.hybscloud.com/atomix"

	"github.com/luca-patrignani/collective/displacement"
	"github.com/luca-patrignani/collective/topology"
)

var (
	ErrLength  = errors.New("payload length differs from declared length")
	ErrTimeout = errors.New("timed out waiting for peer")
)

// Conn moves messages between one rank and the others. Messages from one
// sender to one receiver must be delivered in the order they were sent.
type Conn interface {
	Send(dst int, m Message) error
	// Recv returns the oldest pending message from src, blocking until one
	// arrives or the transport gives up.
	Recv(src int) (Message, error)
}

// Group implements the collective primitives for one rank on top of a Conn.
// Primitive calls on a Group are serialised.
type Group struct {
	topology.Topology
	conn  Conn
	mu    sync.Mutex
	round atomix.Uint32
}

func NewGroup(t topology.Topology, conn Conn) *Group {
	return &Group{Topology: t, conn: conn}
}

// Rounds is the number of primitives started on this rank.
func (g *Group) Rounds() uint32 {
	return g.round.Load()
}

func (g *Group) send(dst int, op Op, round uint32, data []byte) error {
	if err := g.conn.Send(dst, Message{Op: op, Round: round, Data: data}); err != nil {
		return fmt.Errorf("send %s to %d: %w", op, dst, err)
	}
	return nil
}

func (g *Group) recv(src int, op Op, round uint32) ([]byte, error) {
	m, err := g.conn.Recv(src)
	if err != nil {
		return nil, fmt.Errorf("receive %s from %d: %w", op, src, err)
	}
	if m.Op != op || m.Round != round {
		return nil, fmt.Errorf("%w: rank %d expected %s round %d from %d, got %s round %d",
			topology.ErrMismatch, g.Rank(), op, round, src, m.Op, m.Round)
	}
	return m.Data, nil
}

func (g *Group) recvItem(src int, op Op, round uint32) (int, error) {
	b, err := g.recv(src, op, round)
	if err != nil {
		return 0, err
	}
	v, err := decodeItem(b)
	if err != nil {
		return 0, fmt.Errorf("from %d: %w", src, err)
	}
	return v, nil
}

func (g *Group) Gather(send int, root int) ([]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	round := g.round.Add(1)
	if root != g.Rank() {
		return nil, g.send(root, OpGather, round, encodeItem(send))
	}
	out := make([]int, g.Size())
	for src := range out {
		if src == root {
			out[src] = send
			continue
		}
		v, err := g.recvItem(src, OpGather, round)
		if err != nil {
			return nil, err
		}
		out[src] = v
	}
	return out, nil
}

func (g *Group) Gatherv(send []byte, recv []byte, lengths, displs []int, root int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	round := g.round.Add(1)
	if root != g.Rank() {
		return g.send(root, OpGatherv, round, send)
	}
	if err := checkLayout(g.Size(), recv, lengths, displs); err != nil {
		return err
	}
	for src := range g.Size() {
		data := send
		if src != root {
			var err error
			if data, err = g.recv(src, OpGatherv, round); err != nil {
				return err
			}
		}
		if err := place(recv, lengths, displs, src, data); err != nil {
			return fmt.Errorf("from %d: %w", src, err)
		}
	}
	return nil
}

func (g *Group) AllGather(send int) ([]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	round := g.round.Add(1)
	item := encodeItem(send)
	for dst := range g.Size() {
		if dst == g.Rank() {
			continue
		}
		if err := g.send(dst, OpAllGather, round, item); err != nil {
			return nil, err
		}
	}
	out := make([]int, g.Size())
	for src := range out {
		if src == g.Rank() {
			out[src] = send
			continue
		}
		v, err := g.recvItem(src, OpAllGather, round)
		if err != nil {
			return nil, err
		}
		out[src] = v
	}
	return out, nil
}

func (g *Group) AllGatherv(send []byte, recv []byte, lengths, displs []int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	round := g.round.Add(1)
	if err := checkLayout(g.Size(), recv, lengths, displs); err != nil {
		return err
	}
	for dst := range g.Size() {
		if dst == g.Rank() {
			continue
		}
		if err := g.send(dst, OpAllGatherv, round, send); err != nil {
			return err
		}
	}
	for src := range g.Size() {
		data := send
		if src != g.Rank() {
			var err error
			if data, err = g.recv(src, OpAllGatherv, round); err != nil {
				return err
			}
		}
		if err := place(recv, lengths, displs, src, data); err != nil {
			return fmt.Errorf("from %d: %w", src, err)
		}
	}
	return nil
}

func (g *Group) NeighborAllToAll(send []int) ([]int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	round := g.round.Add(1)
	neighbors := g.Neighbors()
	if len(send) != len(neighbors) {
		return nil, fmt.Errorf("%w: %d items for %d neighbours", topology.ErrMismatch, len(send), len(neighbors))
	}
	for k, dst := range neighbors {
		if err := g.send(dst, OpNeighborAllToAll, round, encodeItem(send[k])); err != nil {
			return nil, err
		}
	}
	out := make([]int, len(neighbors))
	for k, src := range neighbors {
		v, err := g.recvItem(src, OpNeighborAllToAll, round)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, nil
}

func (g *Group) NeighborAllToAllv(send []byte, sendLengths, sendDispls []int, recv []byte, recvLengths, recvDispls []int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	round := g.round.Add(1)
	neighbors := g.Neighbors()
	if err := checkLayout(len(neighbors), send, sendLengths, sendDispls); err != nil {
		return err
	}
	if err := checkLayout(len(neighbors), recv, recvLengths, recvDispls); err != nil {
		return err
	}
	for k, dst := range neighbors {
		if err := g.send(dst, OpNeighborAllToAllv, round, displacement.Slot(send, sendLengths, sendDispls, k)); err != nil {
			return err
		}
	}
	for k, src := range neighbors {
		data, err := g.recv(src, OpNeighborAllToAllv, round)
		if err != nil {
			return err
		}
		if err := place(recv, recvLengths, recvDispls, k, data); err != nil {
			return fmt.Errorf("from %d: %w", src, err)
		}
	}
	return nil
}

func checkLayout(slots int, buf []byte, lengths, displs []int) error {
	if len(lengths) != slots {
		return fmt.Errorf("%w: %d lengths for %d slots", topology.ErrMismatch, len(lengths), slots)
	}
	return displacement.Validate(lengths, displs, len(buf))
}

// place copies data into slot i of buf.
func place(buf []byte, lengths, displs []int, i int, data []byte) error {
	if len(data) != lengths[i] {
		return fmt.Errorf("%w: slot %d expected %d bytes, got %d", ErrLength, i, lengths[i], len(data))
	}
	copy(displacement.Slot(buf, lengths, displs, i), data)
	return nil
}
