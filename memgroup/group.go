package memgroup

import (
	"bytes"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"

	"github.com/luca-patrignani/collective/link"
	"github.com/luca-patrignani/collective/topology"
)

// defaultCapacity bounds each pair queue. A rank never has more than one
// message of its current round in flight towards a peer, so any capacity of
// two or more lets every round complete.
const defaultCapacity = 4

type config struct {
	capacity int
	timeout  time.Duration
}

type Option func(config) config

// WithTimeout bounds every wait on a peer. Zero waits forever.
func WithTimeout(timeout time.Duration) Option {
	return func(c config) config {
		c.timeout = timeout
		return c
	}
}

// WithCapacity sets the depth of each pair queue. Values below two are
// raised to two.
func WithCapacity(capacity int) Option {
	return func(c config) config {
		c.capacity = max(capacity, 2)
		return c
	}
}

// Member is one rank of an in-process group.
type Member struct {
	*link.Group
}

// New creates one member per rank of g. Member i has rank i.
func New(g *topology.Graph, opts ...Option) []*Member {
	cfg := config{capacity: defaultCapacity}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	n := g.Size()
	// queues[src][dst] carries messages from src to dst
	queues := make([][]*lfq.SPSC[link.Message], n)
	for src := range n {
		queues[src] = make([]*lfq.SPSC[link.Message], n)
		for dst := range n {
			if src == dst {
				continue
			}
			q := &lfq.SPSC[link.Message]{}
			q.Init(cfg.capacity)
			queues[src][dst] = q
		}
	}
	members := make([]*Member, n)
	for r := range n {
		c := &conn{rank: r, queues: queues, timeout: cfg.timeout}
		members[r] = &Member{Group: link.NewGroup(g.At(r), c)}
	}
	return members
}

type conn struct {
	rank    int
	queues  [][]*lfq.SPSC[link.Message]
	timeout time.Duration
}

// wait retries try until it stops reporting iox.ErrWouldBlock.
func (c *conn) wait(try func() error) error {
	var bo iox.Backoff
	start := time.Now()
	for {
		err := try()
		if err == nil {
			return nil
		}
		if !iox.IsWouldBlock(err) {
			return err
		}
		if c.timeout > 0 && time.Since(start) > c.timeout {
			return link.ErrTimeout
		}
		bo.Wait()
	}
}

func (c *conn) Send(dst int, m link.Message) error {
	q := c.queues[c.rank][dst]
	m.Data = bytes.Clone(m.Data)
	return c.wait(func() error { return q.Enqueue(&m) })
}

func (c *conn) Recv(src int) (link.Message, error) {
	q := c.queues[src][c.rank]
	var m link.Message
	err := c.wait(func() error {
		var err error
		m, err = q.Dequeue()
		return err
	})
	return m, err
}
