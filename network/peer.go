package network

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/luca-patrignani/collective/link"
	"github.com/luca-patrignani/collective/topology"
)

const retryInterval = time.Millisecond

// Peer is one rank of a group whose members talk over HTTP.
// Addresses[i] is the address of the peer with rank i.
type Peer struct {
	*link.Group
	Addresses map[int]string
	server    *http.Server
	handler   *inboxHandler
	client    *http.Client
	timeout   time.Duration
	scheme    string
	logger    *slog.Logger
}

// NewPeer starts serving the rank topo.Rank() on l. addresses must hold one
// entry per rank of topo.
func NewPeer(topo topology.Topology, addresses map[int]string, l net.Listener, opts ...PeerOption) (*Peer, error) {
	if len(addresses) != topo.Size() {
		return nil, fmt.Errorf("%w: %d addresses for %d ranks", topology.ErrInvalid, len(addresses), topo.Size())
	}
	for _, r := range topology.Ranks(topo) {
		if _, ok := addresses[r]; !ok {
			return nil, fmt.Errorf("%w: no address for rank %d", topology.ErrInvalid, r)
		}
	}
	cfg := peerConfig{scheme: "http", logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	handler := newInboxHandler(topo.Rank(), topo.Size())
	p := &Peer{
		Addresses: copyMap(addresses),
		server:    &http.Server{Addr: addresses[topo.Rank()], Handler: handler},
		handler:   handler,
		client: &http.Client{
			Timeout:   cfg.timeout,
			Transport: &http.Transport{TLSClientConfig: cfg.tlsConfig},
		},
		timeout: cfg.timeout,
		scheme:  cfg.scheme,
		logger:  cfg.logger,
	}
	p.Group = link.NewGroup(topo, httpConn{p: p})
	if cfg.tlsConfig != nil {
		l = newTLSListener(l, cfg.tlsConfig)
	}
	go func() {
		err := p.server.Serve(l)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.logger.Error("peer stopped serving", "rank", topo.Rank(), "err", err)
		}
	}()
	return p, nil
}

// Close stops serving. Messages still addressed to this peer are refused.
func (p *Peer) Close() error {
	p.client.CloseIdleConnections()
	return p.server.Shutdown(context.Background())
}

// Barrier returns once every peer of the group has entered Barrier.
func (p *Peer) Barrier() error {
	_, err := p.AllGather(0)
	return err
}

func (p *Peer) url(rank int) string {
	addr := p.Addresses[rank]
	if strings.Contains(addr, "://") {
		return addr
	}
	return p.scheme + "://" + addr
}

// httpConn delivers link messages as POST requests.
type httpConn struct {
	p *Peer
}

func (c httpConn) Send(dst int, m link.Message) error {
	p := c.p
	start := time.Now()
	for {
		req, err := http.NewRequest(http.MethodPost, p.url(dst), bytes.NewReader(m.Data))
		if err != nil {
			return err
		}
		req.Header.Set(headerClock, strconv.FormatUint(uint64(m.Round), 10))
		req.Header.Set(headerSender, strconv.Itoa(p.Rank()))
		req.Header.Set(headerReceiver, strconv.Itoa(dst))
		req.Header.Set(headerSize, strconv.Itoa(p.Size()))
		req.Header.Set(headerOp, m.Op.String())
		resp, err := p.client.Do(req)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			if err := resp.Body.Close(); err != nil {
				return err
			}
			if resp.StatusCode != http.StatusAccepted {
				return statusErr(dst, resp.StatusCode)
			}
			p.logger.Debug("sent", "rank", p.Rank(), "to", dst, "op", m.Op, "clock", m.Round, "bytes", len(m.Data))
			return nil
		}
		if p.timeout > 0 && time.Since(start) > p.timeout {
			return fmt.Errorf("%w: connection attempts to %d failed: %w", link.ErrTimeout, dst, err)
		}
		time.Sleep(retryInterval)
	}
}

func (c httpConn) Recv(src int) (link.Message, error) {
	return c.p.handler.take(src, c.p.timeout)
}

// CreateListeners opens n listeners on ephemeral localhost ports and returns
// them with their addresses, keyed by rank.
func CreateListeners(n int) (map[int]net.Listener, map[int]string, error) {
	listeners := make(map[int]net.Listener)
	addresses := make(map[int]string)
	for i := 0; i < n; i++ {
		l, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			for _, open := range listeners {
				open.Close()
			}
			return nil, nil, err
		}
		listeners[i] = l
		addresses[i] = l.Addr().String()
	}
	return listeners, addresses, nil
}

func copyMap(original map[int]string) map[int]string {
	copied := make(map[int]string, len(original))
	for k, v := range original {
		copied[k] = v
	}
	return copied
}
