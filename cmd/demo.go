package main

import (
	"crypto/x509"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"slices"

	"go.dedis.ch/kyber/v4"
	"go.dedis.ch/kyber/v4/suites"

	"github.com/luca-patrignani/collective/collective"
	"github.com/luca-patrignani/collective/codec"
	"github.com/luca-patrignani/collective/memgroup"
	"github.com/luca-patrignani/collective/network"
	"github.com/luca-patrignani/collective/topology"
)

// report is what one rank saw during the demo.
type report struct {
	Rank      int
	Neighbors []int
	Sent      []int
	// Gathered is only set on the root.
	Gathered      [][]int
	AllGathered   [][]int
	FromNeighbors []int
	Keys          []string
}

// runRank builds one value per neighbour, rank*10+neighbour, then gathers the
// values to root, all-gathers them, exchanges them with the neighbours, and
// finally all-gathers a fresh Ed25519 public key.
func runRank(comm collective.Communicator, root int, logger *slog.Logger) (report, error) {
	rank := comm.Rank()
	neighbors := comm.Neighbors()
	values := make([]int, len(neighbors))
	for i, nb := range neighbors {
		values[i] = rank*10 + nb
	}
	r := report{Rank: rank, Neighbors: neighbors, Sent: values}

	arrays := collective.New[[]int](comm, codec.JSON[[]int]{}, collective.WithLogger(logger))
	gathered, err := arrays.Gather(values, root)
	if err != nil {
		return report{}, err
	}
	r.Gathered = gathered
	if r.AllGathered, err = arrays.AllGather(values); err != nil {
		return report{}, err
	}

	ints := collective.New[int](comm, codec.JSON[int]{}, collective.WithLogger(logger))
	fromNeighbors, err := ints.NeighborAllToAll(values)
	if err != nil {
		return report{}, err
	}
	r.FromNeighbors = fromNeighbors.Values()

	suite := suites.MustFind("Ed25519")
	pub := suite.Point().Mul(suite.Scalar().Pick(suite.RandomStream()), nil)
	keys := collective.New[kyber.Point](comm, codec.NewPoint(suite), collective.WithLogger(logger))
	pubs, err := keys.AllGather(pub)
	if err != nil {
		return report{}, err
	}
	if pubs[rank] != pub {
		return report{}, fmt.Errorf("own public key slot holds a copy")
	}
	for _, p := range pubs {
		r.Keys = append(r.Keys, p.String()[:8])
	}
	logger.Debug("rank done", "rank", rank, "neighbors", neighbors)
	return r, nil
}

// run executes the demo on every rank of the configured torus and returns
// the reports in rank order.
func run(cfg Config, logger *slog.Logger) ([]report, error) {
	g, err := topology.Torus(cfg.Rows, cfg.Cols)
	if err != nil {
		return nil, err
	}
	comms, closeAll, err := openGroup(cfg, g, logger)
	if err != nil {
		return nil, err
	}
	reports := make([]report, len(comms))
	fatal := make(chan error, len(comms))
	for i, comm := range comms {
		go func() {
			r, err := runRank(comm, cfg.Root, logger)
			if err != nil {
				fatal <- fmt.Errorf("rank %d: %w", i, err)
				return
			}
			reports[i] = r
			fatal <- nil
		}()
	}
	var errs []error
	for range comms {
		if err := <-fatal; err != nil {
			errs = append(errs, err)
		}
	}
	errs = append(errs, closeAll())
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	for _, r := range reports[1:] {
		if !slices.Equal(r.Keys, reports[0].Keys) {
			return nil, fmt.Errorf("rank %d disagrees with rank 0 on the public keys", r.Rank)
		}
	}
	return reports, nil
}

func openGroup(cfg Config, g *topology.Graph, logger *slog.Logger) ([]collective.Communicator, func() error, error) {
	if cfg.Transport == transportMemory {
		members := memgroup.New(g, memgroup.WithTimeout(cfg.Timeout))
		comms := make([]collective.Communicator, len(members))
		for i, m := range members {
			comms[i] = m
		}
		return comms, func() error { return nil }, nil
	}

	listeners := make(map[int]net.Listener)
	addresses := make(map[int]string)
	closeListeners := func() {
		for _, l := range listeners {
			l.Close()
		}
	}
	for i := range g.Size() {
		l, err := net.Listen("tcp", net.JoinHostPort(cfg.Host, "0"))
		if err != nil {
			closeListeners()
			return nil, nil, err
		}
		listeners[i] = l
		addresses[i] = l.Addr().String()
	}
	peerOpts, err := peerOptions(cfg, addresses, logger)
	if err != nil {
		closeListeners()
		return nil, nil, err
	}
	peers := make([]*network.Peer, 0, g.Size())
	closePeers := func() error {
		var errs []error
		for _, p := range peers {
			errs = append(errs, p.Close())
		}
		return errors.Join(errs...)
	}
	comms := make([]collective.Communicator, g.Size())
	for i := range g.Size() {
		p, err := network.NewPeer(g.At(i), addresses, listeners[i], peerOpts[i]...)
		if err != nil {
			closeListeners()
			return nil, nil, errors.Join(err, closePeers())
		}
		peers = append(peers, p)
		comms[i] = p
	}
	return comms, closePeers, nil
}

// peerOptions returns the options of every peer. With TLS each peer gets its
// own self-signed certificate and trusts only the certificates of the group.
func peerOptions(cfg Config, addresses map[int]string, logger *slog.Logger) ([][]network.PeerOption, error) {
	opts := make([][]network.PeerOption, len(addresses))
	for i := range opts {
		opts[i] = []network.PeerOption{network.WithTimeout(cfg.Timeout), network.WithLogger(logger)}
	}
	if !cfg.TLS {
		return opts, nil
	}
	certPool := x509.NewCertPool()
	for i := range opts {
		cert, pem, err := network.GenerateSelfSignedCert(addresses[i])
		if err != nil {
			return nil, err
		}
		if !certPool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("invalid certificate for rank %d", i)
		}
		opts[i] = append(opts[i], network.WithCertificate(cert))
	}
	for i := range opts {
		opts[i] = append(opts[i], network.WithLimitedCAs(certPool))
	}
	return opts, nil
}
