package collective

import "github.com/luca-patrignani/collective/topology"

// Primitives are the collective transfers a group transport provides.
// Fixed-size items are single ints; variable-size transfers move bytes
// between buffers laid out by length and displacement tables.
type Primitives interface {
	// Gather collects one item per participant at root, indexed by rank.
	// Participants other than root receive nil.
	Gather(send int, root int) ([]int, error)
	// Gatherv places each participant's send buffer in root's recv buffer at
	// displs[rank]. lengths and displs are only read at root.
	Gatherv(send []byte, recv []byte, lengths, displs []int, root int) error
	// AllGather collects one item per participant at every participant.
	AllGather(send int) ([]int, error)
	// AllGatherv places each participant's send buffer in every recv buffer
	// at displs[rank].
	AllGatherv(send []byte, recv []byte, lengths, displs []int) error
	// NeighborAllToAll sends send[k] to neighbour slot k and returns the item
	// received from each neighbour slot.
	NeighborAllToAll(send []int) ([]int, error)
	// NeighborAllToAllv sends the send slot k to neighbour slot k and stores
	// what neighbour slot k sent in recv slot k.
	NeighborAllToAllv(send []byte, sendLengths, sendDispls []int, recv []byte, recvLengths, recvDispls []int) error
}

// Communicator is a member of a group: its view of the topology and the
// primitives to talk to the other members.
type Communicator interface {
	topology.Topology
	Primitives
}
