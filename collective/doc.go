// Package collective exchanges typed, variable-size values among the members
// of a fixed process group.
//
// An Exchanger packs values with a codec.Codec, exchanges the payload lengths
// first so that every side can derive the same displacement tables, then
// exchanges the payloads themselves through the group's Primitives and
// decodes them slot by slot.
//
// # Operations
//
// Gather: every participant contributes one value, the root receives all of
// them indexed by rank. Other participants receive nothing.
//
// AllGather: every participant contributes one value and receives all of
// them indexed by rank.
//
// NeighborAllToAll: every participant sends one value to each of its
// neighbours and receives one from each. The result is indexed by neighbour
// slot, in the order the topology lists the neighbours, and not by rank; it
// is returned as a NeighborResult to keep the two indexings apart.
//
// In Gather and AllGather a participant's own slot holds the value it passed
// in, never a decoded copy.
//
// # Synchronization
//
// Every operation is a blocking round in which all members of the group must
// take part, calling the same operations in the same order. Operations on one
// group must not run concurrently. Any error leaves the round incomplete and
// no partial result is returned; a retry has to be a fresh round on every
// participant.
package collective
