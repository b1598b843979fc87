// Package topology describes the membership of a fixed process group.
//
// Every participant knows its own rank, the size of the group and an ordered
// list of neighbour ranks. The order of that list is what gives neighbour
// exchanges their slot numbering, so it must be the same every time it is
// read. Graph builds the views of every participant at once and checks that
// the neighbour relation is symmetric, which neighbour exchanges rely on.
package topology
