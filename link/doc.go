// Package link builds the collective primitives out of ordered
// point-to-point messages.
//
// A transport only has to provide a Conn: a way to send a Message to a rank
// and to receive the oldest pending Message from a rank. Group numbers every
// primitive call with a round, tags each message with its primitive and
// round, and checks both on arrival, so participants that run different
// operation sequences fail with topology.ErrMismatch. Each round sends at
// most one message per ordered pair of ranks.
package link
