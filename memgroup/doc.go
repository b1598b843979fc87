// Package memgroup is an in-process process group. Each Member implements the
// collective primitives for one rank and is meant to be driven by its own
// goroutine.
//
// Members talk through a matrix of bounded lock-free single-producer
// single-consumer queues from [code.hybscloud.com/lfq], one per ordered pair
// of ranks. Enqueue and Dequeue never block; a member waiting on a full or
// empty queue backs off with [code.hybscloud.com/iox.Backoff] until its peer
// makes progress or the configured timeout expires.
package memgroup
