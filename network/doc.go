// Package network runs a process group over HTTP. A Peer serves one rank of
// the group and implements the collective primitives by posting one request
// per message to the other ranks.
//
// # Rounds
//
// Every primitive is a round numbered by the peer's clock. Requests carry the
// Clock, SenderRank, ReceiverRank, GroupSize and Op headers. The receiving
// handler queues each request per sender without looking at its clock; the
// rank that later waits for the round checks clock and op when it takes the
// request off the queue, so peers that run different operation sequences
// fail with topology.ErrMismatch instead of exchanging the wrong data.
//
// # Timeout Support
//
// Senders retry failed requests, since a peer may not be listening yet,
// until the configured timeout. A retried request that had already been
// queued is recognised by its sender, clock and op and dropped. Receivers wait up to the same timeout for
// each message. A zero timeout waits forever.
//
// # TLS
//
// WithCertificate and WithLimitedCAs switch the peer to HTTPS with mutual
// authentication; GenerateSelfSignedCert creates a certificate per peer.
package network
