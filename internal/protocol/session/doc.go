// Package session drives the client side of the warden control channel.
//
// Ownership boundary:
// - connection lifecycle and the version handshake
// - the one-in-flight command/reply exchange
// - classification of raised failures into the transport/protocol kinds
//
// The session and its framer are the only owners of the socket and the
// receive buffer. Sessions are single-flow by contract and not safe for
// concurrent use.
package session
