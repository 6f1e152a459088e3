// Package warden is the engine side of the control channel: a
// unix-socket listener speaking the handshake and command wire
// contract against an in-memory engine state. It backs the wardenmock
// development daemon and the package tests that exercise the client
// over a real socket.
package warden
