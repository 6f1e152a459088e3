// Package protocol owns the warden control-channel wire contract.
//
// Ownership boundary:
// - handshake and command message shapes
// - protocol version compatibility
// - transport/protocol failure kinds
package protocol
