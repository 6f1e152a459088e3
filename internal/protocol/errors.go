package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidHandshake  = errors.New("protocol: invalid handshake")
	ErrInvalidStatus     = errors.New("protocol: invalid return status")
	ErrEmptyCommand      = errors.New("protocol: empty command name")
	ErrHandshakeRejected = errors.New("protocol: handshake rejected by server")
	ErrVersionMismatch   = errors.New("protocol: incompatible server version")
)

// TransportError is the single failure kind for OS-level socket errors:
// refused, reset, broken pipe, unexpected end-of-stream. Always fatal to
// the session that raised it.
type TransportError struct {
	Op   string
	Path string
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("protocol: transport %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// IsTransport reports whether err carries a transport failure.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// ProtocolError is the failure kind for negotiation and framing
// violations: rejected handshake, version skew, undecodable frames.
// Fatal to the session that raised it.
type ProtocolError struct {
	Reason string
	Err    error
}

func (e *ProtocolError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("protocol: %s: %v", e.Reason, e.Err)
	}
	return "protocol: " + e.Reason
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// IsProtocol reports whether err carries a protocol failure.
func IsProtocol(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}
