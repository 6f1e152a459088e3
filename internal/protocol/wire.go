package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	StatusOK  = "OK"
	StatusNOK = "NOK"
)

// ClientVersion is the control protocol version this client speaks.
const ClientVersion = "0.3"

// HandshakeRequest is the first message on every new connection.
type HandshakeRequest struct {
	Version string `json:"version"`
}

func (r HandshakeRequest) Validate() error {
	if strings.TrimSpace(r.Version) == "" {
		return fmt.Errorf("%w: missing version", ErrInvalidHandshake)
	}
	return nil
}

// HandshakeReply accepts or rejects a new connection. Servers may report
// their own protocol version alongside the verdict.
type HandshakeReply struct {
	Return  string `json:"return"`
	Version string `json:"version,omitempty"`
}

func (r HandshakeReply) Validate() error {
	if r.Return != StatusOK && r.Return != StatusNOK {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, r.Return)
	}
	return nil
}

// CommandRequest carries one operator command to the engine. Arguments is
// left off the wire entirely when nil.
type CommandRequest struct {
	Command   string `json:"command"`
	Arguments any    `json:"arguments,omitempty"`
}

func (r CommandRequest) Validate() error {
	if strings.TrimSpace(r.Command) == "" {
		return ErrEmptyCommand
	}
	return nil
}

// CommandReply carries the engine's verdict plus an uninterpreted payload.
// A NOK verdict is a successfully transported result, not a failure of
// the channel.
type CommandReply struct {
	Return  string          `json:"return"`
	Message json.RawMessage `json:"message,omitempty"`
}

func (r CommandReply) Validate() error {
	if r.Return != StatusOK && r.Return != StatusNOK {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, r.Return)
	}
	return nil
}

// OK reports whether the engine accepted the command.
func (r CommandReply) OK() bool {
	return r.Return == StatusOK
}
