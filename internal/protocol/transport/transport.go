// Package transport owns the unix-domain stream socket under the control
// channel. No other package touches the socket descriptor.
package transport

import (
	"errors"
	"io"
	"net"
	"strings"

	"github.com/danmuck/wardenctl/internal/protocol"
)

var ErrEmptySocketPath = errors.New("transport: empty socket path")

// Conn is one live control-socket connection. Every operation blocks
// until the OS satisfies it; deadlines are a caller concern.
type Conn struct {
	path string
	conn net.Conn
}

// Dial opens the unix-domain stream socket at path. OS-level refusals
// (missing socket file, permission, refused) surface as transport
// failures carrying the path.
func Dial(path string) (*Conn, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, ErrEmptySocketPath
	}
	conn, err := net.Dial("unix", path)
	if err != nil {
		return nil, &protocol.TransportError{Op: "dial", Path: path, Err: err}
	}
	return &Conn{path: path, conn: conn}, nil
}

func (c *Conn) Path() string {
	return c.path
}

// Write sends the whole buffer or fails with a transport failure.
func (c *Conn) Write(p []byte) (int, error) {
	if c.conn == nil {
		return 0, &protocol.TransportError{Op: "write", Path: c.path, Err: net.ErrClosed}
	}
	n, err := c.conn.Write(p)
	if err != nil {
		return n, &protocol.TransportError{Op: "write", Path: c.path, Err: err}
	}
	return n, nil
}

// Read returns whatever bytes are currently available. A clean
// end-of-stream passes through as io.EOF so the framer can tell an
// orderly close from a mid-frame one.
func (c *Conn) Read(p []byte) (int, error) {
	if c.conn == nil {
		return 0, &protocol.TransportError{Op: "read", Path: c.path, Err: net.ErrClosed}
	}
	n, err := c.conn.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		return n, &protocol.TransportError{Op: "read", Path: c.path, Err: err}
	}
	return n, err
}

// Close releases the socket. Safe to call more than once.
func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil
	if err := conn.Close(); err != nil {
		return &protocol.TransportError{Op: "close", Path: c.path, Err: err}
	}
	return nil
}
