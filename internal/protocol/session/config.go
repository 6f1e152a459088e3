package session

import (
	"strings"

	"github.com/danmuck/wardenctl/internal/protocol"
	"github.com/danmuck/wardenctl/internal/protocol/frame"
	"github.com/danmuck/wardenctl/internal/protocol/transport"
)

// Config defines session wire behavior. The zero value is usable after
// WithDefaults. No timeouts live here: every exchange blocks until the
// OS satisfies it, and callers needing bounded latency layer deadlines
// outside the core.
type Config struct {
	// Version is the protocol version declared during the handshake.
	Version string
	Limits  frame.Limits
	// Dial opens the transport; tests substitute doubles here.
	Dial func(path string) (Transport, error)
}

func DefaultConfig() Config {
	return Config{
		Version: protocol.ClientVersion,
		Limits:  frame.DefaultLimits(),
	}
}

func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.Version) == "" {
		c.Version = protocol.ClientVersion
	}
	d := frame.DefaultLimits()
	if c.Limits.MaxFrameBytes <= 0 {
		c.Limits.MaxFrameBytes = d.MaxFrameBytes
	}
	if c.Limits.ReadChunkBytes <= 0 {
		c.Limits.ReadChunkBytes = d.ReadChunkBytes
	}
	if c.Dial == nil {
		c.Dial = func(path string) (Transport, error) {
			return transport.Dial(path)
		}
	}
	return c
}
