package warden

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/wardenctl/internal/protocol"
	"github.com/danmuck/wardenctl/internal/protocol/frame"
)

var ErrNotListening = errors.New("warden: server is not listening")

// Config shapes one control server.
type Config struct {
	SocketPath string
	// Version is the protocol version declared in handshake replies.
	Version       string
	EngineVersion string
	Limits        frame.Limits
}

func (c Config) WithDefaults() Config {
	if strings.TrimSpace(c.Version) == "" {
		c.Version = protocol.ClientVersion
	}
	if strings.TrimSpace(c.EngineVersion) == "" {
		c.EngineVersion = "warden 1.0.0-dev"
	}
	d := frame.DefaultLimits()
	if c.Limits.MaxFrameBytes <= 0 {
		c.Limits.MaxFrameBytes = d.MaxFrameBytes
	}
	if c.Limits.ReadChunkBytes <= 0 {
		c.Limits.ReadChunkBytes = d.ReadChunkBytes
	}
	return c
}

// commandFrame keeps inbound arguments raw for handler dispatch.
type commandFrame struct {
	Command   string          `json:"command"`
	Arguments json.RawMessage `json:"arguments"`
}

// replyFrame is the outbound command reply.
type replyFrame struct {
	Return  string `json:"return"`
	Message any    `json:"message,omitempty"`
}

// Server accepts control connections and dispatches commands against
// the registry. One goroutine per connection; each connection is
// strictly one request in flight.
type Server struct {
	cfg      Config
	state    *State
	registry *Registry

	ln          net.Listener
	stopOnce    sync.Once
	stopping    atomic.Bool
	clientCount atomic.Int64
}

func NewServer(cfg Config) *Server {
	cfg = cfg.WithDefaults()
	state := NewState()
	s := &Server{
		cfg:      cfg,
		state:    state,
		registry: DefaultRegistry(state, cfg.EngineVersion),
	}
	s.registry.Register("command-list", func(json.RawMessage) (any, error) {
		return map[string]any{"commands": s.registry.Names()}, nil
	})
	s.registry.Register("shutdown", func(json.RawMessage) (any, error) {
		return "shutting down", nil
	})
	return s
}

func (s *Server) State() *State {
	return s.state
}

func (s *Server) Registry() *Registry {
	return s.registry
}

// Listen binds the unix socket. Split from Serve so callers know the
// socket exists before connecting.
func (s *Server) Listen() error {
	ln, err := net.Listen("unix", s.cfg.SocketPath)
	if err != nil {
		return err
	}
	s.ln = ln
	log.Info().Str("socket", s.cfg.SocketPath).Msg("warden control listening")
	return nil
}

// Serve accepts connections until ctx is done, Stop is called, or the
// listener fails. The socket is closed on return.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return ErrNotListening
	}
	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if s.stopping.Load() || ctx.Err() != nil {
				return nil
			}
			return err
		}
		go s.handleConn(conn)
	}
}

// Stop closes the listener; in-flight connections drain on their own.
// Safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.stopping.Store(true)
		if s.ln != nil {
			_ = s.ln.Close()
		}
	})
}

// handleConn verifies the handshake, then answers one command per
// frame until the client hangs up.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()
	active := s.clientCount.Add(1)
	log.Info().Int64("active_clients", active).Msg("control client connected")
	defer func() {
		remaining := s.clientCount.Add(-1)
		log.Info().Int64("active_clients", remaining).Msg("control client disconnected")
	}()

	dec := frame.NewDecoder(conn, s.cfg.Limits)
	if !s.verifyHandshake(conn, dec) {
		return
	}

	for {
		var req commandFrame
		if err := dec.Next(&req); err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Msg("control read")
			}
			return
		}
		s.state.BumpCounter("control.commands")
		reply := s.dispatch(req)
		if err := frame.Encode(conn, reply, s.cfg.Limits); err != nil {
			log.Warn().Err(err).Msg("control write")
			return
		}
		if req.Command == "shutdown" {
			s.Stop()
			return
		}
	}
}

func (s *Server) verifyHandshake(conn net.Conn, dec *frame.Decoder) bool {
	var req protocol.HandshakeRequest
	if err := dec.Next(&req); err != nil {
		log.Warn().Err(err).Msg("handshake read")
		return false
	}
	if err := req.Validate(); err != nil || !protocol.Compatible(s.cfg.Version, req.Version) {
		log.Warn().Str("client_version", req.Version).Msg("handshake refused")
		_ = frame.Encode(conn, protocol.HandshakeReply{
			Return:  protocol.StatusNOK,
			Version: s.cfg.Version,
		}, s.cfg.Limits)
		return false
	}
	err := frame.Encode(conn, protocol.HandshakeReply{
		Return:  protocol.StatusOK,
		Version: s.cfg.Version,
	}, s.cfg.Limits)
	if err != nil {
		log.Warn().Err(err).Msg("handshake write")
		return false
	}
	return true
}

func (s *Server) dispatch(req commandFrame) replyFrame {
	name := strings.TrimSpace(req.Command)
	payload, err := s.registry.Dispatch(name, req.Arguments)
	if err != nil {
		log.Debug().Str("command", name).Err(err).Msg("nok")
		return replyFrame{Return: protocol.StatusNOK, Message: err.Error()}
	}
	log.Debug().Str("command", name).Msg("ok")
	return replyFrame{Return: protocol.StatusOK, Message: payload}
}
