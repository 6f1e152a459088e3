package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/wardenctl/internal/protocol"
	"github.com/danmuck/wardenctl/internal/protocol/frame"
)

var (
	ErrNotReady         = errors.New("session: not ready")
	ErrAlreadyConnected = errors.New("session: already connected")
)

// State tracks the session lifecycle. Closed is terminal: a session is
// never reconnected, callers build a new one per connection.
type State int

const (
	StateDisconnected State = iota
	// StateConnected means the transport is open but the handshake has
	// not been verified; no command may be sent yet.
	StateConnected
	StateReady
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnected:
		return "connected"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Transport is the byte stream under the session. Satisfied by
// *transport.Conn.
type Transport interface {
	io.ReadWriteCloser
	Path() string
}

// Session performs the version handshake and the one-in-flight command
// exchange. It is the sole owner of its transport and receive buffer.
type Session struct {
	cfg           Config
	state         State
	conn          Transport
	dec           *frame.Decoder
	serverVersion string
}

func New(cfg Config) *Session {
	return &Session{cfg: cfg.WithDefaults(), state: StateDisconnected}
}

func (s *Session) State() State {
	return s.state
}

// ServerVersion is the version the server reported during the handshake,
// empty when it reported none.
func (s *Session) ServerVersion() string {
	return s.serverVersion
}

// Connect opens the transport at path and performs the version
// handshake. On success the session is Ready. On any failure the
// transport is released and the session is Closed.
func (s *Session) Connect(path string) error {
	if s.state != StateDisconnected {
		return ErrAlreadyConnected
	}
	conn, err := s.cfg.Dial(path)
	if err != nil {
		s.state = StateClosed
		return err
	}
	s.conn = conn
	s.dec = frame.NewDecoder(conn, s.cfg.Limits)
	s.state = StateConnected

	if err := s.handshake(); err != nil {
		s.fail()
		return err
	}
	s.state = StateReady
	log.Debug().Str("socket", conn.Path()).Str("version", s.cfg.Version).Msg("session ready")
	return nil
}

func (s *Session) handshake() error {
	req := protocol.HandshakeRequest{Version: s.cfg.Version}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := frame.Encode(s.conn, req, s.cfg.Limits); err != nil {
		return s.classify("handshake send", err)
	}
	var reply protocol.HandshakeReply
	if err := s.dec.Next(&reply); err != nil {
		return s.classify("handshake receive", err)
	}
	if err := reply.Validate(); err != nil {
		return &protocol.ProtocolError{Reason: "handshake reply", Err: err}
	}
	if reply.Return != protocol.StatusOK {
		return &protocol.ProtocolError{Reason: "handshake", Err: protocol.ErrHandshakeRejected}
	}
	if reply.Version != "" {
		s.serverVersion = reply.Version
		if !protocol.Compatible(s.cfg.Version, reply.Version) {
			return &protocol.ProtocolError{
				Reason: fmt.Sprintf("server speaks %q, client speaks %q", reply.Version, s.cfg.Version),
				Err:    protocol.ErrVersionMismatch,
			}
		}
	}
	return nil
}

// SendCommand transmits one request and blocks for its single reply. A
// NOK reply is returned like any other: interpreting it is the caller's
// business. Any raised transport or protocol failure closes the session.
func (s *Session) SendCommand(name string, arguments any) (protocol.CommandReply, error) {
	if s.state != StateReady {
		return protocol.CommandReply{}, ErrNotReady
	}
	req := protocol.CommandRequest{Command: name, Arguments: arguments}
	if err := req.Validate(); err != nil {
		return protocol.CommandReply{}, err
	}

	log.Debug().Str("command", name).Msg("snd")
	if err := frame.Encode(s.conn, req, s.cfg.Limits); err != nil {
		err = s.classify("send", err)
		s.fail()
		return protocol.CommandReply{}, err
	}
	var reply protocol.CommandReply
	if err := s.dec.Next(&reply); err != nil {
		err = s.classify("receive", err)
		s.fail()
		return protocol.CommandReply{}, err
	}
	if err := reply.Validate(); err != nil {
		s.fail()
		return protocol.CommandReply{}, &protocol.ProtocolError{Reason: "reply", Err: err}
	}
	log.Debug().Str("command", name).Str("return", reply.Return).Msg("rcv")
	return reply, nil
}

// Close releases the transport. Safe to call in any state, any number
// of times.
func (s *Session) Close() error {
	if s.conn == nil {
		s.state = StateClosed
		return nil
	}
	conn := s.conn
	s.conn = nil
	s.state = StateClosed
	return conn.Close()
}

func (s *Session) fail() {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.state = StateClosed
}

// classify maps raised errors onto the two fatal failure kinds: OS-level
// stream errors are transport failures, malformed or truncated frames
// are protocol failures.
func (s *Session) classify(op string, err error) error {
	switch {
	case protocol.IsTransport(err):
		return err
	case errors.Is(err, io.EOF):
		return &protocol.TransportError{Op: op, Path: s.path(), Err: io.ErrUnexpectedEOF}
	case errors.Is(err, frame.ErrTruncatedFrame),
		errors.Is(err, frame.ErrFrameDecode),
		errors.Is(err, frame.ErrFrameTooLarge):
		return &protocol.ProtocolError{Reason: op, Err: err}
	default:
		return err
	}
}

func (s *Session) path() string {
	if s.conn != nil {
		return s.conn.Path()
	}
	return ""
}
