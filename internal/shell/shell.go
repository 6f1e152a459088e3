package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/wardenctl/internal/command"
	"github.com/danmuck/wardenctl/internal/protocol"
)

// DefaultPrompt is displayed when no prompt is configured.
const DefaultPrompt = ">>> "

// Conn is the session surface the shell dispatches through. Satisfied
// by *session.Session.
type Conn interface {
	SendCommand(name string, arguments any) (protocol.CommandReply, error)
	Close() error
}

// LineEditor supplies one line of operator input per call. ReadLine
// returns io.EOF when input ends, including an operator interrupt:
// both mean the shell should exit. Implementations that keep history
// record submitted lines via AppendHistory.
type LineEditor interface {
	ReadLine() (string, error)
	AppendHistory(entry string)
	Close() error
}

// completionSetter is implemented by editors that complete command
// names; the shell feeds it the descriptor set once fetched.
type completionSetter interface {
	SetCompletions(names []string)
}

// Config wires one shell run.
type Config struct {
	Conn   Conn
	Editor LineEditor
	Out    io.Writer
}

// Shell is the interactive loop. Single-flow: one line, one dispatch,
// one reply at a time.
type Shell struct {
	conn   Conn
	editor LineEditor
	out    io.Writer
	set    command.Set
}

func New(cfg Config) *Shell {
	return &Shell{
		conn:   cfg.Conn,
		editor: cfg.Editor,
		out:    cfg.Out,
	}
}

// Run drives the loop until the operator leaves or the session dies.
// The session is closed on every exit path. The returned error is the
// transport/protocol failure that ended the loop, nil on a clean exit.
func (s *Shell) Run() error {
	defer func() {
		_ = s.conn.Close()
		_ = s.editor.Close()
	}()

	s.set = FetchDescriptors(s.conn)
	if cs, ok := s.editor.(completionSetter); ok {
		cs.SetCompletions(s.set.Names())
	}

	for {
		line, err := s.editor.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Msg("read line")
			}
			return s.farewell()
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if isExitToken(trimmed) {
			return s.farewell()
		}
		s.editor.AppendHistory(trimmed)

		if err := s.dispatch(trimmed); err != nil {
			fmt.Fprintf(s.out, "communication failure: %v\n", err)
			_ = s.farewell()
			return err
		}
	}
}

// dispatch parses and sends one line. A command-input failure is
// printed and swallowed; the returned error is only ever a fatal
// transport/protocol failure.
func (s *Shell) dispatch(line string) error {
	inv, err := command.Parse(line, s.set)
	if err != nil {
		fmt.Fprintln(s.out, err)
		return nil
	}
	reply, err := s.conn.SendCommand(inv.Name, inv.Arguments)
	if err != nil {
		return err
	}
	renderReply(s.out, reply)
	return nil
}

func (s *Shell) farewell() error {
	fmt.Fprintln(s.out, "bye")
	return nil
}

// FetchDescriptors asks the server for its command list. Any failure
// degrades to an empty set so the shell stays usable; the server then
// rejects what the client could not pre-check.
func FetchDescriptors(conn Conn) command.Set {
	reply, err := conn.SendCommand(command.IntrospectCommand, nil)
	if err != nil {
		log.Warn().Err(err).Msg("command-list introspection failed; running degraded")
		return command.EmptySet()
	}
	if !reply.OK() {
		log.Warn().Str("return", reply.Return).Msg("server refused command-list; running degraded")
		return command.EmptySet()
	}
	names, err := command.ParseCommandList(reply.Message)
	if err != nil {
		log.Warn().Err(err).Msg("unusable command-list payload; running degraded")
		return command.EmptySet()
	}
	return command.NewSet(names)
}

// isExitToken matches the builtin shell words that leave without
// contacting the server.
func isExitToken(line string) bool {
	switch strings.ToLower(line) {
	case "quit", "exit":
		return true
	default:
		return false
	}
}
