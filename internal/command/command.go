// Package command turns operator text into wire invocations. The
// grammar is pure: it performs no I/O and fails fast before any network
// exchange.
package command

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Shape is a descriptor's argument contract.
type Shape int

const (
	// ShapeNone commands take no arguments.
	ShapeNone Shape = iota
	// ShapeText commands take one free-form string argument.
	ShapeText
	// ShapeObject commands take structured arguments given as JSON.
	ShapeObject
)

func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "none"
	case ShapeText:
		return "text"
	case ShapeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Descriptor is one command the server accepts plus the client-side
// argument hint driving validation and completion. The server remains
// the final arbiter of validity.
type Descriptor struct {
	Name  string
	Shape Shape
	// ArgKey names the single text argument on the wire (ShapeText).
	ArgKey string
	// Required rejects the command when its argument is absent.
	Required bool
}

// Invocation is one parsed operator line, ready for the wire.
// Arguments is nil when the command carries none.
type Invocation struct {
	Name      string
	Arguments any
}

// InputError is the command-input failure kind: local validation
// rejected operator text. Recoverable in place, never fatal to a
// session, and raised before any transport call.
type InputError struct {
	Command string
	Reason  string
}

func (e *InputError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("command: %s: %s", e.Command, e.Reason)
	}
	return "command: " + e.Reason
}

// IsInput reports whether err carries a command-input failure.
func IsInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// Set is the descriptor set most recently fetched from the server,
// overlaid with the builtin hints.
type Set struct {
	byName map[string]Descriptor
}

// NewSet builds a set from server-listed names. Names the builtin
// catalog knows keep their hints; the rest default to optional object
// arguments.
func NewSet(names []string) Set {
	byName := make(map[string]Descriptor, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || isExitToken(name) {
			continue
		}
		if d, ok := builtinHint(name); ok {
			byName[name] = d
			continue
		}
		byName[name] = Descriptor{Name: name, Shape: ShapeObject}
	}
	return Set{byName: byName}
}

// EmptySet is the degraded-mode set used when introspection fails: no
// name can be verified, builtin hints still shape arguments.
func EmptySet() Set {
	return Set{}
}

func (s Set) Empty() bool {
	return len(s.byName) == 0
}

func (s Set) Lookup(name string) (Descriptor, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Names returns the set's command names sorted for completion.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// isExitToken guards the shell's reserved words: they leave the shell
// locally and never reach the wire, so they stay out of the set even
// when a server lists them.
func isExitToken(name string) bool {
	return name == "quit" || name == "exit"
}
