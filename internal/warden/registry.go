package warden

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var ErrUnknownCommand = errors.New("warden: unknown command")

// Handler executes one engine command. Arguments arrive as the raw
// wire payload, absent arguments as nil. A returned error becomes a
// NOK reply carrying the error text; the channel itself stays up.
type Handler func(args json.RawMessage) (any, error)

// Registry maps command names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(name string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[strings.TrimSpace(name)] = handler
}

// Names returns registered command names sorted, the command-list
// payload shape.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Dispatch(name string, args json.RawMessage) (any, error) {
	r.mu.RLock()
	handler, ok := r.handlers[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return handler(args)
}

// textArg extracts one required string argument from the wire payload.
func textArg(args json.RawMessage, key string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("missing %s argument", key)
	}
	var m map[string]string
	if err := json.Unmarshal(args, &m); err != nil {
		return "", fmt.Errorf("bad arguments: %v", err)
	}
	value := strings.TrimSpace(m[key])
	if value == "" {
		return "", fmt.Errorf("missing %s argument", key)
	}
	return value, nil
}

// DefaultRegistry wires the stock engine commands against state. The
// server adds command-list and shutdown itself.
func DefaultRegistry(state *State, engineVersion string) *Registry {
	r := NewRegistry()
	r.Register("ping", func(json.RawMessage) (any, error) {
		return "pong", nil
	})
	r.Register("version", func(json.RawMessage) (any, error) {
		return engineVersion, nil
	})
	r.Register("uptime", func(json.RawMessage) (any, error) {
		return state.UptimeSeconds(), nil
	})
	r.Register("running-mode", func(json.RawMessage) (any, error) {
		return state.RunningMode(), nil
	})
	r.Register("capture-mode", func(json.RawMessage) (any, error) {
		return state.CaptureMode(), nil
	})
	r.Register("dump-counters", func(json.RawMessage) (any, error) {
		return state.Counters(), nil
	})
	r.Register("iface-list", func(json.RawMessage) (any, error) {
		ifaces := state.Ifaces()
		return map[string]any{"count": len(ifaces), "ifaces": ifaces}, nil
	})
	r.Register("iface-stat", func(args json.RawMessage) (any, error) {
		iface, err := textArg(args, "iface")
		if err != nil {
			return nil, err
		}
		stats, ok := state.IfaceStat(iface)
		if !ok {
			return nil, fmt.Errorf("unknown interface %q", iface)
		}
		return stats, nil
	})
	r.Register("set-filter", func(args json.RawMessage) (any, error) {
		filter, err := textArg(args, "filter")
		if err != nil {
			return nil, err
		}
		state.SetFilter(filter)
		return "filter set", nil
	})
	r.Register("conf-get", func(args json.RawMessage) (any, error) {
		variable, err := textArg(args, "variable")
		if err != nil {
			return nil, err
		}
		value, ok := state.ConfGet(variable)
		if !ok {
			return nil, fmt.Errorf("unknown variable %q", variable)
		}
		return value, nil
	})
	r.Register("reload-rules", func(json.RawMessage) (any, error) {
		return "done", nil
	})
	return r
}
