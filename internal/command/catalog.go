package command

import (
	"encoding/json"
	"errors"
)

// IntrospectCommand lists the server's registry; fetched once per shell
// session to build the descriptor set.
const IntrospectCommand = "command-list"

var ErrBadCommandList = errors.New("command: unrecognized command-list payload")

// builtinCatalog is the client-side argument table for the engine's
// stock commands. The server's command list stays authoritative for
// which names exist; these hints only shape local parsing.
func builtinCatalog() []Descriptor {
	return []Descriptor{
		{Name: "capture-mode", Shape: ShapeNone},
		{Name: "command-list", Shape: ShapeNone},
		{Name: "dump-counters", Shape: ShapeNone},
		{Name: "iface-list", Shape: ShapeNone},
		{Name: "memcap-list", Shape: ShapeNone},
		{Name: "pcap-current", Shape: ShapeNone},
		{Name: "pcap-file-list", Shape: ShapeNone},
		{Name: "pcap-file-number", Shape: ShapeNone},
		{Name: "pcap-interrupt", Shape: ShapeNone},
		{Name: "ping", Shape: ShapeNone},
		{Name: "reload-rules", Shape: ShapeNone},
		{Name: "reopen-log-files", Shape: ShapeNone},
		{Name: "ruleset-stats", Shape: ShapeNone},
		{Name: "running-mode", Shape: ShapeNone},
		{Name: "shutdown", Shape: ShapeNone},
		{Name: "uptime", Shape: ShapeNone},
		{Name: "version", Shape: ShapeNone},

		{Name: "conf-get", Shape: ShapeText, ArgKey: "variable", Required: true},
		{Name: "iface-stat", Shape: ShapeText, ArgKey: "iface", Required: true},
		{Name: "memcap-show", Shape: ShapeText, ArgKey: "config", Required: true},
		{Name: "pcap-file-remove", Shape: ShapeText, ArgKey: "filename", Required: true},
		{Name: "set-filter", Shape: ShapeText, ArgKey: "filter", Required: true},

		{Name: "dataset-add", Shape: ShapeObject, Required: true},
		{Name: "dataset-lookup", Shape: ShapeObject, Required: true},
		{Name: "dataset-remove", Shape: ShapeObject, Required: true},
		{Name: "hostbit-add", Shape: ShapeObject, Required: true},
		{Name: "hostbit-list", Shape: ShapeObject, Required: true},
		{Name: "hostbit-remove", Shape: ShapeObject, Required: true},
		{Name: "memcap-set", Shape: ShapeObject, Required: true},
		{Name: "pcap-file", Shape: ShapeObject, Required: true},
	}
}

var builtinHints = func() map[string]Descriptor {
	m := make(map[string]Descriptor)
	for _, d := range builtinCatalog() {
		m[d.Name] = d
	}
	return m
}()

func builtinHint(name string) (Descriptor, bool) {
	d, ok := builtinHints[name]
	return d, ok
}

// ParseCommandList extracts command names from a command-list reply
// payload. Engines have shipped both a bare list and an object keyed
// by "commands".
func ParseCommandList(payload []byte) ([]string, error) {
	if len(payload) == 0 {
		return nil, ErrBadCommandList
	}
	var names []string
	if err := json.Unmarshal(payload, &names); err == nil {
		return names, nil
	}
	var wrapped struct {
		Commands []string `json:"commands"`
	}
	if err := json.Unmarshal(payload, &wrapped); err == nil && wrapped.Commands != nil {
		return wrapped.Commands, nil
	}
	return nil, ErrBadCommandList
}
