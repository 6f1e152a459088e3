package command

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danmuck/wardenctl/internal/testutil/testlog"
)

func stockSet() Set {
	return NewSet([]string{
		"uptime", "conf-get", "set-filter", "pcap-file", "dump-counters", "engine-custom",
	})
}

func TestParseNullary(t *testing.T) {
	testlog.Start(t)
	inv, err := Parse("uptime", stockSet())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if inv.Name != "uptime" || inv.Arguments != nil {
		t.Fatalf("unexpected invocation: %+v", inv)
	}

	_, err = Parse("uptime now", stockSet())
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if ie.Command != "uptime" {
		t.Fatalf("failure lost the command name: %+v", ie)
	}
}

func TestParseQuoting(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		line string
		want string
	}{
		{`set-filter "a b" 3`, "a b 3"},
		{`set-filter "a b"`, "a b"},
		{`set-filter a b 3`, "a b 3"},
		{`set-filter tcp port 80`, "tcp port 80"},
	}
	for _, tc := range cases {
		inv, err := Parse(tc.line, stockSet())
		if err != nil {
			t.Fatalf("parse %q: %v", tc.line, err)
		}
		want := map[string]any{"filter": tc.want}
		if !reflect.DeepEqual(inv.Arguments, want) {
			t.Fatalf("parse %q: arguments=%+v want=%+v", tc.line, inv.Arguments, want)
		}
	}
}

func TestParseMalformedQuoting(t *testing.T) {
	testlog.Start(t)
	_, err := Parse(`set-filter "never closed`, stockSet())
	if !IsInput(err) {
		t.Fatalf("expected input failure, got %v", err)
	}
}

func TestParseTextRequired(t *testing.T) {
	testlog.Start(t)
	_, err := Parse("conf-get", stockSet())
	if !IsInput(err) {
		t.Fatalf("expected input failure, got %v", err)
	}
	inv, err := Parse("conf-get logging.default-log-level", stockSet())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := map[string]any{"variable": "logging.default-log-level"}
	if !reflect.DeepEqual(inv.Arguments, want) {
		t.Fatalf("arguments=%+v want=%+v", inv.Arguments, want)
	}
}

func TestParseObjectArguments(t *testing.T) {
	testlog.Start(t)
	inv, err := Parse(`pcap-file {"filename":"trace.pcap","output-dir":"/var/log/warden"}`, stockSet())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	args, ok := inv.Arguments.(map[string]any)
	if !ok {
		t.Fatalf("arguments not a mapping: %T", inv.Arguments)
	}
	if args["filename"] != "trace.pcap" || args["output-dir"] != "/var/log/warden" {
		t.Fatalf("arguments=%+v", args)
	}

	if _, err := Parse("pcap-file", stockSet()); !IsInput(err) {
		t.Fatalf("missing required arguments accepted: %v", err)
	}
	if _, err := Parse("pcap-file not json", stockSet()); !IsInput(err) {
		t.Fatalf("undecodable arguments accepted: %v", err)
	}
	if _, err := Parse(`pcap-file {"a":1} trailing`, stockSet()); !IsInput(err) {
		t.Fatalf("trailing data accepted: %v", err)
	}
}

func TestParseObjectSequence(t *testing.T) {
	testlog.Start(t)
	inv, err := Parse(`engine-custom ["one","two"]`, stockSet())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := inv.Arguments.([]any); !ok {
		t.Fatalf("sequence arguments lost: %T", inv.Arguments)
	}
	if _, err := Parse(`engine-custom "bare string"`, stockSet()); !IsInput(err) {
		t.Fatalf("scalar arguments accepted: %v", err)
	}
}

func TestParseUnknownCommand(t *testing.T) {
	testlog.Start(t)
	_, err := Parse("made-up-command", stockSet())
	var ie *InputError
	if !errors.As(err, &ie) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if ie.Command != "made-up-command" {
		t.Fatalf("failure lost the offending name: %+v", ie)
	}
}

func TestParseDegradedMode(t *testing.T) {
	testlog.Start(t)
	inv, err := Parse("conf-get unix-command.enabled", EmptySet())
	if err != nil {
		t.Fatalf("builtin hint ignored in degraded mode: %v", err)
	}
	want := map[string]any{"variable": "unix-command.enabled"}
	if !reflect.DeepEqual(inv.Arguments, want) {
		t.Fatalf("arguments=%+v want=%+v", inv.Arguments, want)
	}

	inv, err = Parse("vendor-extension", EmptySet())
	if err != nil || inv.Arguments != nil {
		t.Fatalf("unknown nullary rejected in degraded mode: %+v err=%v", inv, err)
	}
	if _, err := Parse(`vendor-extension {"k":"v"}`, EmptySet()); err != nil {
		t.Fatalf("object arguments rejected in degraded mode: %v", err)
	}
	if _, err := Parse("vendor-extension free text", EmptySet()); !IsInput(err) {
		t.Fatalf("non-JSON arguments accepted for unhinted command: %v", err)
	}
}

func TestParseEmptyLine(t *testing.T) {
	testlog.Start(t)
	if _, err := Parse("   ", stockSet()); !IsInput(err) {
		t.Fatalf("expected input failure, got %v", err)
	}
}
