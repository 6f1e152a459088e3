package warden

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/danmuck/wardenctl/internal/testutil/testlog"
)

func TestRegistryDispatchUnknown(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	if _, err := r.Dispatch("nope", nil); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}

func TestDefaultRegistryConfGet(t *testing.T) {
	testlog.Start(t)
	r := DefaultRegistry(NewState(), "warden test")

	payload, err := r.Dispatch("conf-get", json.RawMessage(`{"variable":"runmode"}`))
	if err != nil {
		t.Fatalf("conf-get: %v", err)
	}
	if payload != "workers" {
		t.Fatalf("payload=%v", payload)
	}

	if _, err := r.Dispatch("conf-get", json.RawMessage(`{"variable":"no-such"}`)); err == nil {
		t.Fatalf("unknown variable accepted")
	}
	if _, err := r.Dispatch("conf-get", nil); err == nil {
		t.Fatalf("missing argument accepted")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	testlog.Start(t)
	r := NewRegistry()
	r.Register("zzz", func(json.RawMessage) (any, error) { return nil, nil })
	r.Register("aaa", func(json.RawMessage) (any, error) { return nil, nil })
	names := r.Names()
	if len(names) != 2 || names[0] != "aaa" || names[1] != "zzz" {
		t.Fatalf("names=%v", names)
	}
}
