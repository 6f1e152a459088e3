package command

import (
	"errors"
	"reflect"
	"testing"

	"github.com/danmuck/wardenctl/internal/testutil/testlog"
)

func TestNewSetOverlaysBuiltinHints(t *testing.T) {
	testlog.Start(t)
	set := NewSet([]string{"uptime", "conf-get", "engine-custom", " ", "quit", "exit"})

	d, ok := set.Lookup("uptime")
	if !ok || d.Shape != ShapeNone {
		t.Fatalf("uptime descriptor: %+v ok=%v", d, ok)
	}
	d, ok = set.Lookup("conf-get")
	if !ok || d.Shape != ShapeText || d.ArgKey != "variable" || !d.Required {
		t.Fatalf("conf-get descriptor: %+v ok=%v", d, ok)
	}
	d, ok = set.Lookup("engine-custom")
	if !ok || d.Shape != ShapeObject || d.Required {
		t.Fatalf("unlisted-in-catalog descriptor: %+v ok=%v", d, ok)
	}
	if _, ok := set.Lookup("quit"); ok {
		t.Fatalf("shell exit token leaked into the set")
	}
	if _, ok := set.Lookup("missing"); ok {
		t.Fatalf("lookup invented a descriptor")
	}
}

func TestSetNamesSorted(t *testing.T) {
	testlog.Start(t)
	set := NewSet([]string{"version", "conf-get", "uptime"})
	want := []string{"conf-get", "uptime", "version"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("names=%v want=%v", got, want)
	}
}

func TestParseCommandListShapes(t *testing.T) {
	testlog.Start(t)
	names, err := ParseCommandList([]byte(`["uptime","version"]`))
	if err != nil {
		t.Fatalf("bare list: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"uptime", "version"}) {
		t.Fatalf("bare list names=%v", names)
	}

	names, err = ParseCommandList([]byte(`{"commands":["uptime"],"count":1}`))
	if err != nil {
		t.Fatalf("wrapped list: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"uptime"}) {
		t.Fatalf("wrapped list names=%v", names)
	}

	if _, err := ParseCommandList([]byte(`"pong"`)); !errors.Is(err, ErrBadCommandList) {
		t.Fatalf("expected ErrBadCommandList, got %v", err)
	}
	if _, err := ParseCommandList(nil); !errors.Is(err, ErrBadCommandList) {
		t.Fatalf("expected ErrBadCommandList for empty payload, got %v", err)
	}
}
