package protocol

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/wardenctl/internal/testutil/testlog"
)

func TestHandshakeRequestValidate(t *testing.T) {
	testlog.Start(t)
	if err := (HandshakeRequest{Version: ClientVersion}).Validate(); err != nil {
		t.Fatalf("valid handshake rejected: %v", err)
	}
	err := (HandshakeRequest{Version: "  "}).Validate()
	if !errors.Is(err, ErrInvalidHandshake) {
		t.Fatalf("expected ErrInvalidHandshake, got %v", err)
	}
}

func TestReplyValidateStatus(t *testing.T) {
	testlog.Start(t)
	if err := (HandshakeReply{Return: StatusOK}).Validate(); err != nil {
		t.Fatalf("OK rejected: %v", err)
	}
	if err := (CommandReply{Return: StatusNOK}).Validate(); err != nil {
		t.Fatalf("NOK rejected: %v", err)
	}
	if err := (HandshakeReply{Return: "ok"}).Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if err := (CommandReply{Return: "FAILED"}).Validate(); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestCommandRequestValidate(t *testing.T) {
	testlog.Start(t)
	if err := (CommandRequest{Command: "uptime"}).Validate(); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if err := (CommandRequest{Command: " "}).Validate(); !errors.Is(err, ErrEmptyCommand) {
		t.Fatalf("expected ErrEmptyCommand, got %v", err)
	}
}

func TestCommandRequestOmitsNilArguments(t *testing.T) {
	testlog.Start(t)
	raw, err := json.Marshal(CommandRequest{Command: "uptime"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(raw), "arguments") {
		t.Fatalf("nil arguments leaked onto the wire: %s", raw)
	}
	raw, err = json.Marshal(CommandRequest{
		Command:   "iface-stat",
		Arguments: map[string]any{"iface": "eth0"},
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(raw), `"arguments":{"iface":"eth0"}`) {
		t.Fatalf("arguments missing: %s", raw)
	}
}

func TestCompatibleMajorOnly(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		client string
		server string
		want   bool
	}{
		{"0.3", "0.3", true},
		{"0.3", "0.1", true},
		{"0.3", "0", true},
		{"0.3", "1.0", false},
		{"1.2", "1.9", true},
		{"0.3", "", false},
	}
	for _, tc := range cases {
		if got := Compatible(tc.client, tc.server); got != tc.want {
			t.Fatalf("Compatible(%q,%q)=%v want=%v", tc.client, tc.server, got, tc.want)
		}
	}
}

func TestFailureKindsAreDisjoint(t *testing.T) {
	testlog.Start(t)
	te := &TransportError{Op: "dial", Path: "/run/warden.sock", Err: errors.New("connection refused")}
	pe := &ProtocolError{Reason: "handshake", Err: ErrHandshakeRejected}

	if !IsTransport(te) || IsProtocol(te) {
		t.Fatalf("transport error misclassified")
	}
	if !IsProtocol(pe) || IsTransport(pe) {
		t.Fatalf("protocol error misclassified")
	}
	if !errors.Is(pe, ErrHandshakeRejected) {
		t.Fatalf("protocol error lost its cause")
	}
	if !strings.Contains(te.Error(), "/run/warden.sock") {
		t.Fatalf("transport error dropped the socket path: %s", te.Error())
	}
}
