package shell

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/danmuck/wardenctl/internal/protocol"
)

// renderReply prints one command reply. NOK is a normal result here:
// the verdict is surfaced, the payload printed either way.
func renderReply(w io.Writer, reply protocol.CommandReply) {
	payload := FormatPayload(reply.Message)
	if reply.OK() {
		fmt.Fprintln(w, payload)
		return
	}
	fmt.Fprintf(w, "NOK: %s\n", payload)
}

// FormatPayload pretty-prints a raw reply payload. Empty payloads and
// payloads that fail to re-indent pass through rather than being
// dropped.
func FormatPayload(raw []byte) string {
	if len(raw) == 0 {
		return "(no message)"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}
