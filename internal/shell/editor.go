package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ReaderEditor is the plain line editor: prompt to out, one line from
// in. No history, no completion. Used for piped stdin and as the
// fallback when no terminal is attached.
type ReaderEditor struct {
	reader *bufio.Reader
	out    io.Writer
	prompt string
}

func NewReaderEditor(in io.Reader, out io.Writer, prompt string) *ReaderEditor {
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultPrompt
	}
	return &ReaderEditor{
		reader: bufio.NewReader(in),
		out:    out,
		prompt: prompt,
	}
}

func (e *ReaderEditor) ReadLine() (string, error) {
	fmt.Fprint(e.out, e.prompt)
	line, err := e.reader.ReadString('\n')
	if err != nil {
		// A final unterminated line still counts as input.
		if err == io.EOF && strings.TrimSpace(line) != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (e *ReaderEditor) AppendHistory(string) {}

func (e *ReaderEditor) Close() error { return nil }
