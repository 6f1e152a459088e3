// Package prompt is the terminal line editor behind the interactive
// shell: single-line input with history recall and tab completion over
// the live descriptor set. Injected as a shell.LineEditor so the loop
// itself never touches the terminal.
package prompt

import (
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// Config shapes one editor.
type Config struct {
	Prompt string
	// History seeds recall with previously persisted entries.
	History []string
	// MaxHistory caps recall depth; 0 means the default.
	MaxHistory int
	NoColor    bool
}

const defaultMaxHistory = 200

// Editor reads one line per call through a short-lived bubbletea
// program. Not safe for concurrent use, matching the single-flow
// shell contract.
type Editor struct {
	prompt     string
	history    []string
	maxHistory int
	names      []string
	noColor    bool
}

func New(cfg Config) *Editor {
	prompt := cfg.Prompt
	if strings.TrimSpace(prompt) == "" {
		prompt = ">>> "
	}
	maxHistory := cfg.MaxHistory
	if maxHistory <= 0 {
		maxHistory = defaultMaxHistory
	}
	e := &Editor{
		prompt:     prompt,
		maxHistory: maxHistory,
		noColor:    cfg.NoColor,
	}
	for _, entry := range cfg.History {
		e.AppendHistory(entry)
	}
	return e
}

// SetCompletions installs the command names offered on tab. The shell
// calls this once the descriptor set is known.
func (e *Editor) SetCompletions(names []string) {
	e.names = names
}

// AppendHistory records one submitted line for up-arrow recall.
// Consecutive duplicates collapse.
func (e *Editor) AppendHistory(entry string) {
	entry = strings.TrimSpace(entry)
	if entry == "" {
		return
	}
	if n := len(e.history); n > 0 && e.history[n-1] == entry {
		return
	}
	e.history = append(e.history, entry)
	if len(e.history) > e.maxHistory {
		e.history = e.history[len(e.history)-e.maxHistory:]
	}
}

// History returns the recorded entries for persistence on exit.
func (e *Editor) History() []string {
	out := make([]string, len(e.history))
	copy(out, e.history)
	return out
}

// ReadLine blocks for one line of operator input. Ctrl-C and Ctrl-D
// surface as io.EOF: end of input, the shell's cue to exit.
func (e *Editor) ReadLine() (string, error) {
	m := newModel(e.prompt, e.history, e.names, e.noColor)
	p := tea.NewProgram(m)
	out, err := p.Run()
	if err != nil {
		return "", err
	}
	final, ok := out.(model)
	if !ok || final.interrupted {
		return "", io.EOF
	}
	return final.submitted, nil
}

func (e *Editor) Close() error { return nil }
