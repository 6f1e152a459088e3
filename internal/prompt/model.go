package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// model is the per-ReadLine bubbletea state: one text input, a history
// cursor, and a tab-completion cycle over the descriptor names.
type model struct {
	input   textinput.Model
	history []string
	// histIdx == len(history) means the live (unsubmitted) line.
	histIdx  int
	draft    string
	names    []string
	matches  []string
	matchIdx int

	submitted   string
	interrupted bool

	hintStyle lipgloss.Style
}

func newModel(prompt string, history []string, names []string, noColor bool) model {
	in := textinput.New()
	in.Prompt = prompt
	in.Focus()

	promptStyle := lipgloss.NewStyle()
	hintStyle := lipgloss.NewStyle()
	if !noColor {
		promptStyle = promptStyle.Foreground(lipgloss.Color("6"))
		hintStyle = hintStyle.Foreground(lipgloss.Color("8"))
	}
	in.PromptStyle = promptStyle

	return model{
		input:     in,
		history:   history,
		histIdx:   len(history),
		names:     names,
		matchIdx:  -1,
		hintStyle: hintStyle,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
		m.interrupted = true
		return m, tea.Quit

	case tea.KeyEnter:
		m.submitted = strings.TrimSpace(m.input.Value())
		return m, tea.Quit

	case tea.KeyUp:
		m.recall(-1)
		return m, nil

	case tea.KeyDown:
		m.recall(1)
		return m, nil

	case tea.KeyTab:
		m.complete()
		return m, nil
	}

	// Any other key breaks the completion cycle and re-anchors history
	// at the live line.
	m.matches = nil
	m.matchIdx = -1
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.histIdx = len(m.history)
	return m, cmd
}

// recall moves the history cursor, stashing the live line so stepping
// back down restores it.
func (m *model) recall(dir int) {
	if len(m.history) == 0 {
		return
	}
	next := m.histIdx + dir
	if next < 0 || next > len(m.history) {
		return
	}
	if m.histIdx == len(m.history) {
		m.draft = m.input.Value()
	}
	m.histIdx = next
	if next == len(m.history) {
		m.input.SetValue(m.draft)
	} else {
		m.input.SetValue(m.history[next])
	}
	m.input.CursorEnd()
}

// complete cycles the current first token through descriptor names
// sharing its prefix. Completion applies to the command name only;
// argument text is never touched.
func (m *model) complete() {
	value := m.input.Value()
	if strings.ContainsAny(value, " \t") {
		return
	}
	if m.matchIdx < 0 {
		m.matches = matchPrefix(m.names, value)
		if len(m.matches) == 0 {
			return
		}
		m.matchIdx = 0
	} else {
		m.matchIdx = (m.matchIdx + 1) % len(m.matches)
	}
	completed := m.matches[m.matchIdx]
	if len(m.matches) == 1 {
		completed += " "
	}
	m.input.SetValue(completed)
	m.input.CursorEnd()
}

func matchPrefix(names []string, prefix string) []string {
	var out []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	return out
}

func (m model) View() string {
	view := m.input.View()
	if len(m.matches) > 1 {
		view += "\n" + m.hintStyle.Render(strings.Join(m.matches, "  "))
	}
	return view
}
