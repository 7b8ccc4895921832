package shell

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/rolodex/internal/command"
)

// chromeHeight is the number of lines reserved around the scrollback:
// banner, input line, and help bar.
const chromeHeight = 3

// welcome is the session banner, shared with the plain session.
const welcome = "Welcome to the assistant bot!"

// Model is the Bubble Tea model for the interactive session: a scrollback
// of command/reply lines above a single-line prompt.
type Model struct {
	handler *command.Handler
	save    func() error

	input    textinput.Model
	history  []string
	recalled []string // submitted lines for ↑/↓ recall
	recallIx int
	keys     sessionKeys
	help     help.Model
	width    int
	height   int
	err      error // save failure, surfaced after quit
	quitting bool
}

// NewModel creates a session Model bound to a command handler. save is
// invoked once when the session ends.
func NewModel(h *command.Handler, save func() error) Model {
	ti := textinput.New()
	ti.Prompt = PromptStyle().Render("> ")
	ti.Placeholder = "hello"
	ti.Focus()

	return Model{
		handler: h,
		save:    save,
		input:   ti,
		keys:    SessionKeyMap(),
		help:    help.New(),
	}
}

// Err returns the save error captured at session end, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the input cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit("Good bye!")

		case key.Matches(msg, m.keys.Enter):
			return m.submit()

		case key.Matches(msg, m.keys.PrevCmd):
			m.recall(-1)
			return m, nil

		case key.Matches(msg, m.keys.NextCmd):
			m.recall(+1)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit dispatches the current input line and appends the exchange to
// the scrollback.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()

	if strings.TrimSpace(line) == "" {
		return m, nil
	}

	m.recalled = append(m.recalled, line)
	m.recallIx = len(m.recalled)
	m.history = append(m.history, EchoStyle().Render("> "+line))

	reply, quit := m.handler.Dispatch(line)
	if quit {
		return m.quit(reply)
	}
	if reply != "" {
		m.history = append(m.history, strings.Split(reply, "\n")...)
	}
	return m, nil
}

// quit saves the book, records the farewell, and ends the program.
func (m Model) quit(farewell string) (tea.Model, tea.Cmd) {
	m.quitting = true
	if farewell != "" {
		m.history = append(m.history, farewell)
	}
	if m.save != nil {
		m.err = m.save()
	}
	return m, tea.Quit
}

// recall moves through previously submitted lines. delta is -1 for older,
// +1 for newer; past the newest entry the input clears.
func (m *Model) recall(delta int) {
	if len(m.recalled) == 0 {
		return
	}
	m.recallIx += delta
	if m.recallIx < 0 {
		m.recallIx = 0
	}
	if m.recallIx >= len(m.recalled) {
		m.recallIx = len(m.recalled)
		m.input.Reset()
		return
	}
	m.input.SetValue(m.recalled[m.recallIx])
	m.input.CursorEnd()
}

// View renders the banner, the scrollback tail, the prompt, and the help bar.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle().Render(welcome))
	b.WriteString("\n")

	for _, line := range m.visibleHistory() {
		b.WriteString(line)
		b.WriteString("\n")
	}

	if m.quitting {
		if m.err != nil {
			b.WriteString(ErrorStyle().Render("warning: saving address book failed: " + m.err.Error()))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// visibleHistory returns the scrollback tail that fits the terminal.
func (m Model) visibleHistory() []string {
	if m.height == 0 {
		return m.history
	}
	max := m.height - chromeHeight
	if max < 1 {
		max = 1
	}
	if len(m.history) <= max {
		return m.history
	}
	return m.history[len(m.history)-max:]
}
