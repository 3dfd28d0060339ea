// Package tui runs interactive address book sessions, either as a Bubble Tea
// terminal UI or as a plain line-oriented prompt.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/addrbook/internal/command"
)

// Handler runs one input line. Implemented by *command.Dispatcher.
type Handler interface {
	Handle(line string) command.Reply
}

// lineKind selects how a scrollback line is styled.
type lineKind int

const (
	kindEcho lineKind = iota
	kindReply
	kindFail
)

type scrollLine struct {
	kind lineKind
	text string
}

// Model is the Bubble Tea model for an interactive session.
type Model struct {
	handler  Handler
	input    textinput.Model
	prompt   string
	lines    []scrollLine
	height   int
	quitting bool
}

// NewModel creates a Model that sends submitted lines to h.
func NewModel(h Handler, prompt string) Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Focus()

	return Model{
		handler: h,
		input:   ti,
		prompt:  prompt,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.prompt) - 1
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit hands the current input to the handler and records the exchange.
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	m.input.Reset()
	m.lines = append(m.lines, scrollLine{kind: kindEcho, text: m.prompt + line})

	reply := m.handler.Handle(line)
	if reply.Text != "" {
		kind := kindReply
		if reply.Failed {
			kind = kindFail
		}
		for _, l := range strings.Split(strings.TrimRight(reply.Text, "\n"), "\n") {
			m.lines = append(m.lines, scrollLine{kind: kind, text: l})
		}
	}

	if reply.Quit {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the title, the visible scrollback, and the prompt.
func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(command.Welcome))
	sb.WriteString("\n\n")

	for _, l := range m.visibleLines() {
		sb.WriteString(styleFor(l.kind).Render(l.text))
		sb.WriteByte('\n')
	}

	if m.quitting {
		return sb.String()
	}

	sb.WriteString(m.input.View())
	sb.WriteString("\n\n")
	sb.WriteString(footerStyle.Render("enter: run • esc: quit"))
	sb.WriteByte('\n')
	return sb.String()
}

// visibleLines returns the tail of the scrollback that fits the window.
// Title, prompt and footer take six rows.
func (m Model) visibleLines() []scrollLine {
	if m.height <= 0 {
		return m.lines
	}
	room := m.height - 6
	if room < 1 {
		room = 1
	}
	if len(m.lines) <= room {
		return m.lines
	}
	return m.lines[len(m.lines)-room:]
}

func styleFor(k lineKind) lipgloss.Style {
	switch k {
	case kindEcho:
		return echoStyle
	case kindFail:
		return failStyle
	default:
		return replyStyle
	}
}
