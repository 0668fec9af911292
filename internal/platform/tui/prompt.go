package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidLines is returned by ParseLines for input that is not a
// positive whole number.
var ErrInvalidLines = errors.New("enter a whole number greater than zero")

// ParseLines parses a line target typed by the player.
func ParseLines(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, ErrInvalidLines
	}
	return n, nil
}

var (
	promptTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				MarginBottom(1)
	promptErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("1"))
	promptHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// PromptModel asks for the number of lines to clear before a game starts.
type PromptModel struct {
	input    textinput.Model
	help     help.Model
	keys     KeyMap
	submit   key.Binding
	cancel   key.Binding
	err      error
	fallback int // submitted on an empty Enter; 0 disables it
	lines    int
	done     bool
	quitting bool
}

// NewPromptModel creates a focused line prompt. Pressing Enter on an empty
// prompt submits defaultLines when it is positive.
func NewPromptModel(keys KeyMap, defaultLines int) PromptModel {
	ti := textinput.New()
	ti.Prompt = "Set lines! > "
	if defaultLines > 0 {
		ti.Placeholder = strconv.Itoa(defaultLines)
	}
	ti.CharLimit = 6
	ti.Focus()

	h := help.New()
	h.ShowAll = true

	return PromptModel{
		input:    ti,
		help:     h,
		keys:     keys,
		fallback: defaultLines,
		submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// Init starts the cursor blink.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles typing, submission and cancellation.
func (m PromptModel) Update(msg tea.Msg) (PromptModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.cancel):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.submit):
			value := m.input.Value()
			if strings.TrimSpace(value) == "" && m.fallback > 0 {
				value = strconv.Itoa(m.fallback)
			}
			lines, err := ParseLines(value)
			if err != nil {
				m.err = err
				m.input.SetValue("")
				return m, nil
			}
			m.lines = lines
			m.done = true
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Lines returns the submitted line count and whether one was submitted.
func (m PromptModel) Lines() (int, bool) {
	return m.lines, m.done
}

// IsQuitting returns true if the player cancelled the prompt.
func (m PromptModel) IsQuitting() bool {
	return m.quitting
}

// View renders the prompt, the last validation error and the controls.
func (m PromptModel) View() string {
	var b strings.Builder

	b.WriteString(promptTitleStyle.Render("TETRIS"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(promptErrorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(promptHelpStyle.Render(m.help.View(m.keys)))
	b.WriteString("\n")
	b.WriteString(promptHelpStyle.Render(m.help.ShortHelpView([]key.Binding{m.submit, m.cancel})))

	return b.String()
}
