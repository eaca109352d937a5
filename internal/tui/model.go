// Package tui implements the split-pane terminal UI: a pattern input on
// top, the subject text on the left and the match spans on the right.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coregx/retrace"
	"github.com/coregx/retrace/meta"
)

var (
	focusedColor = lipgloss.Color("205")
	blurredColor = lipgloss.Color("240")
	errorColor   = lipgloss.Color("196")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(focusedColor)
	helpStyle  = lipgloss.NewStyle().Foreground(blurredColor)
	errorStyle = lipgloss.NewStyle().Foreground(errorColor)
)

type pane int

const (
	patternPane pane = iota
	textPane
)

// Model is the split-pane matcher state. The pattern recompiles and the
// span listing recomputes on every keystroke.
type Model struct {
	pattern textinput.Model
	text    textarea.Model
	config  meta.Config

	re         *retrace.Regex
	compileErr error
	spans      []string

	focus      pane
	width      int
	height     int
	paneHeight int
	quitting   bool
}

// New returns a Model matching under config.
func New(config meta.Config) *Model {
	pattern := textinput.New()
	pattern.Placeholder = "Enter regex..."
	pattern.CharLimit = 256
	pattern.Focus()

	text := textarea.New()
	text.Placeholder = "Type or paste the text to match against..."
	text.ShowLineNumbers = false

	m := &Model{
		pattern: pattern,
		text:    text,
		config:  config,
		focus:   patternPane,
		width:   80,
		height:  24,
	}
	m.layout()
	m.recompile()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "tab":
			m.toggleFocus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case patternPane:
		before := m.pattern.Value()
		m.pattern, cmd = m.pattern.Update(msg)
		if m.pattern.Value() != before {
			m.recompile()
		}
	case textPane:
		before := m.text.Value()
		m.text, cmd = m.text.Update(msg)
		if m.text.Value() != before {
			m.rematch()
		}
	}
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	patternBox := m.boxStyle(m.focus == patternPane).
		Width(m.width - 4).
		Render(titleStyle.Render("Enter regex: ") + m.pattern.View())

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	textBox := m.boxStyle(m.focus == textPane).
		Width(leftWidth - 4).
		Render(m.text.View())

	spanBox := m.boxStyle(false).
		Width(rightWidth - 4).
		Height(m.paneHeight).
		Render(m.spanView())

	status := helpStyle.Render("Tab: switch pane • Ctrl+C: quit")
	if m.compileErr != nil {
		status = errorStyle.Render(m.compileErr.Error())
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top, textBox, spanBox)
	return lipgloss.JoinVertical(lipgloss.Left, patternBox, panes, status)
}

// recompile rebuilds the engine from the pattern input. A broken pattern
// keeps the error for the status line and clears the span listing.
func (m *Model) recompile() {
	m.re, m.compileErr = retrace.CompileWithConfig(m.pattern.Value(), m.config)
	m.rematch()
}

// rematch recomputes the span listing, one start:end line per match.
func (m *Model) rematch() {
	m.spans = m.spans[:0]
	if m.re == nil {
		return
	}
	for _, match := range m.re.FindAll(m.text.Value()) {
		start, end := match.Span()
		m.spans = append(m.spans, fmt.Sprintf("%d:%d", start, end))
	}
}

func (m *Model) spanView() string {
	if len(m.spans) == 0 {
		return helpStyle.Render("(no matches)")
	}
	return strings.Join(m.spans, "\n")
}

func (m *Model) toggleFocus() {
	if m.focus == patternPane {
		m.focus = textPane
		m.pattern.Blur()
		m.text.Focus()
	} else {
		m.focus = patternPane
		m.text.Blur()
		m.pattern.Focus()
	}
}

func (m *Model) layout() {
	m.pattern.Width = m.width - 20

	m.paneHeight = m.height - 8
	if m.paneHeight < 3 {
		m.paneHeight = 3
	}
	paneWidth := m.width/2 - 4
	if paneWidth < 10 {
		paneWidth = 10
	}
	m.text.SetWidth(paneWidth)
	m.text.SetHeight(m.paneHeight)
}

func (m *Model) boxStyle(focused bool) lipgloss.Style {
	borderColor := blurredColor
	if focused {
		borderColor = focusedColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)
}
