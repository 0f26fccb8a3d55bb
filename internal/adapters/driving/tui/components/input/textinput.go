// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/styles"
)

// Placeholder is shown while the input is empty.
const Placeholder = "Ask anything about the LinkedIn profiles..."

// QuestionInput wraps a bubbles textinput and keeps a history of
// submitted questions.
type QuestionInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int

	history []string
	// cursor indexes history while browsing; len(history) means "not browsing".
	cursor int
}

// NewQuestionInput creates a focused question input.
func NewQuestionInput(s *styles.Styles) *QuestionInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "> "
	ti.CharLimit = 512
	ti.Width = 60
	ti.Focus()

	return &QuestionInput{
		textinput: ti,
		styles:    s,
		width:     60,
	}
}

// Init starts the cursor blink.
func (q *QuestionInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update forwards messages to the text input.
func (q *QuestionInput) Update(msg tea.Msg) (*QuestionInput, tea.Cmd) {
	var cmd tea.Cmd
	q.textinput, cmd = q.textinput.Update(msg)
	return q, cmd
}

// View renders the labelled input.
func (q *QuestionInput) View() string {
	label := q.styles.Title.Render("Question ")
	field := q.styles.InputField.Render(q.textinput.View())
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Submit returns the trimmed value, records it in history and clears the input.
// Blank input returns "" and is not recorded.
func (q *QuestionInput) Submit() string {
	question := strings.TrimSpace(q.textinput.Value())
	if question == "" {
		return ""
	}
	if n := len(q.history); n == 0 || q.history[n-1] != question {
		q.history = append(q.history, question)
	}
	q.cursor = len(q.history)
	q.textinput.Reset()
	return question
}

// Previous replaces the value with the previous history entry.
func (q *QuestionInput) Previous() {
	if q.cursor == 0 {
		return
	}
	q.cursor--
	q.textinput.SetValue(q.history[q.cursor])
	q.textinput.CursorEnd()
}

// Next moves forward in history, clearing the input past the newest entry.
func (q *QuestionInput) Next() {
	if q.cursor >= len(q.history) {
		return
	}
	q.cursor++
	if q.cursor == len(q.history) {
		q.textinput.Reset()
		return
	}
	q.textinput.SetValue(q.history[q.cursor])
	q.textinput.CursorEnd()
}

// History returns submitted questions, oldest first.
func (q *QuestionInput) History() []string {
	return q.history
}

// Value returns the current input value.
func (q *QuestionInput) Value() string {
	return q.textinput.Value()
}

// SetValue sets the input value.
func (q *QuestionInput) SetValue(value string) {
	q.textinput.SetValue(value)
	q.textinput.CursorEnd()
}

// Focus sets focus on the input.
func (q *QuestionInput) Focus() tea.Cmd {
	return q.textinput.Focus()
}

// Blur removes focus from the input.
func (q *QuestionInput) Blur() {
	q.textinput.Blur()
}

// Focused returns whether the input is focused.
func (q *QuestionInput) Focused() bool {
	return q.textinput.Focused()
}

// SetWidth sets the width of the input, leaving room for the label.
func (q *QuestionInput) SetWidth(width int) {
	q.width = width
	q.textinput.Width = max(width-16, 20)
}

// Width returns the current width.
func (q *QuestionInput) Width() int {
	return q.width
}
