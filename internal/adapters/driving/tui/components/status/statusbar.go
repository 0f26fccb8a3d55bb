// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// State is the activity shown on the left of the bar.
type State string

const (
	StateIdle    State = "idle"
	StateWorking State = "working"
	StateError   State = "error"
)

// Bar displays index state, the current activity and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	hints   []key.Binding
	state   State
	message string
	index   domain.Status
	width   int
}

// NewBar creates a status bar showing the given hints.
func NewBar(s *styles.Styles, hints []key.Binding) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Bar{
		styles: s,
		hints:  hints,
		state:  StateIdle,
		width:  80,
	}
}

// View renders the bar across the full width.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	padding := b.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}
	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateWorking:
		msg := b.message
		if msg == "" {
			msg = "Working..."
		}
		return b.styles.Muted.Render(msg)
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	}

	if b.message != "" {
		return b.styles.Normal.Render(b.message)
	}
	return b.IndexSummary()
}

// IndexSummary describes the index state in one line.
func (b *Bar) IndexSummary() string {
	if !b.index.Ready {
		return b.styles.Warning.Render(fmt.Sprintf("%d profiles | index not ready", b.index.Profiles))
	}

	mode := "fallback answers"
	if b.index.Generation {
		mode = b.index.LLMModel
	}
	line := fmt.Sprintf("%d profiles | %d chunks | %s | %s",
		b.index.Profiles, b.index.Chunks, b.index.Store, mode)
	if b.index.Stale {
		return b.styles.Warning.Render(line + " | stale")
	}
	return b.styles.Success.Render(line)
}

func (b *Bar) renderRight() string {
	hints := make([]string, 0, len(b.hints))
	for _, binding := range b.hints {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current activity.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current activity.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the message shown on the left.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// Message returns the current message.
func (b *Bar) Message() string {
	return b.message
}

// SetIndex records the latest service status.
func (b *Bar) SetIndex(status domain.Status) {
	b.index = status
}

// Index returns the latest service status.
func (b *Bar) Index() domain.Status {
	return b.index
}

// SetWidth sets the bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}

// Width returns the bar width.
func (b *Bar) Width() int {
	return b.width
}

// Clear returns to the idle state without a message.
func (b *Bar) Clear() {
	b.state = StateIdle
	b.message = ""
}
