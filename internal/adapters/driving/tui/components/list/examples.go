// Package list provides list components for the TUI.
package list

import (
	"strings"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/styles"
)

// DefaultExamples are the example questions offered to new users.
var DefaultExamples = []string{
	"Who has Python skills?",
	"Who knows machine learning?",
	"Find people with AI experience",
	"Who works at NxtGen Cloud Technologies?",
	"Who has data science skills?",
	"Who knows React or Angular?",
	"Find people with cloud computing experience",
}

// Examples is a navigable list of example questions.
type Examples struct {
	items    []string
	selected int
	styles   *styles.Styles
}

// NewExamples creates a list. Nil items uses DefaultExamples.
func NewExamples(s *styles.Styles, items []string) *Examples {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if items == nil {
		items = DefaultExamples
	}
	return &Examples{items: items, styles: s}
}

// MoveUp selects the previous item.
func (e *Examples) MoveUp() {
	if e.selected > 0 {
		e.selected--
	}
}

// MoveDown selects the next item.
func (e *Examples) MoveDown() {
	if e.selected < len(e.items)-1 {
		e.selected++
	}
}

// Selected returns the selected question, or "" for an empty list.
func (e *Examples) Selected() string {
	if len(e.items) == 0 {
		return ""
	}
	return e.items[e.selected]
}

// Index returns the selected position.
func (e *Examples) Index() int {
	return e.selected
}

// Items returns all questions.
func (e *Examples) Items() []string {
	return e.items
}

// View renders the list with the selection marked.
func (e *Examples) View() string {
	if len(e.items) == 0 {
		return e.styles.Muted.Render("No example questions")
	}

	lines := make([]string, 0, len(e.items)+1)
	lines = append(lines, e.styles.Subtitle.Render("Example questions"))
	for i, item := range e.items {
		if i == e.selected {
			lines = append(lines, e.styles.Selected.Render("> "+item))
			continue
		}
		lines = append(lines, e.styles.Normal.Render("  "+item))
	}
	return strings.Join(lines, "\n")
}
