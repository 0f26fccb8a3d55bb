// Package help provides the keybinding and example question reference view.
package help

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/styles"
)

// View lists every keybinding and the example questions.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap
	width  int
	height int
}

// NewView creates a help view.
func NewView(s *styles.Styles, km *keymap.KeyMap) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{styles: s, keymap: km, width: 80, height: 24}
}

// Init implements the view lifecycle.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update returns to the menu on back or help.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		keyStr := msg.String()
		if keymap.Matches(keyStr, v.keymap.Back) || keymap.Matches(keyStr, v.keymap.Help) {
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		}
	}
	return v, nil
}

// View renders the help text.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Help"))
	b.WriteString("\n\n")

	for _, group := range v.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %s %s\n", v.styles.Selected.Render(fmt.Sprintf("%-8s", h.Key)), h.Desc)
		}
		b.WriteString("\n")
	}

	b.WriteString(v.styles.Subtitle.Render("Example questions"))
	b.WriteString("\n")
	for _, q := range list.DefaultExamples {
		b.WriteString("  " + v.styles.Muted.Render(q) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render("Answers fall back to a skills analysis when no language model is reachable."))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Muted.Render("[esc] back to menu"))

	return b.String()
}

// SetDimensions sets the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}
