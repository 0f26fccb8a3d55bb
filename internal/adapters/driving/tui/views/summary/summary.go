// Package summary provides the skill summary view for the TUI.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driving"
)

const maxBarWidth = 40

// View renders the top skills as a horizontal bar chart.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar
	profiles  driving.ProfileService
	ctx       context.Context

	result  *domain.SummaryResult
	loading bool
	width   int
	height  int
}

// NewView creates a summary view.
func NewView(s *styles.Styles, km *keymap.KeyMap, profiles driving.ProfileService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:    s,
		keymap:    km,
		statusbar: status.NewBar(s, km.BrowseHelp()),
		profiles:  profiles,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context used for loading.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the summary.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that fetches the summary.
func (v *View) Load() tea.Cmd {
	if v.profiles == nil {
		return nil
	}
	v.loading = true
	return func() tea.Msg {
		return messages.SummaryLoaded{Result: v.profiles.Summary(v.ctx)}
	}
}

// Update handles messages for the summary view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.SummaryLoaded:
		v.loading = false
		res := msg.Result
		v.result = &res

	case messages.StatusLoaded:
		v.statusbar.SetIndex(msg.Status)

	case messages.SetupCompleted:
		return v, v.Load()

	case tea.KeyMsg:
		keyStr := msg.String()
		switch {
		case keymap.Matches(keyStr, v.keymap.Back):
			return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
		case keymap.Matches(keyStr, v.keymap.Refresh):
			return v, v.Load()
		}
	}
	return v, nil
}

// View renders the summary view.
func (v *View) View() string {
	sections := []string{v.styles.Title.Render("Skill Summary"), ""}

	switch {
	case v.loading && v.result == nil:
		sections = append(sections, v.styles.Muted.Render("Loading..."))
	case v.result == nil:
		sections = append(sections, v.styles.Muted.Render("No summary loaded."))
	case !v.result.Success:
		sections = append(sections, v.styles.Error.Render(v.result.Message))
	default:
		sections = append(sections, v.renderSummary(v.result.Summary))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderSummary(s domain.Summary) string {
	if s.Error != "" {
		return v.styles.Warning.Render(s.Error)
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(fmt.Sprintf("Total profiles: %d", s.TotalProfiles)))
	b.WriteString("\n\n")

	if len(s.TopSkills) == 0 {
		b.WriteString(v.styles.Muted.Render("No tracked skills found."))
		return b.String()
	}

	labelWidth := 0
	for _, sc := range s.TopSkills {
		labelWidth = max(labelWidth, len(sc.Skill))
	}
	top := s.TopSkills[0].Count
	barWidth := min(maxBarWidth, max(v.width-labelWidth-10, 5))

	for _, sc := range s.TopSkills {
		n := 1
		if top > 0 {
			n = max(sc.Count*barWidth/top, 1)
		}
		fmt.Fprintf(&b, "%-*s %s %d\n",
			labelWidth, sc.Skill,
			v.styles.SkillBar.Render(strings.Repeat("█", n)),
			sc.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// SetDimensions sets the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
}

// Result returns the last loaded summary, or nil.
func (v *View) Result() *domain.SummaryResult {
	return v.result
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}
