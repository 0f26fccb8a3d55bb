// Package status provides the index status and setup view for the TUI.
package status

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	statusbar "github.com/custodia-labs/profilerag/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driving"
)

// View shows the index status and the outcome of the last setup run.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	spinner   spinner.Model
	statusbar *statusbar.Bar
	profiles  driving.ProfileService
	ctx       context.Context

	status    domain.Status
	loaded    bool
	lastSetup *domain.SetupResult
	running   bool
	width     int
	height    int
}

// NewView creates a status view.
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
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Subtitle)),
		statusbar: statusbar.NewBar(s, []key.Binding{km.Setup, km.Refresh, km.Back}),
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

// Init loads the current status.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load returns a command that fetches the index status.
func (v *View) Load() tea.Cmd {
	if v.profiles == nil {
		return nil
	}
	return func() tea.Msg {
		return messages.StatusLoaded{Status: v.profiles.Status(v.ctx)}
	}
}

// Update handles messages for the status view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)

	case messages.StatusLoaded:
		v.status = msg.Status
		v.loaded = true
		v.statusbar.SetIndex(msg.Status)

	case messages.SetupStarted:
		v.running = true
		v.statusbar.SetState(statusbar.StateWorking)
		v.statusbar.SetMessage("Running setup...")
		return v, v.spinner.Tick

	case messages.SetupCompleted:
		v.running = false
		res := msg.Result
		v.lastSetup = &res
		if res.Success {
			v.statusbar.Clear()
		} else {
			v.statusbar.SetState(statusbar.StateError)
			v.statusbar.SetMessage(res.Message)
		}

	case spinner.TickMsg:
		if !v.running {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }
	case keymap.Matches(keyStr, v.keymap.Setup), keyStr == "s":
		if v.running {
			return v, nil
		}
		return v, func() tea.Msg { return messages.SetupRequested{} }
	case keymap.Matches(keyStr, v.keymap.Refresh):
		return v, v.Load()
	}
	return v, nil
}

// View renders the status view.
func (v *View) View() string {
	sections := []string{v.styles.Title.Render("Status & Setup"), ""}

	if !v.loaded {
		sections = append(sections, v.styles.Muted.Render("Loading status..."))
	} else {
		sections = append(sections, v.renderStatus())
	}

	if v.running {
		sections = append(sections, "", v.spinner.View()+" "+v.styles.Muted.Render("Building index..."))
	} else if v.lastSetup != nil {
		sections = append(sections, "", v.renderSetup(*v.lastSetup))
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderStatus() string {
	st := v.status
	ready := v.styles.Warning.Render("not ready")
	if st.Ready {
		ready = v.styles.Success.Render("ready")
	}
	if st.Stale {
		ready += v.styles.Warning.Render(" (stale, run setup to include new profiles)")
	}

	generation := v.styles.Warning.Render("fallback answers only")
	if st.Generation {
		generation = st.LLMModel
	}

	rows := [][2]string{
		{"Profiles", fmt.Sprintf("%d", st.Profiles)},
		{"Chunks", fmt.Sprintf("%d", st.Chunks)},
		{"Index", ready},
		{"Store", orDash(st.Store)},
		{"Embeddings", orDash(st.EmbeddingModel)},
		{"Generation", generation},
	}

	var b strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&b, "%s %s\n", v.styles.Muted.Render(fmt.Sprintf("%-11s", r[0])), r[1])
	}
	return strings.TrimRight(b.String(), "\n")
}

func (v *View) renderSetup(res domain.SetupResult) string {
	var b strings.Builder
	if res.Success {
		b.WriteString(v.styles.Success.Render(res.Message))
		fmt.Fprintf(&b, "\n%d profiles, %d chunks in %s", res.Profiles, res.Chunks, res.Store.Chosen)
	} else {
		b.WriteString(v.styles.Error.Render(res.Message))
	}
	for _, a := range res.Store.Attempts {
		b.WriteString("\n")
		b.WriteString(v.styles.Warning.Render(fmt.Sprintf("skipped %s: %s", a.Name, a.Error)))
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// SetDimensions sets the view size.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.statusbar.SetWidth(width)
}

// Status returns the last loaded status.
func (v *View) Status() domain.Status {
	return v.status
}

// LastSetup returns the last setup result, or nil.
func (v *View) LastSetup() *domain.SetupResult {
	return v.lastSetup
}

// Running reports whether setup is in progress.
func (v *View) Running() bool {
	return v.running
}
