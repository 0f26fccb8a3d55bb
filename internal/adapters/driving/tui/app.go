package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/views/ask"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/views/help"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/views/status"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/views/summary"
	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	menuView    *menu.View
	askView     *ask.View
	summaryView *summary.View
	statusView  *status.View
	helpView    *help.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// settingUp is true while an index build is running.
	settingUp bool

	// lastSetup is the outcome of the most recent index build.
	lastSetup *domain.SetupResult

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		menuView:    menu.NewView(s, km),
		askView:     ask.NewView(s, km, ports.Profiles),
		summaryView: summary.NewView(s, km, ports.Profiles),
		statusView:  status.NewView(s, km, ports.Profiles),
		helpView:    help.NewView(s, km),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.askView.WithContext(ctx)
	a.summaryView.WithContext(ctx)
	a.statusView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("profilerag - LinkedIn Profile Q&A"),
		a.loadStatus(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewAsk:
			a.askView.Reset()
			return a, a.askView.Init()
		case messages.ViewSummary:
			return a, a.summaryView.Init()
		case messages.ViewStatus:
			return a, a.statusView.Init()
		case messages.ViewMenu, messages.ViewHelp:
		}
		return a, nil

	case messages.SetupRequested:
		if a.settingUp {
			return a, nil
		}
		a.settingUp = true
		return a, tea.Sequence(
			func() tea.Msg { return messages.SetupStarted{} },
			a.runSetup(),
		)

	case messages.SetupStarted:
		var askCmd, statusCmd tea.Cmd
		a.askView, askCmd = a.askView.Update(msg)
		a.statusView, statusCmd = a.statusView.Update(msg)
		return a, tea.Batch(askCmd, statusCmd)

	case messages.SetupCompleted:
		a.settingUp = false
		res := msg.Result
		a.lastSetup = &res
		if res.Err != nil {
			a.err = res.Err
		}
		var askCmd, statusCmd, summaryCmd tea.Cmd
		a.askView, askCmd = a.askView.Update(msg)
		a.statusView, statusCmd = a.statusView.Update(msg)
		if a.currentView == messages.ViewSummary {
			a.summaryView, summaryCmd = a.summaryView.Update(msg)
		}
		return a, tea.Batch(askCmd, statusCmd, summaryCmd, a.loadStatus())

	case messages.StatusLoaded:
		a.askView, _ = a.askView.Update(msg)
		a.statusView, _ = a.statusView.Update(msg)
		a.summaryView, _ = a.summaryView.Update(msg)
		return a, nil

	case messages.AnswerReady:
		a.askView, cmd = a.askView.Update(msg)
		return a, tea.Batch(cmd, a.loadStatus())

	case messages.SummaryLoaded:
		a.summaryView, cmd = a.summaryView.Update(msg)
		return a, cmd

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.askView, cmd = a.askView.Update(msg)
		return a, cmd

	case spinner.TickMsg:
		var askCmd, statusCmd tea.Cmd
		a.askView, askCmd = a.askView.Update(msg)
		a.statusView, statusCmd = a.statusView.Update(msg)
		return a, tea.Batch(askCmd, statusCmd)

	case messages.Quit:
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards a message to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewAsk:
		a.askView, cmd = a.askView.Update(msg)
	case messages.ViewSummary:
		a.summaryView, cmd = a.summaryView.Update(msg)
	case messages.ViewStatus:
		a.statusView, cmd = a.statusView.Update(msg)
	case messages.ViewHelp:
		a.helpView, cmd = a.helpView.Update(msg)
	}
	return cmd
}

func (a *App) runSetup() tea.Cmd {
	return func() tea.Msg {
		return messages.SetupCompleted{Result: a.ports.Profiles.Setup(a.ctx)}
	}
}

func (a *App) loadStatus() tea.Cmd {
	return func() tea.Msg {
		return messages.StatusLoaded{Status: a.ports.Profiles.Status(a.ctx)}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewAsk:
		return a.askView.View()
	case messages.ViewSummary:
		return a.summaryView.View()
	case messages.ViewStatus:
		return a.statusView.View()
	case messages.ViewHelp:
		return a.helpView.View()
	default:
		return a.menuView.View()
	}
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SettingUp reports whether an index build is running.
func (a *App) SettingUp() bool {
	return a.settingUp
}

// LastSetup returns the most recent setup result, or nil.
func (a *App) LastSetup() *domain.SetupResult {
	return a.lastSetup
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.askView.SetDimensions(width, height)
	a.summaryView.SetDimensions(width, height)
	a.statusView.SetDimensions(width, height)
	a.helpView.SetDimensions(width, height)
}
