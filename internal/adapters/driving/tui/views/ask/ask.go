// Package ask provides the question and answer view for the TUI.
package ask

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driving"
)

// Exchange is one question and its result.
type Exchange struct {
	Question string
	Result   domain.AskResult
}

// View is the ask view: a question input over a scrolling transcript.
type View struct {
	styles     *styles.Styles
	keymap     *keymap.KeyMap
	input      *input.QuestionInput
	examples   *list.Examples
	spinner    spinner.Model
	transcript viewport.Model
	statusbar  *status.Bar

	profiles driving.ProfileService
	ctx      context.Context

	exchanges    []Exchange
	busy         bool
	showExamples bool
	width        int
	height       int
	ready        bool
}

// NewView creates an ask view.
func NewView(s *styles.Styles, km *keymap.KeyMap, profiles driving.ProfileService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	sp := spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(s.Subtitle))

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewQuestionInput(s),
		examples:   list.NewExamples(s, nil),
		spinner:    sp,
		transcript: viewport.New(80, 14),
		statusbar:  status.NewBar(s, km.AskHelp()),
		profiles:   profiles,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for questions.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init focuses the input.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Focus(), v.input.Init())
}

// Update handles messages for the ask view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)

	case messages.AnswerReady:
		v.busy = false
		v.statusbar.Clear()
		v.exchanges = append(v.exchanges, Exchange{Question: msg.Question, Result: msg.Result})
		v.refreshTranscript()
		return v, nil

	case messages.StatusLoaded:
		v.statusbar.SetIndex(msg.Status)
		return v, nil

	case messages.SetupStarted:
		v.statusbar.SetState(status.StateWorking)
		v.statusbar.SetMessage("Running setup...")
		return v, v.spinner.Tick

	case messages.SetupCompleted:
		if msg.Result.Success {
			v.statusbar.Clear()
		} else {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage(msg.Result.Message)
		}
		return v, nil

	case messages.ErrorOccurred:
		v.busy = false
		v.statusbar.SetState(status.StateError)
		v.statusbar.SetMessage(msg.Err.Error())
		return v, nil

	case spinner.TickMsg:
		if !v.busy && v.statusbar.State() != status.StateWorking {
			return v, nil
		}
		var cmd tea.Cmd
		v.spinner, cmd = v.spinner.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if v.showExamples {
		return v.handleExamplesKey(msg)
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Back):
		return v, func() tea.Msg { return messages.ViewChanged{View: messages.ViewMenu} }

	case keymap.Matches(keyStr, v.keymap.Examples):
		v.showExamples = true
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Setup):
		return v, func() tea.Msg { return messages.SetupRequested{} }

	case keymap.Matches(keyStr, v.keymap.PrevQuestion):
		v.input.Previous()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.NextQuestion):
		v.input.Next()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Submit):
		return v, v.submit()

	case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
		var cmd tea.Cmd
		v.transcript, cmd = v.transcript.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleExamplesKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()
	switch {
	case keymap.Matches(keyStr, v.keymap.Up):
		v.examples.MoveUp()
	case keymap.Matches(keyStr, v.keymap.Down):
		v.examples.MoveDown()
	case keymap.Matches(keyStr, v.keymap.Submit):
		v.input.SetValue(v.examples.Selected())
		v.showExamples = false
	case keymap.Matches(keyStr, v.keymap.Back), keymap.Matches(keyStr, v.keymap.Examples):
		v.showExamples = false
	}
	return v, nil
}

// submit sends the current question unless one is already in flight.
func (v *View) submit() tea.Cmd {
	if v.busy {
		return nil
	}
	question := v.input.Submit()
	if question == "" {
		v.statusbar.SetState(status.StateIdle)
		v.statusbar.SetMessage("Please enter a question.")
		return nil
	}

	v.busy = true
	v.statusbar.SetState(status.StateWorking)
	v.statusbar.SetMessage("Thinking...")
	return tea.Batch(v.spinner.Tick, v.ask(question))
}

func (v *View) ask(question string) tea.Cmd {
	return func() tea.Msg {
		if v.profiles == nil {
			return messages.ErrorOccurred{Err: ErrNoProfileService}
		}
		return messages.AnswerReady{Question: question, Result: v.profiles.Ask(v.ctx, question)}
	}
}

func (v *View) refreshTranscript() {
	v.transcript.SetContent(v.renderTranscript())
	v.transcript.GotoBottom()
}

func (v *View) renderTranscript() string {
	if len(v.exchanges) == 0 {
		return v.styles.Muted.Render("Ask a question, or press tab for examples.")
	}

	wrap := lipgloss.NewStyle().Width(max(v.width-4, 20))
	blocks := make([]string, 0, len(v.exchanges))
	for _, ex := range v.exchanges {
		var b strings.Builder
		b.WriteString(v.styles.Question.Render("Q: " + ex.Question))
		b.WriteString("\n")

		res := ex.Result
		switch {
		case !res.Success:
			b.WriteString(v.styles.Error.Render(res.Message))
		case res.Answer != nil:
			if res.Answer.Generation.IsFallback() {
				b.WriteString(v.styles.FallbackBadge.Render("fallback"))
				b.WriteString("\n")
			}
			b.WriteString(wrap.Render(v.styles.Answer.Render(res.Answer.Text)))
			for _, w := range res.Answer.Warnings {
				b.WriteString("\n")
				b.WriteString(v.styles.Warning.Render("! " + w))
			}
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// View renders the ask view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := []string{
		v.styles.Title.Render("Ask Questions"),
		"",
		v.transcript.View(),
		"",
	}

	if v.showExamples {
		sections = append(sections, v.styles.Panel.Render(v.examples.View()), "")
	}

	prompt := v.input.View()
	if v.busy {
		prompt = lipgloss.JoinHorizontal(lipgloss.Center, prompt, " ", v.spinner.View())
	}
	sections = append(sections, prompt, "", v.statusbar.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sizes the transcript to the space left by the input and bar.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	v.transcript.Width = width
	v.transcript.Height = max(height-9, 3)
	v.refreshTranscript()
}

// Exchanges returns the answered questions, oldest first.
func (v *View) Exchanges() []Exchange {
	return v.exchanges
}

// Busy reports whether a question is in flight.
func (v *View) Busy() bool {
	return v.busy
}

// ShowingExamples reports whether the example picker is open.
func (v *View) ShowingExamples() bool {
	return v.showExamples
}

// Input returns the question input.
func (v *View) Input() *input.QuestionInput {
	return v.input
}

// StatusBar returns the status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// Reset clears the input and closes the example picker; the transcript is kept.
func (v *View) Reset() {
	v.input.SetValue("")
	v.input.Focus()
	v.showExamples = false
	if !v.busy {
		v.statusbar.Clear()
	}
}
