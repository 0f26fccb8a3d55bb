package ask

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/profilerag/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/profilerag/internal/core/domain"
)

func TestNewView(t *testing.T) {
	view := NewView(nil, nil, nil)

	require.NotNil(t, view)
	assert.NotNil(t, view.styles)
	assert.NotNil(t, view.keymap)
	assert.NotNil(t, view.input)
	assert.False(t, view.Busy())
	assert.False(t, view.ready)
}

func TestView_Init(t *testing.T) {
	view := NewView(nil, nil, nil)
	assert.NotNil(t, view.Init())
	assert.True(t, view.Input().Focused())
}

func TestView_View_NotReady(t *testing.T) {
	view := NewView(nil, nil, nil)
	assert.Equal(t, "Initialising...", view.View())
}

func TestView_WindowSize(t *testing.T) {
	view := NewView(nil, nil, nil)
	view, _ = view.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, view.ready)
	assert.Equal(t, 120, view.width)
	assert.Equal(t, 31, view.transcript.Height)
	assert.Contains(t, view.View(), "Ask Questions")
	assert.Contains(t, view.View(), "press tab for examples")
}

func TestView_Submit_RunsQuestion(t *testing.T) {
	svc := &mockProfileService{ask: domain.AskResult{
		Success: true,
		Answer:  &domain.Answer{Text: "Neha M knows Python", Generation: domain.Generated("Neha M knows Python")},
	}}
	view := NewView(nil, nil, svc)
	view.SetDimensions(100, 30)
	view.Input().SetValue("  Who has Python skills?  ")

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, view.Busy())
	assert.Equal(t, status.StateWorking, view.StatusBar().State())

	msg := view.ask("Who has Python skills?")()
	ready, ok := msg.(messages.AnswerReady)
	require.True(t, ok)
	assert.Equal(t, "Who has Python skills?", svc.question)

	view, _ = view.Update(ready)
	assert.False(t, view.Busy())
	require.Len(t, view.Exchanges(), 1)
	assert.Contains(t, view.View(), "Q: Who has Python skills?")
	assert.Contains(t, view.View(), "Neha M knows Python")
	assert.NotContains(t, view.View(), "fallback")
}

func TestView_Submit_EmptyQuestion(t *testing.T) {
	view := NewView(nil, nil, &mockProfileService{})
	view.SetDimensions(100, 30)

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, view.Busy())
	assert.Equal(t, "Please enter a question.", view.StatusBar().Message())
}

func TestView_Submit_IgnoredWhileBusy(t *testing.T) {
	view := NewView(nil, nil, &mockProfileService{})
	view.busy = true
	view.Input().SetValue("Who knows React or Angular?")

	assert.Nil(t, view.submit())
	assert.Equal(t, "Who knows React or Angular?", view.Input().Value())
}

func TestView_Ask_NoService(t *testing.T) {
	view := NewView(nil, nil, nil)

	msg := view.ask("anything")()
	errMsg, ok := msg.(messages.ErrorOccurred)
	require.True(t, ok)
	assert.ErrorIs(t, errMsg.Err, ErrNoProfileService)
}

func TestView_AnswerReady_FallbackAndWarnings(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(100, 30)

	view, _ = view.Update(messages.AnswerReady{
		Question: "Who has data science skills?",
		Result: domain.AskResult{
			Success: true,
			Answer: &domain.Answer{
				Text:       "Skills Analysis (Fallback Mode)",
				Generation: domain.Fallback("Skills Analysis (Fallback Mode)"),
				Warnings:   []string{"ollama unavailable"},
			},
		},
	})

	out := view.View()
	assert.Contains(t, out, "fallback")
	assert.Contains(t, out, "! ollama unavailable")
}

func TestView_AnswerReady_Failure(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(100, 30)

	view, _ = view.Update(messages.AnswerReady{
		Question: "Who has Python skills?",
		Result:   domain.AskResult{Message: "Index not ready. Please run setup first."},
	})

	assert.Contains(t, view.View(), "Index not ready. Please run setup first.")
}

func TestView_Examples(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.SetDimensions(100, 30)

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.True(t, view.ShowingExamples())
	assert.Contains(t, view.View(), "Example questions")

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyDown})
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, view.ShowingExamples())
	assert.Equal(t, "Who knows machine learning?", view.Input().Value())
}

func TestView_Examples_EscClosesPicker(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.showExamples = true

	view, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.False(t, view.ShowingExamples())
}

func TestView_Esc_ReturnsToMenu(t *testing.T) {
	view := NewView(nil, nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewMenu}, cmd())
}

func TestView_Setup_Requested(t *testing.T) {
	view := NewView(nil, nil, nil)

	_, cmd := view.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.SetupRequested{}, cmd())
}

func TestView_History(t *testing.T) {
	view := NewView(nil, nil, &mockProfileService{})
	view.Input().SetValue("first")
	view.submit()
	view.busy = false
	view.Input().SetValue("second")
	view.submit()

	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, "second", view.Input().Value())
	view, _ = view.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	assert.Equal(t, "first", view.Input().Value())
}

func TestView_SetupLifecycle(t *testing.T) {
	view := NewView(nil, nil, nil)

	view, cmd := view.Update(messages.SetupStarted{})
	assert.NotNil(t, cmd)
	assert.Equal(t, status.StateWorking, view.StatusBar().State())

	view, _ = view.Update(messages.SetupCompleted{Result: domain.SetupResult{Success: false, Message: "No profiles loaded."}})
	assert.Equal(t, status.StateError, view.StatusBar().State())
	assert.Equal(t, "No profiles loaded.", view.StatusBar().Message())

	view, _ = view.Update(messages.SetupCompleted{Result: domain.SetupResult{Success: true}})
	assert.Equal(t, status.StateIdle, view.StatusBar().State())
}

func TestView_StatusLoaded(t *testing.T) {
	view := NewView(nil, nil, nil)
	view, _ = view.Update(messages.StatusLoaded{Status: domain.Status{Profiles: 3, Ready: true}})
	assert.Equal(t, 3, view.StatusBar().Index().Profiles)
}

func TestView_ErrorOccurred(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.busy = true

	view, _ = view.Update(messages.ErrorOccurred{Err: errors.New("boom")})
	assert.False(t, view.Busy())
	assert.Equal(t, "boom", view.StatusBar().Message())
}

func TestView_Reset(t *testing.T) {
	view := NewView(nil, nil, nil)
	view.Input().SetValue("pending")
	view.showExamples = true

	view.Reset()
	assert.Empty(t, view.Input().Value())
	assert.False(t, view.ShowingExamples())
}
