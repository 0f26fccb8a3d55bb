// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// ViewType identifies which view is active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewAsk is the question and answer view.
	ViewAsk
	// ViewSummary shows the profile count and top skills.
	ViewSummary
	// ViewStatus shows index readiness and runs setup.
	ViewStatus
	// ViewHelp lists keybindings and example questions.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewAsk:
		return "ask"
	case ViewSummary:
		return "summary"
	case ViewStatus:
		return "status"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SetupRequested asks the app to rebuild the index.
type SetupRequested struct{}

// SetupStarted is sent when a setup run begins.
type SetupStarted struct{}

// SetupCompleted carries the outcome of a setup run.
type SetupCompleted struct {
	Result domain.SetupResult
}

// AnswerReady carries the result for a question.
type AnswerReady struct {
	Question string
	Result   domain.AskResult
}

// SummaryLoaded carries the collection summary.
type SummaryLoaded struct {
	Result domain.SummaryResult
}

// StatusLoaded carries the service status.
type StatusLoaded struct {
	Status domain.Status
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
