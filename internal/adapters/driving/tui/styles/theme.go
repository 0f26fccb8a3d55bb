// Package styles provides the colour theme and lipgloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette.
type Theme struct {
	Accent    lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
	Dim       lipgloss.Color
	Good      lipgloss.Color
	Caution   lipgloss.Color
	Bad       lipgloss.Color
	Frame     lipgloss.Color
	Bar       lipgloss.Color
}

// DefaultTheme returns the default palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#0A66C2"),
		Highlight: lipgloss.Color("#70B5F9"),
		Text:      lipgloss.Color("#E6EDF3"),
		Dim:       lipgloss.Color("#7D8590"),
		Good:      lipgloss.Color("#3FB950"),
		Caution:   lipgloss.Color("#D29922"),
		Bad:       lipgloss.Color("#F85149"),
		Frame:     lipgloss.Color("#30363D"),
		Bar:       lipgloss.Color("#161B22"),
	}
}

// Styles holds the rendered styles used across views.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// Question renders the user's question in the transcript.
	Question lipgloss.Style

	// Answer renders generated answer text.
	Answer lipgloss.Style

	// FallbackBadge marks answers produced without a language model.
	FallbackBadge lipgloss.Style

	// SkillBar renders the bars in the summary view.
	SkillBar lipgloss.Style

	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Panel      lipgloss.Style
}

// NewStyles builds styles from a theme. A nil theme uses DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(theme.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(theme.Highlight),
		Normal:   lipgloss.NewStyle().Foreground(theme.Text),
		Muted:    lipgloss.NewStyle().Foreground(theme.Dim),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(theme.Highlight),
		Error:    lipgloss.NewStyle().Foreground(theme.Bad),
		Success:  lipgloss.NewStyle().Foreground(theme.Good),
		Warning:  lipgloss.NewStyle().Foreground(theme.Caution),

		Question: lipgloss.NewStyle().Bold(true).Foreground(theme.Highlight),
		Answer:   lipgloss.NewStyle().Foreground(theme.Text),
		FallbackBadge: lipgloss.NewStyle().
			Foreground(theme.Bar).
			Background(theme.Caution).
			Padding(0, 1),
		SkillBar: lipgloss.NewStyle().Foreground(theme.Accent),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Dim).
			Background(theme.Bar).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Frame).
			Padding(0, 1),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
