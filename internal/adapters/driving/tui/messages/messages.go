// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// ReportLoaded carries the parsed report back to the model.
type ReportLoaded struct {
	Insights []domain.Insight
	Err      error
}

// InsightSelected is sent when an insight is selected for the detail view.
type InsightSelected struct {
	Index   int
	Insight domain.Insight
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewInsights is the insight list view.
	ViewInsights ViewType = iota
	// ViewDetail shows one insight with its resolved citations.
	ViewDetail
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewInsights:
		return "insights"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
