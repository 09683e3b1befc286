package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui/messages"
	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui/styles"
	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui/views/detail"
	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui/views/insights"
	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// App is the report viewer application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	// insightsView lists the report insights.
	insightsView *insights.View

	// detailView shows one insight with its citations.
	detailView *detail.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// insights holds the loaded report.
	insights []domain.Insight

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

// NewApp creates a new report viewer with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		insightsView: insights.NewView(s),
		detailView:   detail.NewView(s),
		currentView:  messages.ViewInsights,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model. It loads the report on startup.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("echolens - Feedback Report"),
		a.loadReport(),
	)
}

// loadReport reads the report artifact off the Bubbletea event loop.
func (a *App) loadReport() tea.Cmd {
	return func() tea.Msg {
		loaded, err := a.ports.Report.Load()
		return messages.ReportLoaded{Insights: loaded, Err: err}
	}
}

// Update implements tea.Model.
// It handles messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.insightsView.SetDimensions(msg.Width, msg.Height)
		a.detailView.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return a, tea.Quit

		case "r":
			if a.currentView == messages.ViewInsights {
				return a, a.loadReport()
			}

		case "?":
			if a.currentView != messages.ViewDetail {
				a.currentView = messages.ViewHelp
				return a, nil
			}

		case "esc":
			a.currentView = messages.ViewInsights
			return a, nil
		}

		// Forward key messages to the active view.
		switch a.currentView {
		case messages.ViewInsights:
			a.insightsView, cmd = a.insightsView.Update(msg)
		case messages.ViewDetail:
			a.detailView, cmd = a.detailView.Update(msg)
		case messages.ViewHelp:
			// Help reacts to esc and quit only.
		}
		return a, cmd

	case messages.ReportLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.insightsView.SetError(msg.Err)
			return a, nil
		}
		a.err = nil
		a.insights = msg.Insights
		a.insightsView.SetInsights(msg.Insights)
		return a, nil

	case messages.InsightSelected:
		a.detailView.SetInsight(msg.Insight)
		a.currentView = messages.ViewDetail
		return a, nil

	case messages.ViewChanged:
		a.currentView = msg.View
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	return a, nil
}

// View implements tea.Model.
// It renders the current view as a string.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewInsights:
		return a.insightsView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.insightsView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Insights:
  j/k, ↑/↓    Navigate insights
  enter       Open insight citations
  r           Reload the report from disk

Citations:
  j/k, ↑/↓    Navigate citations
  esc         Back to insights

Global:
  ?           This help
  q, ctrl+c   Quit

[esc] back to insights`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Insights returns the loaded report insights.
func (a *App) Insights() []domain.Insight {
	return a.insights
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions (for testing).
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.insightsView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
}
