// Package insights provides the insight list view for the TUI.
package insights

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui/messages"
	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui/styles"
	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// snippetLimit bounds the insight text shown per list row.
const snippetLimit = 100

// View represents the insight list view.
type View struct {
	styles   *styles.Styles
	insights []domain.Insight
	selected int
	width    int
	height   int
	ready    bool
	err      error
}

// NewView creates a new insight list view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles: s,
		width:  80,
		height: 24,
	}
}

// Init initialises the insight list view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetInsights replaces the displayed insights and resets the cursor.
func (v *View) SetInsights(insights []domain.Insight) {
	v.insights = insights
	v.selected = 0
	v.err = nil
}

// SetError records a load error to display instead of the list.
func (v *View) SetError(err error) {
	v.err = err
}

// Update handles messages for the insight list view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.insights)-1 {
				v.selected++
			}
			return v, nil

		case "enter":
			if len(v.insights) == 0 {
				return v, nil
			}
			idx := v.selected
			insight := v.insights[idx]
			return v, func() tea.Msg {
				return messages.InsightSelected{Index: idx, Insight: insight}
			}
		}
	}

	return v, nil
}

// View renders the insight list.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("EchoLens Report"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Failed to load report: %v", v.err)))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] reload  [q] quit"))
		return b.String()
	}

	if len(v.insights) == 0 {
		b.WriteString(v.styles.Muted.Render("No insights yet. Run the pipeline to generate a report."))
		b.WriteString("\n\n")
		b.WriteString(v.styles.Help.Render("[r] reload  [q] quit"))
		return b.String()
	}

	for i := range v.insights {
		cursor := "  "
		topicStyle := v.styles.Topic
		textStyle := v.styles.Normal

		if i == v.selected {
			cursor = "> "
			textStyle = v.styles.Selected
		}

		line := fmt.Sprintf("%s%s %s %s",
			cursor,
			topicStyle.Render("["+v.insights[i].Topic+"]"),
			textStyle.Render(snippet(v.insights[i].Text)),
			v.styles.Citation.Render(fmt.Sprintf("(%d citations)", v.insights[i].Count)),
		)
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Open  [r] Reload  [?] Help  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// snippet truncates insight text to one list row.
func snippet(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= snippetLimit {
		return text
	}
	return string(runes[:snippetLimit]) + "..."
}
