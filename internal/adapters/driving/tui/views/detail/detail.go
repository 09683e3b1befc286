// Package detail provides the insight detail view with resolved citations.
package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui/styles"
	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

// citationTextLimit bounds the quoted text per citation row.
const citationTextLimit = 200

// View represents the insight detail view.
type View struct {
	styles   *styles.Styles
	insight  *domain.Insight
	selected int
	width    int
	height   int
}

// NewView creates a new insight detail view.
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

// Init initialises the detail view.
func (v *View) Init() tea.Cmd {
	return nil
}

// SetInsight replaces the displayed insight and resets the cursor.
func (v *View) SetInsight(insight domain.Insight) {
	v.insight = &insight
	v.selected = 0
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tea.KeyMsg:
		if v.insight == nil {
			return v, nil
		}
		switch msg.String() {
		case "up", "k":
			if v.selected > 0 {
				v.selected--
			}
			return v, nil

		case "down", "j":
			if v.selected < len(v.insight.Citations)-1 {
				v.selected++
			}
			return v, nil
		}
	}

	return v, nil
}

// View renders the insight with its citations.
func (v *View) View() string {
	if v.insight == nil {
		return "No insight selected."
	}

	var b strings.Builder

	b.WriteString(v.styles.Topic.Render("[" + v.insight.Topic + "]"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Normal.Render(v.insight.Text))
	b.WriteString("\n\n")

	if len(v.insight.Citations) == 0 {
		b.WriteString(v.styles.Muted.Render("No citations for this insight."))
	} else {
		b.WriteString(v.styles.Title.Render(fmt.Sprintf("Citations (%d)", len(v.insight.Citations))))
		b.WriteString("\n")

		for i := range v.insight.Citations {
			c := v.insight.Citations[i]

			cursor := "  "
			idStyle := v.styles.Citation
			if i == v.selected {
				cursor = "> "
				idStyle = v.styles.Selected
			}

			b.WriteString(fmt.Sprintf("%s%s %s\n",
				cursor,
				idStyle.Render(c.ID),
				v.styles.Muted.Render(fmt.Sprintf("%s, %s", c.Platform, c.Date)),
			))
			b.WriteString("      " + v.styles.Normal.Render(quote(c.Text)) + "\n")
			if c.URL != "" {
				b.WriteString("      " + v.styles.Muted.Render(c.URL) + "\n")
			}
		}
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [esc] Back  [q] Quit"))

	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Selected returns the currently selected citation index.
func (v *View) Selected() int {
	return v.selected
}

// quote truncates cited text to a readable excerpt.
func quote(text string) string {
	text = strings.ReplaceAll(text, "\n", " ")
	runes := []rune(text)
	if len(runes) <= citationTextLimit {
		return "\"" + text + "\""
	}
	return "\"" + string(runes[:citationTextLimit]) + "...\""
}
