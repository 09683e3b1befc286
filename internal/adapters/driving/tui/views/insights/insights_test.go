package insights

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echolens-labs/echolens-cli/internal/adapters/driving/tui/messages"
	"github.com/echolens-labs/echolens-cli/internal/core/domain"
)

func testInsights() []domain.Insight {
	return []domain.Insight{
		{Topic: "UI", Text: "Navigation feedback", Count: 3},
		{Topic: "General", Text: "Misc praise", Count: 1},
		{Topic: "PRICING", Text: "Subscription complaints", Count: 5},
	}
}

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestView_Navigation(t *testing.T) {
	v := NewView(nil)
	v.SetInsights(testInsights())

	v, _ = v.Update(key("j"))
	assert.Equal(t, 1, v.Selected())

	v, _ = v.Update(key("j"))
	v, _ = v.Update(key("j")) // clamped at last item
	assert.Equal(t, 2, v.Selected())

	v, _ = v.Update(key("k"))
	assert.Equal(t, 1, v.Selected())
}

func TestView_SelectEmitsMessage(t *testing.T) {
	v := NewView(nil)
	v.SetInsights(testInsights())
	v, _ = v.Update(key("j"))

	v, cmd := v.Update(key("enter"))
	require.NotNil(t, cmd)

	msg := cmd()
	selected, ok := msg.(messages.InsightSelected)
	require.True(t, ok)
	assert.Equal(t, 1, selected.Index)
	assert.Equal(t, "General", selected.Insight.Topic)
}

func TestView_EnterOnEmptyListIsNoop(t *testing.T) {
	v := NewView(nil)
	v.SetInsights(nil)

	_, cmd := v.Update(key("enter"))
	assert.Nil(t, cmd)
}

func TestView_Render(t *testing.T) {
	t.Run("lists topics and counts", func(t *testing.T) {
		v := NewView(nil)
		v.SetInsights(testInsights())

		out := v.View()
		assert.Contains(t, out, "UI")
		assert.Contains(t, out, "PRICING")
		assert.Contains(t, out, "(5 citations)")
	})

	t.Run("empty report shows hint", func(t *testing.T) {
		v := NewView(nil)
		v.SetInsights(nil)

		assert.Contains(t, v.View(), "No insights yet")
	})

	t.Run("error replaces list", func(t *testing.T) {
		v := NewView(nil)
		v.SetError(errors.New("file missing"))

		assert.Contains(t, v.View(), "file missing")
	})
}

func TestSnippet(t *testing.T) {
	long := strings.Repeat("a", snippetLimit+10)
	got := snippet(long)
	assert.Equal(t, snippetLimit+3, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short text", snippet("short\ntext"))
}
