package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/bonhomie95/portfolio/internal/content"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, cmd
}

// sized returns a model whose scrollable body is ten lines tall, so the focus
// band covers body lines 4..4.5.
func sized(t *testing.T) Model {
	t.Helper()
	m, _ := send(t, New(content.Default()), tea.WindowSizeMsg{Width: 100, Height: 10 + headerLines + footerLines})
	return m
}

func TestStartsOnHome(t *testing.T) {
	m := New(content.Default())
	require.Equal(t, "home", m.Active())
	require.Equal(t, "loading…", m.View())

	m = sized(t)
	require.Equal(t, "home", m.Active())
	require.Len(t, m.regions, 5)
	require.Contains(t, m.View(), "2 Skills")
}

func TestRegionsAreContiguous(t *testing.T) {
	m := sized(t)
	for i := 1; i < len(m.regions); i++ {
		require.Equal(t, m.regions[i-1].Bottom, m.regions[i].Top)
		require.Greater(t, m.regions[i].Bottom, m.regions[i].Top)
	}
	require.Equal(t, 0, m.regions[0].Top)
}

func TestDigitJumpsHighlightSection(t *testing.T) {
	m := sized(t)
	for i, id := range []string{"home", "skills", "projects", "experience", "contact"} {
		m, _ = send(t, m, runes(string(rune('1'+i))))
		require.Equal(t, id, m.Active(), "after pressing %d", i+1)
	}
	m, _ = send(t, m, runes("1"))
	require.Equal(t, "home", m.Active())
}

func TestTabCyclesSections(t *testing.T) {
	m := sized(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "skills", m.Active())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, "projects", m.Active())
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, "skills", m.Active())
}

func TestScrollingLineByLineReachesNextSection(t *testing.T) {
	m := sized(t)
	skillsTop := m.regions[1].Top
	// The band's top edge sits four lines below the viewport's top.
	for i := 0; i < skillsTop-4; i++ {
		m, _ = send(t, m, runes("j"))
	}
	require.Equal(t, "skills", m.Active())

	m, _ = send(t, m, runes("k"))
	require.Equal(t, "home", m.Active())
}

func TestQuitStopsTracking(t *testing.T) {
	m := sized(t)
	m, _ = send(t, m, runes("3"))
	require.Equal(t, "projects", m.Active())

	m, cmd := send(t, m, runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.Empty(t, m.View())

	m, _ = send(t, m, runes("5"))
	require.Equal(t, "projects", m.Active())
}

func TestResizeKeepsTracking(t *testing.T) {
	m := sized(t)
	m, _ = send(t, m, runes("4"))
	require.Equal(t, "experience", m.Active())

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 10 + headerLines + footerLines})
	m, _ = send(t, m, runes("2"))
	require.Equal(t, "skills", m.Active())
}

func TestEndKeyHighlightsLastSection(t *testing.T) {
	m := sized(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	require.True(t, m.viewport.AtBottom())
	require.Equal(t, "contact", m.Active())

	m, _ = send(t, m, runes("g"))
	require.Equal(t, "home", m.Active())
	m, _ = send(t, m, runes("G"))
	require.Equal(t, "contact", m.Active())
}

func TestLastRegionCoversFooter(t *testing.T) {
	m := sized(t)
	last := m.regions[len(m.regions)-1]
	require.Equal(t, "contact", last.ID)
	require.Equal(t, m.viewport.TotalLineCount(), last.Bottom)
}

func TestResizeAtBottomKeepsLastSection(t *testing.T) {
	m := sized(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnd})
	require.Equal(t, "contact", m.Active())

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 10 + headerLines + footerLines})
	require.Equal(t, "contact", m.Active())

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	require.Equal(t, "experience", m.Active())
}
