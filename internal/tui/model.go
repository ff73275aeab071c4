// Package tui renders the portfolio in a terminal. The page scrolls inside a
// viewport and the nav bar highlights the section under the focus band, using
// the same tracker the web page mirrors in the browser.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bonhomie95/portfolio/internal/content"
	"github.com/bonhomie95/portfolio/internal/tracker"
	focus "github.com/bonhomie95/portfolio/internal/viewport"
)

// Lines taken by the nav bar, its rule and the help footer.
const (
	headerLines = 2
	footerLines = 1
)

type Model struct {
	portfolio content.Portfolio
	keys      KeyMap
	year      int

	observer *focus.Observer
	tracker  *tracker.Tracker
	band     tracker.Band

	viewport viewport.Model
	regions  []tracker.Region
	width    int
	height   int
	ready    bool
	quitting bool
}

// New builds a model for p. Nothing is observed until the first window size
// message arrives.
func New(p content.Portfolio) Model {
	observer := focus.New(0)
	placeholder := ""
	if len(p.Sections) > 0 {
		placeholder = p.Sections[0].ID
	}
	return Model{
		portfolio: p,
		keys:      DefaultKeyMap,
		year:      currentYear(),
		observer:  observer,
		tracker:   tracker.New(observer, tracker.WithPlaceholder(placeholder)),
		band:      tracker.DefaultBand,
		viewport:  viewport.Model{MouseWheelEnabled: true, MouseWheelDelta: 3},
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Active returns the highlighted section id.
func (m Model) Active() string {
	return m.tracker.CurrentActive()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			m.tracker.Unregister()
			return m, tea.Quit
		}
		if !m.ready {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Up):
			m.viewport.LineUp(1)
		case key.Matches(msg, m.keys.Down):
			m.viewport.LineDown(1)
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfViewUp()
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfViewDown()
		case key.Matches(msg, m.keys.Home):
			m.viewport.GotoTop()
		case key.Matches(msg, m.keys.End):
			m.viewport.GotoBottom()
		case key.Matches(msg, m.keys.NextSection):
			m.jumpRelative(1)
		case key.Matches(msg, m.keys.PrevSection):
			m.jumpRelative(-1)
		default:
			if n, ok := digit(msg); ok && n <= len(m.regions) {
				m.jumpTo(m.regions[n-1].ID)
			}
		}
		m.sync()
		return m, nil

	case tea.MouseMsg:
		if !m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.sync()
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading…"
	}
	nav := navBar(m.portfolio, m.tracker.CurrentActive())
	rule := faintStyle.Render(strings.Repeat("─", max(m.width, 1)))
	help := faintStyle.Render(m.keys.helpLine())
	return nav + "\n" + rule + "\n" + m.viewport.View() + "\n" + help
}

// resize re-lays the page for the new window and re-registers the regions,
// since their extents depend on the wrap width.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	bodyHeight := max(height-headerLines-footerLines, 1)
	pad := bodyHeight - int(m.band.TopInset*float64(bodyHeight))

	pg := layout(m.portfolio, width, pad, m.year)
	offset := m.viewport.YOffset
	m.viewport.Width = width
	m.viewport.Height = bodyHeight
	m.viewport.SetContent(pg.body)
	m.viewport.SetYOffset(offset)
	m.regions = pg.regions
	m.ready = true

	if m.quitting {
		return
	}
	m.tracker.Unregister()
	m.observer.Scroll(m.viewport.YOffset, m.viewport.Height)
	m.tracker.Register(m.regions)
}

// sync reports the current window to the observer, which pushes any change
// into the tracker.
func (m *Model) sync() {
	m.observer.Scroll(m.viewport.YOffset, m.viewport.Height)
}

// jumpTo scrolls so the section's first line sits at the top of the band.
func (m *Model) jumpTo(id string) {
	for _, r := range m.regions {
		if r.ID != id {
			continue
		}
		inset := int(m.band.TopInset * float64(m.viewport.Height))
		m.viewport.SetYOffset(max(r.Top-inset, 0))
		return
	}
}

func (m *Model) jumpRelative(delta int) {
	if len(m.regions) == 0 {
		return
	}
	active := m.tracker.CurrentActive()
	idx := 0
	for i, r := range m.regions {
		if r.ID == active {
			idx = i
			break
		}
	}
	idx = min(max(idx+delta, 0), len(m.regions)-1)
	m.jumpTo(m.regions[idx].ID)
}

func digit(msg tea.KeyMsg) (int, bool) {
	if msg.Type != tea.KeyRunes || len(msg.Runes) != 1 {
		return 0, false
	}
	r := msg.Runes[0]
	if r < '1' || r > '9' {
		return 0, false
	}
	return int(r - '0'), true
}

// Run starts the program on the terminal and blocks until the user quits.
func Run(p content.Portfolio) error {
	prog := tea.NewProgram(New(p), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := prog.Run()
	return err
}
