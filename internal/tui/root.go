package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

// ViewMode represents the current view
type ViewMode int

const (
	// ViewModeMatrix is the UpSet intersection matrix.
	ViewModeMatrix ViewMode = iota
	// ViewModeOrderGraph is the per-instance call order graph.
	ViewModeOrderGraph
	// ViewModeFlowGraph is the deduplicated transition graph.
	ViewModeFlowGraph
	// ViewModeHelp is the help overlay.
	ViewModeHelp
)

// frameMsg drives the layout solver's tick loop. Frames are only
// requested while a solver is running or a drag is in progress, so a
// settled graph costs nothing.
type frameMsg time.Time

const frameInterval = time.Second / 30

func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Header and status bar rows around the plot area.
const (
	headerRows = 2
	statusRows = 1
)

// Model is the root Bubble Tea model. It owns the view state: every
// interaction handler computes the next state and View redraws from it.
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	// View state
	viewMode ViewMode
	prevMode ViewMode

	// Data
	traces   []model.TraceRecord
	taxonomy model.Taxonomy
	selected int // trace index backing the graph views

	// Views. A mode switch or re-render replaces these wholesale; the
	// abandoned solver simply stops receiving frames.
	intersection *IntersectionView
	graph        *GraphView
	viewport     viewport.Model
	stats        StatsPanel

	opts Options

	// Key bindings
	keys KeyMap

	ticking bool
}

// NewRootModel builds the root model for a trace list and taxonomy.
func NewRootModel(traces []model.TraceRecord, tx model.Taxonomy, opts Options) Model {
	m := Model{
		viewMode: ViewModeMatrix,
		traces:   traces,
		taxonomy: tx,
		opts:     opts,
		keys:     DefaultKeyMap(),
		stats:    NewStatsPanel(false),
	}
	m.intersection = NewIntersectionView(traces, tx, opts)
	m.syncMatrixContent()
	m.refreshStats()
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refreshStats() {
	mx := m.intersection.Matrix()
	calls := 0
	for _, id := range mx.TraceIDs {
		calls += len(mx.PerTrace[id].Order)
	}
	combos := mx.Combos()
	top := ""
	if len(combos) > 0 {
		top = fmt.Sprintf("%s ×%d", combos[0].Label(), combos[0].Count)
	}
	m.stats.SetCounts(len(mx.TraceIDs), len(mx.Tools), calls, mx.Dropped, len(combos), top)
}

// plotSize returns the area available to the active view.
func (m Model) plotSize() (w, h int) {
	return m.width, m.height - headerRows - statusRows
}

// syncMatrixContent pushes the intersection view's current render into
// the persisted viewport. The viewport clamps scrolling against its
// stored content, so this must happen in Update whenever the matrix
// changes, not just at draw time.
func (m *Model) syncMatrixContent() {
	m.viewport.SetContent(m.intersection.View())
}

// openGraph replaces the active graph view for the selected trace. The
// previous view and its solver are discarded, not stopped mid-tick.
func (m *Model) openGraph(kind GraphKind) tea.Cmd {
	if len(m.traces) == 0 {
		return nil
	}
	if m.selected < 0 || m.selected >= len(m.traces) {
		m.selected = 0
	}
	tr := &m.traces[m.selected]
	if kind == GraphOrder {
		m.graph = NewOrderGraphView(tr, m.taxonomy)
		m.viewMode = ViewModeOrderGraph
	} else {
		m.graph = NewFlowGraphView(tr, m.taxonomy)
		m.viewMode = ViewModeFlowGraph
	}
	w, h := m.plotSize()
	m.graph.Resize(w, h)
	if !m.ticking {
		m.ticking = true
		return frameCmd()
	}
	return nil
}

// Update handles all events
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		w, h := m.plotSize()
		m.intersection.Resize(w, h)
		m.viewport.Width = w
		m.viewport.Height = h
		m.syncMatrixContent()
		if m.graph != nil {
			m.graph.Resize(w, h)
		}
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case frameMsg:
		if m.graph == nil {
			m.ticking = false
			return m, nil
		}
		m.graph.Tick()
		if m.graph.Running() {
			return m, frameCmd()
		}
		m.ticking = false
		return m, nil
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		if m.viewMode == ViewModeHelp {
			m.viewMode = m.prevMode
		} else {
			m.prevMode = m.viewMode
			m.viewMode = ViewModeHelp
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.viewMode != ViewModeMatrix {
			m.viewMode = ViewModeMatrix
			m.intersection.ClearHighlights()
			m.syncMatrixContent()
		}
		return m, nil

	case key.Matches(msg, m.keys.Matrix):
		m.viewMode = ViewModeMatrix
		m.syncMatrixContent()
		return m, nil

	case key.Matches(msg, m.keys.Order):
		return m, m.openGraph(GraphOrder)

	case key.Matches(msg, m.keys.Flow):
		return m, m.openGraph(GraphFlow)

	case key.Matches(msg, m.keys.Stats):
		m.stats.Toggle()
		return m, nil

	case key.Matches(msg, m.keys.Reheat):
		if m.graphMode() && m.graph != nil {
			m.graph.Reheat()
			if !m.ticking {
				m.ticking = true
				return m, frameCmd()
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.graphMode() {
			if m.selected > 0 {
				m.selected--
				return m, m.openGraph(m.graphKind())
			}
			return m, nil
		}

	case key.Matches(msg, m.keys.Down):
		if m.graphMode() {
			if m.selected < len(m.traces)-1 {
				m.selected++
				return m, m.openGraph(m.graphKind())
			}
			return m, nil
		}
	}

	if m.viewMode == ViewModeMatrix {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) graphMode() bool {
	return m.viewMode == ViewModeOrderGraph || m.viewMode == ViewModeFlowGraph
}

func (m Model) graphKind() GraphKind {
	if m.viewMode == ViewModeFlowGraph {
		return GraphFlow
	}
	return GraphOrder
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	// Wheel scrolling belongs to the viewport in matrix mode.
	if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
		if m.viewMode == ViewModeMatrix {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	x := msg.X
	y := msg.Y - headerRows
	if m.viewMode == ViewModeMatrix {
		y += m.viewport.YOffset
	}

	switch m.viewMode {
	case ViewModeMatrix:
		if y < 0 {
			m.intersection.ClearHighlights()
			m.syncMatrixContent()
			return m, nil
		}
		switch msg.Action {
		case tea.MouseActionMotion:
			m.intersection.HandleHover(x, y)
			m.syncMatrixContent()
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				if rec := m.intersection.HandleClick(x, y); rec != nil {
					m.selected = m.rowIndex(rec)
					return m, m.openGraph(GraphOrder)
				}
			}
		}
		return m, nil

	case ViewModeOrderGraph, ViewModeFlowGraph:
		if m.graph == nil {
			return m, nil
		}
		switch msg.Action {
		case tea.MouseActionPress:
			if msg.Button == tea.MouseButtonLeft {
				m.graph.HandlePress(x, y)
				if !m.ticking {
					m.ticking = true
					return m, frameCmd()
				}
			}
		case tea.MouseActionMotion:
			m.graph.HandleHover(x, y)
			if m.graph.Running() && !m.ticking {
				m.ticking = true
				return m, frameCmd()
			}
		case tea.MouseActionRelease:
			m.graph.HandleRelease()
		}
		return m, nil
	}
	return m, nil
}

// rowIndex maps a selected record back to its input position.
func (m Model) rowIndex(rec *model.TraceRecord) int {
	for i := range m.traces {
		if &m.traces[i] == rec {
			return i
		}
	}
	return 0
}

// View renders the active view
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()
	status := m.renderStatusBar()

	var body string
	switch m.viewMode {
	case ViewModeHelp:
		body = m.helpView()
	case ViewModeOrderGraph, ViewModeFlowGraph:
		if m.graph != nil {
			body = m.graph.View()
		}
	default:
		// Content is synced in Update; View only draws.
		body = m.viewport.View()
	}

	if m.stats.IsEnabled() {
		body = lipgloss.JoinVertical(lipgloss.Left, m.stats.Render(24), body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// renderHeader renders the header bar
func (m Model) renderHeader() string {
	title := HeaderStyle.Render("AGENTPROFILER")

	var mode string
	switch m.viewMode {
	case ViewModeMatrix:
		mode = "tool usage matrix"
	case ViewModeOrderGraph:
		mode = fmt.Sprintf("call order · %s", m.traces[m.selected].ID)
	case ViewModeFlowGraph:
		mode = fmt.Sprintf("call flow · %s", m.traces[m.selected].ID)
	case ViewModeHelp:
		mode = "help"
	}
	subtitle := SubtitleStyle.Render(mode)

	line := title + "  " + subtitle
	return lipgloss.NewStyle().Width(m.width).Render(line) + "\n"
}

// renderStatusBar renders the bottom key hints
func (m Model) renderStatusBar() string {
	hints := ""
	for i, b := range m.keys.ShortHelp() {
		if i > 0 {
			hints += "  "
		}
		hints += StatusKeyStyle.Render(b.Help().Key) + " " + b.Help().Desc
	}
	return StatusBarStyle.Width(m.width).Render(hints)
}

// helpView renders the help overlay
func (m Model) helpView() string {
	content := HelpTitleStyle.Render("AgentProfiler") + "\n\n"
	for _, group := range m.keys.FullHelp() {
		for _, b := range group {
			content += HelpKeyStyle.Render(padRight(b.Help().Key, 8)) +
				HelpDescStyle.Render(b.Help().Desc) + "\n"
		}
		content += "\n"
	}
	content += DimStyle.Render("hover cells for details · click a row to open its call graph\ndrag graph nodes to rearrange the layout")
	return HelpStyle.Render(content)
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}
