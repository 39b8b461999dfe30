package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/EdenWuyifan/AgentProfiler/internal/extract"
	"github.com/EdenWuyifan/AgentProfiler/internal/glyph"
	"github.com/EdenWuyifan/AgentProfiler/internal/layout"
	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

// GraphKind selects between the two graph readings of one run.
type GraphKind int

const (
	// GraphOrder shows one node per call instance, in literal order.
	GraphOrder GraphKind = iota
	// GraphFlow shows one node per unique tool with weighted
	// transitions, plus the linear call timeline.
	GraphFlow
)

// graphNode pairs a solver node with its display attributes.
type graphNode struct {
	label string
	gl    glyph.Glyph
	node  *layout.Node

	// Order-graph nodes carry the call record; flow nodes the count.
	record *model.ToolCallRecord
	count  int
}

// GraphView renders one trace as a force-laid-out graph. A new render
// builds a new view and solver; the old one is simply abandoned.
type GraphView struct {
	ID   string
	Kind GraphKind

	trace  *model.TraceRecord
	assign *glyph.Assignment
	nodes  []graphNode
	edges  []layout.Edge
	flow   *extract.FlowGraph

	solver *layout.Solver
	w, h   int

	dragging int // node index under drag, -1 when free
	tooltip  Tooltip
}

// NewOrderGraphView extracts the per-instance order graph of a trace.
func NewOrderGraphView(trace *model.TraceRecord, tx model.Taxonomy) *GraphView {
	og := extract.BuildOrderGraph(trace)
	v := &GraphView{
		ID:       uuid.NewString(),
		Kind:     GraphOrder,
		trace:    trace,
		assign:   glyph.Build(tx),
		dragging: -1,
	}
	for _, n := range og.Nodes {
		v.nodes = append(v.nodes, graphNode{
			label:  fmt.Sprintf("%d·%s", n.Index+1, n.Record.Name),
			gl:     v.assign.Lookup(n.Record.Name),
			node:   &layout.Node{},
			record: n.Record,
		})
	}
	for _, e := range og.Edges {
		v.edges = append(v.edges, layout.Edge{Source: e.Source, Target: e.Target, Weight: float64(e.Weight)})
	}
	return v
}

// NewFlowGraphView extracts the deduplicated flow graph of a trace.
func NewFlowGraphView(trace *model.TraceRecord, tx model.Taxonomy) *GraphView {
	fg := extract.BuildFlowGraph(trace)
	v := &GraphView{
		ID:       uuid.NewString(),
		Kind:     GraphFlow,
		trace:    trace,
		assign:   glyph.Build(tx),
		flow:     fg,
		dragging: -1,
	}
	idx := make(map[string]int, len(fg.Nodes))
	for i, n := range fg.Nodes {
		idx[n.Name] = i
		v.nodes = append(v.nodes, graphNode{
			label: fmt.Sprintf("%s ×%d", n.Name, n.Count),
			gl:    v.assign.Lookup(n.Name),
			node:  &layout.Node{},
			count: n.Count,
		})
	}
	for _, e := range fg.Edges {
		v.edges = append(v.edges, layout.Edge{Source: idx[e.Source], Target: idx[e.Target], Weight: float64(e.Weight)})
	}
	return v
}

// Empty reports whether the trace produced no nodes.
func (v *GraphView) Empty() bool {
	return len(v.nodes) == 0
}

// Resize rebuilds the solver for a new canvas size. Node positions
// survive; the spiral seed only applies to still-unplaced nodes.
func (v *GraphView) Resize(w, h int) {
	v.w, v.h = w, h
	if v.Empty() {
		return
	}
	plotH := v.plotHeight()
	cfg := layout.DefaultConfig(float64(w)/2, float64(plotH)/2)
	// Terminal cells, not pixels: the weight→distance relationship
	// keeps its shape with cell-sized constants.
	cfg.LinkBaseDistance = 16
	cfg.LinkDistanceSpread = 8
	cfg.Charge = -40
	cfg.CollideRadius = 4
	nodes := make([]*layout.Node, len(v.nodes))
	for i := range v.nodes {
		nodes[i] = v.nodes[i].node
	}
	v.solver = layout.New(nodes, v.edges, cfg)
}

// plotHeight reserves the timeline strip on flow views.
func (v *GraphView) plotHeight() int {
	if v.Kind == GraphFlow {
		return v.h - 2
	}
	return v.h
}

// Running reports whether the solver still wants frame ticks.
func (v *GraphView) Running() bool {
	return v.solver != nil && v.solver.State() == layout.Running
}

// Tick advances the simulation one frame.
func (v *GraphView) Tick() {
	if v.solver != nil {
		v.solver.Tick()
	}
}

// Reheat perturbs a settled layout back into motion.
func (v *GraphView) Reheat() {
	if v.solver != nil {
		v.solver.Reheat(0.5)
	}
}

// cellPos maps a solver position to a terminal cell, clamped to the
// plot area so a node drifting past the edge (or over the flow
// timeline strip) stays visible instead of being clipped away.
func (v *GraphView) cellPos(n *layout.Node) (int, int) {
	x := int(n.X + 0.5)
	y := int(n.Y + 0.5)
	if x < 0 {
		x = 0
	}
	if x > v.w-1 {
		x = v.w - 1
	}
	maxY := v.plotHeight() - 1
	if y < 0 {
		y = 0
	}
	if y > maxY {
		y = maxY
	}
	return x, y
}

// nodeAt finds the node whose glyph cell is close enough to the
// pointer, favouring the nearest candidate. It tests the clamped
// rendered cell, so edge-pinned nodes stay targetable.
func (v *GraphView) nodeAt(x, y int) int {
	best, bestDist := -1, 999
	for i := range v.nodes {
		nx, ny := v.cellPos(v.nodes[i].node)
		dx := abs(nx - x)
		dy := abs(ny - y)
		if dx <= 2 && dy <= 1 && dx+dy < bestDist {
			best, bestDist = i, dx+dy
		}
	}
	return best
}

// HandleHover shows a tooltip for the node under the pointer.
func (v *GraphView) HandleHover(x, y int) {
	if v.dragging >= 0 {
		v.HandleDrag(x, y)
		return
	}
	i := v.nodeAt(x, y)
	if i < 0 {
		v.tooltip.Hide()
		return
	}
	gn := &v.nodes[i]
	if v.Kind == GraphFlow {
		v.tooltip.Show(x, y, gn.label, []string{
			"group: " + gn.gl.Group,
			fmt.Sprintf("called %d times", gn.count),
		})
		return
	}
	lines := []string{"group: " + gn.gl.Group}
	if gn.record.Status != "" {
		lines = append(lines, "status: "+gn.record.Status)
	}
	lines = append(lines, "args:")
	for _, l := range strings.Split(gn.record.ArgsJSON(ArgsPlaceholder), "\n") {
		lines = append(lines, "  "+l)
	}
	v.tooltip.Show(x, y, gn.label, lines)
}

// HandlePress begins a drag when the pointer is on a node. The node is
// pinned for the drag's duration: position ownership moves to the
// pointer until release.
func (v *GraphView) HandlePress(x, y int) {
	i := v.nodeAt(x, y)
	if i < 0 {
		return
	}
	v.dragging = i
	v.nodes[i].node.Pin(float64(x), float64(y))
	if v.solver != nil {
		v.solver.Reheat(0.3)
	}
}

// HandleDrag moves the pinned node with the pointer.
func (v *GraphView) HandleDrag(x, y int) {
	if v.dragging < 0 {
		return
	}
	v.nodes[v.dragging].node.Pin(float64(x), float64(y))
	if v.solver != nil {
		v.solver.Reheat(0.3)
	}
}

// HandleRelease clears the pin; the node re-enters free simulation.
func (v *GraphView) HandleRelease() {
	if v.dragging < 0 {
		return
	}
	v.nodes[v.dragging].node.Unpin()
	v.dragging = -1
	if v.solver != nil {
		v.solver.Reheat(0.3)
	}
}

// View draws edges, nodes, labels, the flow timeline, and the tooltip.
func (v *GraphView) View() string {
	if v.Empty() {
		return EmptyStyle.Render("no data — this run has no tool calls")
	}
	c := NewCanvas(v.w, v.h)

	maxW := 1.0
	for _, e := range v.edges {
		if e.Weight > maxW {
			maxW = e.Weight
		}
	}
	for _, e := range v.edges {
		ax, ay := v.cellPos(v.nodes[e.Source].node)
		bx, by := v.cellPos(v.nodes[e.Target].node)
		r := '·'
		if e.Weight/maxW > 0.5 && maxW > 1 {
			r = '•'
		}
		c.Line(ax, ay, bx, by, r, &GraphEdgeStyle)
	}

	for i := range v.nodes {
		gn := &v.nodes[i]
		x, y := v.cellPos(gn.node)
		style := v.nodeStyle(gn.gl.Group)
		if i == v.dragging {
			style = &GraphNodeDragStyle
		}
		c.Set(x, y, gn.gl.Shape.Rune(), style)
		c.Text(x+2, y, clip(gn.label, 18), &GraphLabelStyle)
	}

	if v.Kind == GraphFlow {
		v.drawTimeline(c)
	}
	v.tooltip.DrawOn(c)
	return c.Render()
}

// drawTimeline renders the linear call sequence under the flow graph.
func (v *GraphView) drawTimeline(c *Canvas) {
	y := v.h - 1
	var b strings.Builder
	for i, name := range v.flow.CallSequence {
		if i > 0 {
			b.WriteString(" → ")
		}
		b.WriteRune(v.assign.Lookup(name).Shape.Rune())
		b.WriteByte(' ')
		b.WriteString(name)
	}
	c.Text(1, y, clip(b.String(), v.w-2), &TimelineStyle)
}

func (v *GraphView) nodeStyle(group string) *lipgloss.Style {
	for i, g := range v.assign.Groups() {
		if g == group {
			return &GroupStyles[i%len(GroupStyles)]
		}
	}
	return &GraphNodeStyle
}
