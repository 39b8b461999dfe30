package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/EdenWuyifan/AgentProfiler/internal/extract"
	"github.com/EdenWuyifan/AgentProfiler/internal/glyph"
	"github.com/EdenWuyifan/AgentProfiler/internal/model"
	"github.com/EdenWuyifan/AgentProfiler/internal/scale"
)

// Fixed plot metrics, in cells. Caller width/height overrides take
// precedence over the computed size; the matrix never drops below
// minMatrixHeight regardless of trace count.
const (
	barHeight       = 6
	minRowHeight    = 1
	minMatrixHeight = 6
	rowLabelWidth   = 14
	railWidth       = 14
	xBandPadding    = 0.3
	yBandPadding    = 0.1
)

// geometry is the derived coordinate system of one intersection render.
type geometry struct {
	w, h    int
	margin  Margin
	barTop  int
	labelY  int
	matrixX int
	matrixY int
	matrixW int
	matrixH int
	railX   int

	x     scale.Band
	y     scale.Band
	bar   scale.Linear
	score scale.Linear
}

func deriveGeometry(m *extract.Matrix, usage []int, opts Options, termW, termH int) geometry {
	g := geometry{margin: opts.margin()}

	g.w = opts.Width
	if g.w <= 0 {
		g.w = termW
	}
	if g.w <= 0 {
		g.w = DefaultWidth
	}

	g.matrixH = len(m.TraceIDs) * minRowHeight
	if g.matrixH < minMatrixHeight {
		g.matrixH = minMatrixHeight
	}
	g.h = g.margin.Top + barHeight + 1 + g.matrixH + g.margin.Bottom
	if opts.Height > 0 {
		g.h = opts.Height
		g.matrixH = g.h - g.margin.Top - barHeight - 1 - g.margin.Bottom
		if g.matrixH < 1 {
			g.matrixH = 1
		}
	}

	g.barTop = g.margin.Top
	g.labelY = g.margin.Top + barHeight
	g.matrixY = g.labelY + 1
	g.matrixX = g.margin.Left + rowLabelWidth
	g.matrixW = g.w - g.matrixX - railWidth - g.margin.Right
	if g.matrixW < 1 {
		g.matrixW = 1
	}
	g.railX = g.matrixX + g.matrixW

	maxUsage := 0
	for _, u := range usage {
		if u > maxUsage {
			maxUsage = u
		}
	}
	minScore, maxScore := 0.0, 0.0
	for _, id := range m.TraceIDs {
		tc := m.PerTrace[id]
		if tc.Score == nil {
			continue
		}
		if *tc.Score < minScore {
			minScore = *tc.Score
		}
		if *tc.Score > maxScore {
			maxScore = *tc.Score
		}
	}

	g.x = scale.NewBand(len(m.Tools), float64(g.matrixX), float64(g.matrixX+g.matrixW), xBandPadding)
	g.y = scale.NewBand(len(m.TraceIDs), float64(g.matrixY), float64(g.matrixY+g.matrixH), yBandPadding)
	g.bar = scale.NewLinear(0, float64(maxUsage), 0, barHeight-1)
	g.score = scale.NewLinear(minScore, maxScore, 0, float64(railWidth-7))
	return g
}

// barChart draws per-tool usage bars above the matrix.
type barChart struct {
	highlightState
	fan fanOut
}

// matrixGrid draws the tool × run presence grid.
type matrixGrid struct {
	highlightState
	fan fanOut
}

// scoreRail draws per-run score bars right of the matrix.
type scoreRail struct {
	highlightState
	fan fanOut
}

// IntersectionView is the coordinated UpSet view: bar chart, presence
// matrix, score rail, and one shared tooltip. It is rebuilt from
// scratch on every render call; nothing carries over between renders
// except what the caller passes back in.
type IntersectionView struct {
	ID string // render instance id

	traces []model.TraceRecord
	matrix *extract.Matrix
	assign *glyph.Assignment
	usage  []int
	opts   Options
	geom   geometry

	bars *barChart
	grid *matrixGrid
	rail *scoreRail

	tooltip Tooltip
}

// NewIntersectionView extracts the matrix model, assigns glyphs, and
// wires the sibling views' highlight fan-out.
func NewIntersectionView(traces []model.TraceRecord, tx model.Taxonomy, opts Options) *IntersectionView {
	m := extract.BuildMatrix(traces)
	v := &IntersectionView{
		ID:     uuid.NewString(),
		traces: traces,
		matrix: m,
		assign: glyph.Build(tx),
		usage:  m.ToolUsage(),
		opts:   opts,
		bars:   &barChart{highlightState: newHighlightState()},
		grid:   &matrixGrid{highlightState: newHighlightState()},
		rail:   &scoreRail{highlightState: newHighlightState()},
	}
	// Each view fans out to every sibling, itself included, so the
	// view that owns a pointer event updates all three.
	v.bars.fan.register(v.bars, v.grid, v.rail)
	v.grid.fan.register(v.bars, v.grid, v.rail)
	v.rail.fan.register(v.bars, v.grid, v.rail)
	v.Resize(0, 0)
	return v
}

// Matrix exposes the extracted model (stats panel, tests).
func (v *IntersectionView) Matrix() *extract.Matrix {
	return v.matrix
}

// Empty reports whether there is nothing to draw.
func (v *IntersectionView) Empty() bool {
	return len(v.matrix.TraceIDs) == 0 || len(v.matrix.Tools) == 0
}

// Size returns the current canvas size.
func (v *IntersectionView) Size() (w, h int) {
	return v.geom.w, v.geom.h
}

// Resize recomputes the coordinate scales for a terminal size.
func (v *IntersectionView) Resize(termW, termH int) {
	v.geom = deriveGeometry(v.matrix, v.usage, v.opts, termW, termH)
}

// region classification for hit-testing.
type hitRegion int

const (
	hitNone hitRegion = iota
	hitBar
	hitColumnLabel
	hitCell
	hitRowGutter
	hitRail
)

// hitTest resolves a pointer position against the scales' own band
// boundaries.
func (v *IntersectionView) hitTest(x, y int) (hitRegion, int, int) {
	g := v.geom
	fx, fy := float64(x), float64(y)

	if y >= g.barTop && y < g.labelY {
		if col, ok := g.x.Invert(fx); ok {
			return hitBar, -1, col
		}
		return hitNone, -1, -1
	}
	if y == g.labelY {
		if col, ok := g.x.Invert(fx); ok {
			return hitColumnLabel, -1, col
		}
		return hitNone, -1, -1
	}
	row, ok := g.y.Invert(fy)
	if !ok {
		return hitNone, -1, -1
	}
	if x >= g.railX && x < g.w-g.margin.Right {
		return hitRail, row, -1
	}
	if x >= g.margin.Left && x < g.matrixX {
		return hitRowGutter, row, -1
	}
	if col, ok := g.x.Invert(fx); ok {
		return hitCell, row, col
	}
	return hitNone, -1, -1
}

// HandleHover updates highlight state and the tooltip for a pointer
// position in canvas coordinates.
func (v *IntersectionView) HandleHover(x, y int) {
	if v.Empty() {
		return
	}
	region, row, col := v.hitTest(x, y)
	switch region {
	case hitBar, hitColumnLabel:
		v.bars.fan.clearRow()
		v.bars.fan.setColumn(col)
		v.showToolTooltip(x, y, col)
	case hitCell:
		v.grid.fan.setRow(row)
		v.grid.fan.setColumn(col)
		v.showCellTooltip(x, y, row, col)
	case hitRail, hitRowGutter:
		// Row stays highlighted over the rail; the column highlight
		// does not follow the pointer out of the matrix.
		v.rail.fan.setRow(row)
		v.rail.fan.clearColumn()
		v.showRowTooltip(x, y, row)
	default:
		v.ClearHighlights()
	}
}

// ClearHighlights drops all highlight state and hides the tooltip, as
// when the pointer leaves the interactive region.
func (v *IntersectionView) ClearHighlights() {
	v.grid.fan.clearRow()
	v.grid.fan.clearColumn()
	v.tooltip.Hide()
}

// HandleClick resolves a click to the original input record for the
// clicked row. Position identifies the record; derived ids do not.
func (v *IntersectionView) HandleClick(x, y int) *model.TraceRecord {
	if v.Empty() {
		return nil
	}
	row, ok := v.geom.y.Invert(float64(y))
	if !ok {
		return nil
	}
	if x < v.geom.margin.Left || x >= v.geom.w-v.geom.margin.Right {
		return nil
	}
	rec := &v.traces[row]
	if v.opts.OnRowSelect != nil {
		v.opts.OnRowSelect(rec)
	}
	return rec
}

func (v *IntersectionView) showToolTooltip(x, y, col int) {
	tool := v.matrix.Tools[col]
	gl := v.assign.Lookup(tool)
	v.tooltip.Show(x, y, tool, []string{
		"group: " + gl.Group,
		fmt.Sprintf("active in %d/%d runs", v.usage[col], len(v.matrix.TraceIDs)),
	})
}

func (v *IntersectionView) showRowTooltip(x, y, row int) {
	id := v.matrix.TraceIDs[row]
	v.tooltip.Show(x, y, id, []string{
		"score: " + v.scoreLabel(row),
		fmt.Sprintf("tool calls: %d", len(v.matrix.PerTrace[id].Order)),
	})
}

func (v *IntersectionView) showCellTooltip(x, y, row, col int) {
	id := v.matrix.TraceIDs[row]
	tool := v.matrix.Tools[col]
	gl := v.assign.Lookup(tool)
	lines := []string{
		"group: " + gl.Group,
		"run: " + id,
		"score: " + v.scoreLabel(row),
	}
	if rec, ok := v.matrix.Active(id, tool); ok {
		lines = append(lines, "args:")
		for _, l := range strings.Split(rec.ArgsJSON(ArgsPlaceholder), "\n") {
			lines = append(lines, "  "+l)
		}
	} else {
		lines = append(lines, "not called in this run")
	}
	v.tooltip.Show(x, y, tool, lines)
}

// scoreLabel formats a trace score, degrading to a placeholder when the
// score is absent.
func (v *IntersectionView) scoreLabel(row int) string {
	tc := v.matrix.PerTrace[v.matrix.TraceIDs[row]]
	if tc.Score == nil {
		return "—"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", *tc.Score), "0"), ".")
}

// groupStyle picks the color cycling with the group's glyph rank.
func (v *IntersectionView) groupStyle(group string) *lipgloss.Style {
	for i, g := range v.assign.Groups() {
		if g == group {
			return &GroupStyles[i%len(GroupStyles)]
		}
	}
	return &DimStyle
}

// View renders the full intersection plot into a fresh canvas.
func (v *IntersectionView) View() string {
	if v.Empty() {
		return EmptyStyle.Render("no data — no traces or tool calls to plot")
	}
	g := v.geom
	c := NewCanvas(g.w, g.h)

	v.drawBars(c)
	v.drawColumnLabels(c)
	v.drawMatrix(c)
	v.drawRail(c)
	v.tooltip.DrawOn(c)

	return c.Render()
}

func (v *IntersectionView) drawBars(c *Canvas) {
	g := v.geom
	bw := int(g.x.Bandwidth())
	if bw < 1 {
		bw = 1
	}
	for col := range v.matrix.Tools {
		h := int(g.bar.Map(float64(v.usage[col])) + 0.5)
		style := &BarStyle
		if v.bars.col == col {
			style = &BarHighlightStyle
		}
		x := int(g.x.Pos(col))
		for dy := 0; dy < h; dy++ {
			c.HLine(x, g.labelY-1-dy, bw, '█', style)
		}
		// Usage count above the bar when it fits.
		label := fmt.Sprintf("%d", v.usage[col])
		if g.labelY-1-h >= g.barTop && len(label) <= bw+1 {
			c.Text(x, g.labelY-1-h, label, &BarLabelStyle)
		}
	}
}

func (v *IntersectionView) drawColumnLabels(c *Canvas) {
	g := v.geom
	for col, tool := range v.matrix.Tools {
		gl := v.assign.Lookup(tool)
		style := v.groupStyle(gl.Group)
		if v.bars.col == col {
			style = &CellHighlightStyle
		}
		c.Set(int(g.x.Center(col)), g.labelY, gl.Shape.Rune(), style)
	}
}

func (v *IntersectionView) drawMatrix(c *Canvas) {
	g := v.geom
	for row, id := range v.matrix.TraceIDs {
		y := int(g.y.Center(row))
		labelStyle := &RowLabelStyle
		if v.grid.row == row {
			labelStyle = &RowLabelHighlightStyle
		}
		c.Text(g.margin.Left, y, clip(id, rowLabelWidth-1), labelStyle)

		for col, tool := range v.matrix.Tools {
			x := int(g.x.Center(col))
			_, active := v.matrix.Active(id, tool)
			highlighted := v.grid.row == row || v.grid.col == col
			switch {
			case active && highlighted:
				c.Set(x, y, v.assign.Lookup(tool).Shape.Rune(), &CellHighlightStyle)
			case active:
				style := v.groupStyle(v.assign.Lookup(tool).Group)
				c.Set(x, y, v.assign.Lookup(tool).Shape.Rune(), style)
			case highlighted:
				c.Set(x, y, '·', &CellActiveStyle)
			default:
				c.Set(x, y, '·', &CellInactiveStyle)
			}
		}
	}
}

func (v *IntersectionView) drawRail(c *Canvas) {
	g := v.geom
	zero := g.score.Map(0)
	for row, id := range v.matrix.TraceIDs {
		y := int(g.y.Center(row))
		tc := v.matrix.PerTrace[id]
		if tc.Score == nil {
			style := &ScoreMissingStyle
			if v.rail.row == row {
				style = &RowLabelHighlightStyle
			}
			c.Text(g.railX+1, y, "—", style)
			continue
		}
		pos := g.score.Map(*tc.Score)
		style := &ScorePositiveStyle
		start, length := zero, pos-zero
		if *tc.Score < 0 {
			style = &ScoreNegativeStyle
			start, length = pos, zero-pos
		}
		if v.rail.row == row {
			style = &BarHighlightStyle
		}
		n := int(length + 0.5)
		if n < 1 {
			n = 1
		}
		c.HLine(g.railX+1+int(start), y, n, '█', style)
		c.Text(g.railX+railWidth-5, y, clip(v.scoreLabel(row), 5), &BarLabelStyle)
	}
}
