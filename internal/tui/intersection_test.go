package tui

import (
	"strings"
	"testing"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

func callOut(reqs ...model.ToolCallRequest) model.Output {
	return model.Output{ToolCalls: reqs}
}

func req(id, name string) model.ToolCallRequest {
	return model.ToolCallRequest{ID: id, Name: name}
}

func score(f float64) *float64 { return &f }

// plotTraces is the shared fixture: two runs over two tools, one run
// scored, one not.
func plotTraces() []model.TraceRecord {
	return []model.TraceRecord{
		{
			ID:      "run-a",
			Score:   score(0.8),
			Outputs: []model.Output{callOut(req("c1", "search"), req("c2", "read"))},
		},
		{
			ID:      "run-b",
			Outputs: []model.Output{callOut(req("c3", "search"))},
		},
	}
}

func (v *IntersectionView) cellAt(t *testing.T, row, col int) (int, int) {
	t.Helper()
	return int(v.geom.x.Center(col)), int(v.geom.y.Center(row))
}

func TestIntersectionEmptyState(t *testing.T) {
	tests := []struct {
		name   string
		traces []model.TraceRecord
	}{
		{"no traces", nil},
		{"no tool calls", []model.TraceRecord{{ID: "run-a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewIntersectionView(tt.traces, nil, Options{})
			if !v.Empty() {
				t.Fatal("Empty() = false")
			}
			if got := v.View(); !strings.Contains(got, "no data") {
				t.Errorf("empty view missing placeholder: %q", got)
			}
		})
	}
}

func TestIntersectionViewIdempotent(t *testing.T) {
	v := NewIntersectionView(plotTraces(), nil, Options{})
	if a, b := v.View(), v.View(); a != b {
		t.Error("repeated View() calls differ")
	}

	// Two views built from the same input render identically even
	// though their instance ids differ.
	w := NewIntersectionView(plotTraces(), nil, Options{})
	if v.ID == w.ID {
		t.Error("instance ids collide")
	}
	if v.View() != w.View() {
		t.Error("views from identical input render differently")
	}
}

func TestIntersectionHitRegions(t *testing.T) {
	v := NewIntersectionView(plotTraces(), nil, Options{})
	cx0, ry0 := v.cellAt(t, 0, 0)
	cx1, ry1 := v.cellAt(t, 1, 1)

	tests := []struct {
		name     string
		x, y     int
		region   hitRegion
		row, col int
	}{
		{"bar area", cx0, v.geom.barTop, hitBar, -1, 0},
		{"column label", cx1, v.geom.labelY, hitColumnLabel, -1, 1},
		{"cell 0,0", cx0, ry0, hitCell, 0, 0},
		{"cell 1,1", cx1, ry1, hitCell, 1, 1},
		{"row gutter", v.geom.margin.Left, ry1, hitRowGutter, 1, -1},
		{"score rail", v.geom.railX + 1, ry0, hitRail, 0, -1},
		{"dead corner", 0, 0, hitNone, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, row, col := v.hitTest(tt.x, tt.y)
			if region != tt.region || row != tt.row || col != tt.col {
				t.Errorf("hitTest(%d,%d) = (%v,%d,%d), want (%v,%d,%d)",
					tt.x, tt.y, region, row, col, tt.region, tt.row, tt.col)
			}
		})
	}
}

func TestHoverFansOutToSiblings(t *testing.T) {
	v := NewIntersectionView(plotTraces(), nil, Options{})
	x, y := v.cellAt(t, 1, 0)
	v.HandleHover(x, y)

	for name, hs := range map[string]highlightState{
		"bars": v.bars.highlightState,
		"grid": v.grid.highlightState,
		"rail": v.rail.highlightState,
	} {
		if hs.row != 1 || hs.col != 0 {
			t.Errorf("%s highlight = (%d,%d), want (1,0)", name, hs.row, hs.col)
		}
	}
	if !v.tooltip.Visible {
		t.Error("cell hover did not show tooltip")
	}
}

func TestHighlightExclusivity(t *testing.T) {
	v := NewIntersectionView(plotTraces(), nil, Options{})

	// Moving between cells replaces the highlight, never accumulates.
	x0, y0 := v.cellAt(t, 0, 0)
	x1, y1 := v.cellAt(t, 1, 1)
	v.HandleHover(x0, y0)
	v.HandleHover(x1, y1)
	if v.grid.row != 1 || v.grid.col != 1 {
		t.Errorf("grid highlight = (%d,%d), want (1,1)", v.grid.row, v.grid.col)
	}

	// Bar hover highlights the column only.
	v.HandleHover(x0, v.geom.barTop)
	if v.grid.row != -1 || v.grid.col != 0 {
		t.Errorf("after bar hover = (%d,%d), want (-1,0)", v.grid.row, v.grid.col)
	}

	// Rail hover highlights the row only.
	v.HandleHover(v.geom.railX+1, y1)
	if v.grid.row != 1 || v.grid.col != -1 {
		t.Errorf("after rail hover = (%d,%d), want (1,-1)", v.grid.row, v.grid.col)
	}

	// Leaving the interactive region clears everything.
	v.HandleHover(0, 0)
	if v.grid.row != -1 || v.grid.col != -1 {
		t.Errorf("after leave = (%d,%d), want (-1,-1)", v.grid.row, v.grid.col)
	}
	if v.tooltip.Visible {
		t.Error("tooltip still visible after leaving the plot")
	}
}

func TestHandleClickReturnsOriginalRecord(t *testing.T) {
	var selected *model.TraceRecord
	v := NewIntersectionView(plotTraces(), nil, Options{
		OnRowSelect: func(rec *model.TraceRecord) { selected = rec },
	})

	x, y := v.cellAt(t, 1, 0)
	rec := v.HandleClick(x, y)
	if rec != &v.traces[1] {
		t.Error("click did not resolve to the backing record")
	}
	if selected != rec {
		t.Error("callback received a different record")
	}
	if rec.ID != "run-b" {
		t.Errorf("clicked record = %q, want run-b", rec.ID)
	}
}

func TestHandleClickMisses(t *testing.T) {
	v := NewIntersectionView(plotTraces(), nil, Options{})
	if rec := v.HandleClick(10, 0); rec != nil {
		t.Errorf("click above the matrix returned %v", rec)
	}

	empty := NewIntersectionView(nil, nil, Options{})
	if rec := empty.HandleClick(5, 5); rec != nil {
		t.Errorf("click on empty view returned %v", rec)
	}
}

func TestDeriveGeometrySizing(t *testing.T) {
	margin := DefaultMargin()

	tests := []struct {
		name   string
		traces []model.TraceRecord
		opts   Options
		wantW  int
		wantH  int
	}{
		{
			name:   "defaults",
			traces: plotTraces(),
			opts:   Options{},
			wantW:  DefaultWidth,
			// Two rows pad up to the matrix floor.
			wantH: margin.Top + barHeight + 1 + minMatrixHeight + margin.Bottom,
		},
		{
			name:   "explicit size wins",
			traces: plotTraces(),
			opts:   Options{Width: 120, Height: 40},
			wantW:  120,
			wantH:  40,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewIntersectionView(tt.traces, nil, tt.opts)
			w, h := v.Size()
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Size() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeTracksTerminalWidth(t *testing.T) {
	v := NewIntersectionView(plotTraces(), nil, Options{})
	v.Resize(132, 50)
	if w, _ := v.Size(); w != 132 {
		t.Errorf("width after resize = %d, want 132", w)
	}
}
