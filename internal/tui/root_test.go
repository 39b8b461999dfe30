package tui

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

func manyTraces(n int) []model.TraceRecord {
	traces := make([]model.TraceRecord, 0, n)
	for i := 0; i < n; i++ {
		traces = append(traces, model.TraceRecord{
			ID:      fmt.Sprintf("run-%d", i),
			Outputs: []model.Output{callOut(req("c1", "search"))},
		})
	}
	return traces
}

func wheelDown() tea.MouseMsg {
	return tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
}

func TestMatrixWheelScrolling(t *testing.T) {
	m := NewRootModel(manyTraces(40), nil, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	rm := next.(Model)

	// 40 rows render far taller than the 7-line viewport.
	if rm.viewport.TotalLineCount() <= rm.viewport.Height {
		t.Fatalf("viewport holds %d lines for %d-line height, nothing to scroll",
			rm.viewport.TotalLineCount(), rm.viewport.Height)
	}

	for i := 0; i < 10; i++ {
		next, _ = rm.Update(wheelDown())
		rm = next.(Model)
	}
	if rm.viewport.YOffset == 0 {
		t.Fatal("wheel scrolling never moved the viewport")
	}
}

func TestMatrixKeyScrolling(t *testing.T) {
	m := NewRootModel(manyTraces(40), nil, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	rm := next.(Model)

	for i := 0; i < 5; i++ {
		next, _ = rm.Update(tea.KeyMsg{Type: tea.KeyDown})
		rm = next.(Model)
	}
	if rm.viewport.YOffset == 0 {
		t.Fatal("down key never moved the viewport")
	}
}

func TestMatrixHoverBelowTheFold(t *testing.T) {
	m := NewRootModel(manyTraces(40), nil, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 10})
	rm := next.(Model)

	for i := 0; i < 10; i++ {
		next, _ = rm.Update(wheelDown())
		rm = next.(Model)
	}
	offset := rm.viewport.YOffset
	if offset == 0 {
		t.Fatal("viewport did not scroll")
	}

	// A hover inside the scrolled viewport must resolve to the row the
	// offset puts under the pointer, not the row at the screen position.
	v := rm.intersection
	x := int(v.geom.x.Center(0))
	screenY := 5
	next, _ = rm.Update(tea.MouseMsg{X: x, Y: screenY, Action: tea.MouseActionMotion})
	rm = next.(Model)

	wantRow, ok := v.geom.y.Invert(float64(screenY - headerRows + offset))
	if !ok {
		t.Fatalf("test coordinates miss the matrix area")
	}
	if rm.intersection.grid.row != wantRow {
		t.Errorf("hovered row = %d, want %d", rm.intersection.grid.row, wantRow)
	}
	if wantRow < rm.viewport.Height {
		t.Errorf("scrolled hover landed on row %d, still within the first screen", wantRow)
	}
}
