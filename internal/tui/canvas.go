package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one terminal cell of the plot area: a rune plus the style it
// renders with.
type Cell struct {
	Rune  rune
	Style *lipgloss.Style
}

// Canvas is a fixed-size rune grid the views draw primitives into.
// Every render starts from a fresh canvas, so stale elements never
// accumulate across renders.
type Canvas struct {
	W, H  int
	cells []Cell
}

// NewCanvas allocates a blank canvas filled with spaces.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{W: w, H: h, cells: make([]Cell, w*h)}
	for i := range c.cells {
		c.cells[i].Rune = ' '
	}
	return c
}

// Set places a styled rune. Out-of-bounds writes are clipped.
func (c *Canvas) Set(x, y int, r rune, style *lipgloss.Style) {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return
	}
	c.cells[y*c.W+x] = Cell{Rune: r, Style: style}
}

// Text writes a horizontal string starting at (x, y), clipped to the
// canvas bounds.
func (c *Canvas) Text(x, y int, s string, style *lipgloss.Style) {
	for i, r := range []rune(s) {
		c.Set(x+i, y, r, style)
	}
}

// HLine draws a horizontal run of a rune.
func (c *Canvas) HLine(x, y, length int, r rune, style *lipgloss.Style) {
	for i := 0; i < length; i++ {
		c.Set(x+i, y, r, style)
	}
}

// VLine draws a vertical run of a rune.
func (c *Canvas) VLine(x, y, length int, r rune, style *lipgloss.Style) {
	for i := 0; i < length; i++ {
		c.Set(x, y+i, r, style)
	}
}

// Line draws an approximate straight line between two cells, used for
// graph edges. Bresenham over cell coordinates.
func (c *Canvas) Line(x0, y0, x1, y1 int, r rune, style *lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Overlay copies another canvas on top of this one at (x, y). Blank
// cells of the overlay still overwrite, so a tooltip box occludes what
// it floats over.
func (c *Canvas) Overlay(x, y int, other *Canvas) {
	for oy := 0; oy < other.H; oy++ {
		for ox := 0; ox < other.W; ox++ {
			cell := other.cells[oy*other.W+ox]
			c.Set(x+ox, y+oy, cell.Rune, cell.Style)
		}
	}
}

// Render flattens the canvas to a styled string. Consecutive cells
// sharing a style render as one styled run.
func (c *Canvas) Render() string {
	var b strings.Builder
	for y := 0; y < c.H; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		var runStyle *lipgloss.Style
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runStyle != nil {
				b.WriteString(runStyle.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := 0; x < c.W; x++ {
			cell := c.cells[y*c.W+x]
			if cell.Style != runStyle {
				flush()
				runStyle = cell.Style
			}
			run = append(run, cell.Rune)
		}
		flush()
	}
	return b.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
