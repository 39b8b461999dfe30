package tui

import (
	"strings"
)

// tooltipOffsetX and tooltipOffsetY keep the tooltip clear of the
// pointer cell.
const (
	tooltipOffsetX = 2
	tooltipOffsetY = 1
	tooltipMaxW    = 44
	tooltipMaxH    = 12
)

// ArgsPlaceholder is shown when call arguments are absent or fail to
// serialize.
const ArgsPlaceholder = "(no args)"

// Tooltip is the single floating element shared by all views in one
// render. Its position follows the pointer with a fixed offset.
type Tooltip struct {
	Visible bool
	X, Y    int // pointer position, canvas coordinates
	Title   string
	Lines   []string
}

// Show places the tooltip at the pointer with new content.
func (t *Tooltip) Show(x, y int, title string, lines []string) {
	t.Visible = true
	t.X = x
	t.Y = y
	t.Title = title
	t.Lines = lines
}

// Hide clears the tooltip.
func (t *Tooltip) Hide() {
	t.Visible = false
	t.Title = ""
	t.Lines = nil
}

// DrawOn overlays the tooltip onto a canvas, flipping to the other side
// of the pointer when the default offset would clip.
func (t *Tooltip) DrawOn(c *Canvas) {
	if !t.Visible {
		return
	}

	lines := t.Lines
	if len(lines) > tooltipMaxH {
		lines = lines[:tooltipMaxH]
	}
	w := len([]rune(t.Title))
	for _, l := range lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	if w > tooltipMaxW {
		w = tooltipMaxW
	}
	boxW := w + 4 // border + padding
	boxH := len(lines) + 3

	x := t.X + tooltipOffsetX
	y := t.Y + tooltipOffsetY
	if x+boxW > c.W {
		x = t.X - tooltipOffsetX - boxW
	}
	if y+boxH > c.H {
		y = t.Y - tooltipOffsetY - boxH
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	box := NewCanvas(boxW, boxH)
	box.Set(0, 0, '╭', &TooltipBorderStyle)
	box.HLine(1, 0, boxW-2, '─', &TooltipBorderStyle)
	box.Set(boxW-1, 0, '╮', &TooltipBorderStyle)
	for row := 1; row < boxH-1; row++ {
		box.Set(0, row, '│', &TooltipBorderStyle)
		box.HLine(1, row, boxW-2, ' ', &TooltipStyle)
		box.Set(boxW-1, row, '│', &TooltipBorderStyle)
	}
	box.Set(0, boxH-1, '╰', &TooltipBorderStyle)
	box.HLine(1, boxH-1, boxW-2, '─', &TooltipBorderStyle)
	box.Set(boxW-1, boxH-1, '╯', &TooltipBorderStyle)

	box.Text(2, 1, clip(t.Title, w), &TooltipTitleStyle)
	for i, l := range lines {
		box.Text(2, 2+i, clip(l, w), &TooltipStyle)
	}

	c.Overlay(x, y, box)
}

// clip truncates a string to n cells with an ellipsis.
func clip(s string, n int) string {
	rs := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(rs) <= n {
		return string(rs)
	}
	if n <= 1 {
		return "…"
	}
	return string(rs[:n-1]) + "…"
}
