package tui

import "github.com/EdenWuyifan/AgentProfiler/internal/model"

// Margin is the blank frame around a plot, in cells.
type Margin struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Options tunes a render. The zero value means "use the defaults":
// width/height fall back to the terminal size, margins to
// DefaultMargin, and no selection callback is invoked.
type Options struct {
	// Width and Height override the computed canvas size when > 0.
	Width  int
	Height int

	Margin *Margin

	// OnRowSelect is called with the original input record when a
	// matrix row is clicked. Nil disables selection.
	OnRowSelect func(trace *model.TraceRecord)
}

// DefaultWidth is used when neither the caller nor the terminal
// supplies a width.
const DefaultWidth = 80

// DefaultMargin returns the standard plot margins.
func DefaultMargin() Margin {
	return Margin{Top: 1, Right: 2, Bottom: 1, Left: 2}
}

// margin resolves the effective margin.
func (o Options) margin() Margin {
	if o.Margin != nil {
		return *o.Margin
	}
	return DefaultMargin()
}
