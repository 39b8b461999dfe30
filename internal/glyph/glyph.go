// Package glyph assigns a small discrete shape to every tool group so
// that tools from the same group share a visual key across all views.
package glyph

import (
	"sort"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

// Shape is a closed set of glyph shapes. The palette wraps when a
// taxonomy has more groups than shapes, so two groups sharing a shape
// is an accepted trade-off, not an error.
type Shape int

const (
	Circle Shape = iota
	Cross
	Diamond
	Square
	Triangle
	Star
	Wye
	Plus
	Times

	numShapes
)

// PaletteSize is the number of distinct shapes before assignment wraps.
const PaletteSize = int(numShapes)

// Rune returns the terminal-cell rendering of the shape. The mapping is
// total over the enum; an out-of-range value falls back to Circle.
func (s Shape) Rune() rune {
	switch s {
	case Circle:
		return '●'
	case Cross:
		return '✚'
	case Diamond:
		return '◆'
	case Square:
		return '■'
	case Triangle:
		return '▲'
	case Star:
		return '★'
	case Wye:
		return 'ʏ'
	case Plus:
		return '＋'
	case Times:
		return '✕'
	}
	return '●'
}

// String returns the shape's name.
func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Cross:
		return "cross"
	case Diamond:
		return "diamond"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Star:
		return "star"
	case Wye:
		return "wye"
	case Plus:
		return "plus"
	case Times:
		return "times"
	}
	return "circle"
}

// Glyph is the resolved visual key for one tool.
type Glyph struct {
	Shape Shape
	Group string
}

// Assignment is an immutable group→shape and tool→group mapping built
// once per render. Identical taxonomies always produce identical
// assignments: sorted group-name order is the only assignment order.
type Assignment struct {
	groups     []string         // sorted group names
	groupShape map[string]Shape // group name → shape
	toolGroup  map[string]string
}

// Build derives the assignment for a taxonomy. Group names are sorted
// lexicographically and each group takes the shape at its rank modulo
// the palette size. A nil or empty taxonomy is valid.
func Build(tx model.Taxonomy) *Assignment {
	groups := make([]string, 0, len(tx))
	for g := range tx {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	a := &Assignment{
		groups:     groups,
		groupShape: make(map[string]Shape, len(groups)),
		toolGroup:  make(map[string]string),
	}
	for i, g := range groups {
		a.groupShape[g] = Shape(i % PaletteSize)
	}
	// First-listed group wins within one group's tool list; across
	// groups the sorted order makes the earliest group name win.
	for _, g := range groups {
		for _, tool := range tx[g] {
			if _, seen := a.toolGroup[tool]; !seen {
				a.toolGroup[tool] = g
			}
		}
	}
	return a
}

// Lookup resolves a tool name to its glyph. Tools absent from every
// group resolve to circle/"unknown" rather than failing.
func (a *Assignment) Lookup(tool string) Glyph {
	group, ok := a.toolGroup[tool]
	if !ok {
		return Glyph{Shape: Circle, Group: model.UnknownGroup}
	}
	return Glyph{Shape: a.groupShape[group], Group: group}
}

// Groups returns the sorted group names the assignment was built from.
func (a *Assignment) Groups() []string {
	return a.groups
}

// ShapeOf returns the shape assigned to a group, or Circle for groups
// the assignment has never seen (including "unknown").
func (a *Assignment) ShapeOf(group string) Shape {
	if s, ok := a.groupShape[group]; ok {
		return s
	}
	return Circle
}
