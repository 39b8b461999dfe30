// Package scale derives coordinate scales from extracted trace models.
// Band scales place categorical domains (tool names, trace ids) into
// equal-size bands; the linear scale maps values to pixel lengths with
// the domain always extended to include zero so signed values share a
// baseline.
package scale

import "math"

// Band maps a categorical domain of n entries onto [rangeMin, rangeMax)
// as equal-width bands separated by a fixed padding fraction.
type Band struct {
	n        int
	rangeMin float64
	rangeMax float64
	padding  float64

	step float64
	band float64
}

// NewBand builds a band scale. Padding is the fraction of each step
// reserved as gap, clamped to [0, 0.9].
func NewBand(n int, rangeMin, rangeMax, padding float64) Band {
	if padding < 0 {
		padding = 0
	}
	if padding > 0.9 {
		padding = 0.9
	}
	b := Band{n: n, rangeMin: rangeMin, rangeMax: rangeMax, padding: padding}
	if n > 0 {
		b.step = (rangeMax - rangeMin) / float64(n)
		b.band = b.step * (1 - padding)
	}
	return b
}

// Pos returns the leading edge of band i.
func (b Band) Pos(i int) float64 {
	return b.rangeMin + float64(i)*b.step + b.step*b.padding/2
}

// Center returns the midpoint of band i.
func (b Band) Center(i int) float64 {
	return b.Pos(i) + b.band/2
}

// Bandwidth returns the width of one band.
func (b Band) Bandwidth() float64 {
	return b.band
}

// Step returns the distance between consecutive band starts.
func (b Band) Step() float64 {
	return b.step
}

// Len returns the domain size.
func (b Band) Len() int {
	return b.n
}

// Invert hit-tests a position against the scale's own band boundaries.
// It returns the index of the band numerically containing pos, or
// ok=false when pos falls outside the plotted range or in a gap at the
// range edges.
func (b Band) Invert(pos float64) (int, bool) {
	if b.n == 0 || b.step <= 0 {
		return 0, false
	}
	if pos < b.rangeMin || pos >= b.rangeMax {
		return 0, false
	}
	i := int((pos - b.rangeMin) / b.step)
	if i < 0 || i >= b.n {
		return 0, false
	}
	return i, true
}

// Linear maps a value domain onto a pixel range. The domain is extended
// to include zero at construction.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
}

// NewLinear builds a linear scale over [dMin, dMax] extended to include
// zero. A degenerate domain maps everything to r0.
func NewLinear(dMin, dMax, r0, r1 float64) Linear {
	dMin = math.Min(dMin, 0)
	dMax = math.Max(dMax, 0)
	return Linear{d0: dMin, d1: dMax, r0: r0, r1: r1}
}

// Map converts a domain value to range coordinates.
func (l Linear) Map(v float64) float64 {
	if l.d1 == l.d0 {
		return l.r0
	}
	t := (v - l.d0) / (l.d1 - l.d0)
	return l.r0 + t*(l.r1-l.r0)
}

// Domain returns the zero-extended domain bounds.
func (l Linear) Domain() (float64, float64) {
	return l.d0, l.d1
}
