package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandPositions(t *testing.T) {
	b := NewBand(4, 0, 40, 0)

	assert.Equal(t, 10.0, b.Step())
	assert.Equal(t, 10.0, b.Bandwidth())
	assert.Equal(t, 0.0, b.Pos(0))
	assert.Equal(t, 10.0, b.Pos(1))
	assert.Equal(t, 5.0, b.Center(0))
}

func TestBandPadding(t *testing.T) {
	b := NewBand(2, 0, 20, 0.2)

	assert.Equal(t, 10.0, b.Step())
	assert.Equal(t, 8.0, b.Bandwidth())
	assert.Equal(t, 1.0, b.Pos(0))
	assert.Equal(t, 11.0, b.Pos(1))
}

func TestBandInvert(t *testing.T) {
	b := NewBand(3, 10, 40, 0.1)

	tests := []struct {
		pos    float64
		want   int
		wantOK bool
	}{
		{9.9, 0, false},  // left of range
		{10, 0, true},    // first band start
		{19.9, 0, true},  // last cell of first step
		{20, 1, true},    // second step
		{39.9, 2, true},  // end of last step
		{40, 0, false},   // right of range
		{100, 0, false},  // far outside
		{-100, 0, false}, // far outside
	}
	for _, tt := range tests {
		got, ok := b.Invert(tt.pos)
		assert.Equal(t, tt.wantOK, ok, "pos %v", tt.pos)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "pos %v", tt.pos)
		}
	}
}

func TestBandEmptyDomain(t *testing.T) {
	b := NewBand(0, 0, 10, 0.1)
	_, ok := b.Invert(5)
	assert.False(t, ok)
	assert.Equal(t, 0, b.Len())
}

func TestLinearZeroExtension(t *testing.T) {
	// A positive-only domain is extended down to zero.
	l := NewLinear(5, 10, 0, 100)
	d0, d1 := l.Domain()
	assert.Equal(t, 0.0, d0)
	assert.Equal(t, 10.0, d1)
	assert.Equal(t, 0.0, l.Map(0))
	assert.Equal(t, 100.0, l.Map(10))
	assert.Equal(t, 50.0, l.Map(5))

	// A negative-only domain is extended up to zero.
	l = NewLinear(-4, -2, 0, 8)
	d0, d1 = l.Domain()
	assert.Equal(t, -4.0, d0)
	assert.Equal(t, 0.0, d1)
	assert.Equal(t, 8.0, l.Map(0))
	assert.Equal(t, 0.0, l.Map(-4))
}

func TestLinearDegenerateDomain(t *testing.T) {
	l := NewLinear(0, 0, 3, 9)
	assert.Equal(t, 3.0, l.Map(0))
	assert.Equal(t, 3.0, l.Map(42))
}

func TestLinearSignedDomainSharesBaseline(t *testing.T) {
	l := NewLinear(-10, 10, 0, 20)
	assert.Equal(t, 10.0, l.Map(0))
	assert.Equal(t, 0.0, l.Map(-10))
	assert.Equal(t, 20.0, l.Map(10))
}
