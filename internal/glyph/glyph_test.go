package glyph

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

func TestBuildDeterministic(t *testing.T) {
	tx := model.Taxonomy{
		"search": {"web_search", "grep"},
		"io":     {"read_file", "write_file"},
		"exec":   {"bash"},
	}

	a := Build(tx)
	b := Build(tx)

	for _, tool := range []string{"web_search", "grep", "read_file", "write_file", "bash", "missing"} {
		assert.Equal(t, a.Lookup(tool), b.Lookup(tool), "tool %s", tool)
	}
}

func TestBuildSortedGroupOrder(t *testing.T) {
	// Assignment rank comes from sorted group names, not insertion order.
	tx := model.Taxonomy{
		"zeta":  {"z"},
		"alpha": {"a"},
		"mid":   {"m"},
	}
	a := Build(tx)

	require.Equal(t, []string{"alpha", "mid", "zeta"}, a.Groups())
	assert.Equal(t, Circle, a.Lookup("a").Shape)
	assert.Equal(t, Cross, a.Lookup("m").Shape)
	assert.Equal(t, Diamond, a.Lookup("z").Shape)
}

func TestBuildPaletteWrap(t *testing.T) {
	tx := model.Taxonomy{}
	for i := 0; i < PaletteSize+2; i++ {
		tx[fmt.Sprintf("group%02d", i)] = []string{fmt.Sprintf("tool%02d", i)}
	}
	a := Build(tx)

	// Groups beyond the palette wrap around by modulo.
	assert.Equal(t, a.Lookup("tool00").Shape, a.Lookup(fmt.Sprintf("tool%02d", PaletteSize)).Shape)
	assert.Equal(t, a.Lookup("tool01").Shape, a.Lookup(fmt.Sprintf("tool%02d", PaletteSize+1)).Shape)
}

func TestLookupUnknownTool(t *testing.T) {
	a := Build(model.Taxonomy{"search": {"grep"}})

	g := a.Lookup("never_heard_of_it")
	assert.Equal(t, Circle, g.Shape)
	assert.Equal(t, model.UnknownGroup, g.Group)
}

func TestBuildEmptyTaxonomy(t *testing.T) {
	for _, tx := range []model.Taxonomy{nil, {}} {
		a := Build(tx)
		g := a.Lookup("anything")
		assert.Equal(t, Circle, g.Shape)
		assert.Equal(t, model.UnknownGroup, g.Group)
	}
}

func TestShapeMappingsTotal(t *testing.T) {
	seen := make(map[rune]bool)
	for s := Circle; s < Shape(PaletteSize); s++ {
		r := s.Rune()
		assert.NotEqual(t, rune(0), r)
		assert.False(t, seen[r], "shape %s reuses rune %q", s, r)
		seen[r] = true
		assert.NotEmpty(t, s.String())
	}
}

func TestToolInMultipleGroups(t *testing.T) {
	tx := model.Taxonomy{
		"beta":  {"shared"},
		"alpha": {"shared"},
	}
	a := Build(tx)

	// The lexicographically earliest group wins.
	assert.Equal(t, "alpha", a.Lookup("shared").Group)
	assert.Equal(t, "alpha", tx.GroupOf("shared"))
}
