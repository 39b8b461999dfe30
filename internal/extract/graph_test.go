package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

func seqTrace(names ...string) model.TraceRecord {
	tr := model.TraceRecord{ID: "t"}
	for i, name := range names {
		tr.Outputs = append(tr.Outputs, callOutput(model.ToolCallRequest{
			ID:   string(rune('a' + i)),
			Name: name,
		}))
	}
	return tr
}

func TestBuildOrderGraphPath(t *testing.T) {
	tr := seqTrace("search", "read", "write")
	g := BuildOrderGraph(&tr)

	// One node per distinct call id, edges forming a single path.
	require.Len(t, g.Nodes, 3)
	require.Len(t, g.Edges, 2)
	for i, n := range g.Nodes {
		assert.Equal(t, i, n.Index)
	}
	assert.Equal(t, "search", g.Nodes[0].Record.Name)
	assert.Equal(t, "write", g.Nodes[2].Record.Name)
	for i, e := range g.Edges {
		assert.Equal(t, i, e.Source)
		assert.Equal(t, i+1, e.Target)
		assert.Equal(t, 1, e.Weight)
	}
}

func TestBuildOrderGraphFirstOccurrenceWins(t *testing.T) {
	tr := model.TraceRecord{ID: "t", Outputs: []model.Output{
		callOutput(model.ToolCallRequest{ID: "1", Name: "search"}),
		callOutput(model.ToolCallRequest{ID: "2", Name: "read"}),
		callOutput(model.ToolCallRequest{ID: "1", Name: "search"}),
	}}
	g := BuildOrderGraph(&tr)

	require.Len(t, g.Nodes, 2)
	assert.Equal(t, "search", g.Nodes[0].Record.Name)
	assert.Equal(t, "read", g.Nodes[1].Record.Name)
}

func TestBuildOrderGraphEmptyTrace(t *testing.T) {
	tr := model.TraceRecord{ID: "t"}
	g := BuildOrderGraph(&tr)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Edges)
}

func TestBuildOrderGraphResultPatching(t *testing.T) {
	tr := model.TraceRecord{ID: "t", Outputs: []model.Output{
		callOutput(model.ToolCallRequest{ID: "1", Name: "search"}),
		resultOutput("1", "error", "timeout"),
		resultOutput("nope", "ok", nil),
	}}
	g := BuildOrderGraph(&tr)

	require.Len(t, g.Nodes, 1)
	assert.Equal(t, "error", g.Nodes[0].Record.Status)
	assert.Equal(t, 1, g.Dropped)
}

func TestBuildFlowGraphCounts(t *testing.T) {
	// Sequence [A, B, A, B, C]: nodes A:2 B:2 C:1, edges A→B ×2,
	// B→A ×1, B→C ×1.
	tr := seqTrace("A", "B", "A", "B", "C")
	g := BuildFlowGraph(&tr)

	require.Len(t, g.Nodes, 3)
	assert.Equal(t, FlowNode{Name: "A", Count: 2}, g.Nodes[0])
	assert.Equal(t, FlowNode{Name: "B", Count: 2}, g.Nodes[1])
	assert.Equal(t, FlowNode{Name: "C", Count: 1}, g.Nodes[2])

	require.Len(t, g.Edges, 3)
	assert.Equal(t, FlowEdge{Source: "A", Target: "B", Weight: 2}, g.Edges[0])
	assert.Equal(t, FlowEdge{Source: "B", Target: "A", Weight: 1}, g.Edges[1])
	assert.Equal(t, FlowEdge{Source: "B", Target: "C", Weight: 1}, g.Edges[2])

	assert.Equal(t, []string{"A", "B", "A", "B", "C"}, g.CallSequence)
	assert.Equal(t, 2, g.MaxWeight())
}

func TestBuildFlowGraphWeightSum(t *testing.T) {
	cases := [][]string{
		{},
		{"A"},
		{"A", "A", "A"},
		{"A", "B", "C", "A", "B"},
	}
	for _, names := range cases {
		tr := seqTrace(names...)
		g := BuildFlowGraph(&tr)

		sum := 0
		for _, e := range g.Edges {
			sum += e.Weight
		}
		want := len(names) - 1
		if want < 0 {
			want = 0
		}
		assert.Equal(t, want, sum, "sequence %v", names)
	}
}

func TestBuildFlowGraphDuplicateIDMerges(t *testing.T) {
	tr := model.TraceRecord{ID: "t", Outputs: []model.Output{
		callOutput(model.ToolCallRequest{ID: "1", Name: "A"}),
		callOutput(model.ToolCallRequest{ID: "1", Name: "A"}),
		callOutput(model.ToolCallRequest{ID: "2", Name: "B"}),
	}}
	g := BuildFlowGraph(&tr)

	// A re-seen id keeps its first sequence position and is never
	// counted twice.
	assert.Equal(t, []string{"A", "B"}, g.CallSequence)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, 1, g.Nodes[0].Count)
}

func TestBuildFlowGraphDuplicateIDLatestNameWins(t *testing.T) {
	// Same merge policy as the matrix and order graph: first sighting
	// fixes the position, the latest request's name replaces the old
	// one, and counts follow the final sequence.
	tr := model.TraceRecord{ID: "t", Outputs: []model.Output{
		callOutput(model.ToolCallRequest{ID: "1", Name: "search"}),
		callOutput(model.ToolCallRequest{ID: "2", Name: "read"}),
		callOutput(model.ToolCallRequest{ID: "1", Name: "grep"}),
	}}
	g := BuildFlowGraph(&tr)

	assert.Equal(t, []string{"grep", "read"}, g.CallSequence)
	require.Len(t, g.Nodes, 2)
	assert.Equal(t, FlowNode{Name: "grep", Count: 1}, g.Nodes[0])
	assert.Equal(t, FlowNode{Name: "read", Count: 1}, g.Nodes[1])
	require.Len(t, g.Edges, 1)
	assert.Equal(t, FlowEdge{Source: "grep", Target: "read", Weight: 1}, g.Edges[0])
}
