package extract

import (
	"log/slog"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

// OrderNode is one tool-call instance in a run, positioned by the index
// of its first appearance.
type OrderNode struct {
	Index  int
	Record *model.ToolCallRecord
}

// OrderEdge links consecutive call instances. Weight is always 1.
type OrderEdge struct {
	Source int
	Target int
	Weight int
}

// OrderGraph is the per-instance sequential graph of one run: a simple
// path through every distinct call id in first-seen order.
type OrderGraph struct {
	Nodes   []OrderNode
	Edges   []OrderEdge
	Dropped int
}

// BuildOrderGraph extracts the order graph from one trace in a single
// pass. A call id re-seen later keeps its first index; an empty trace
// yields empty nodes and edges, never an error.
func BuildOrderGraph(trace *model.TraceRecord) *OrderGraph {
	g := &OrderGraph{}
	records := make(map[string]*model.ToolCallRecord)
	indexOf := make(map[string]int)

	for _, out := range trace.Outputs {
		switch out.Kind() {
		case model.OutputKindToolCall:
			for _, req := range out.ToolCalls {
				if _, seen := indexOf[req.ID]; seen {
					records[req.ID].Name = req.Name
					records[req.ID].Args = req.Args
					continue
				}
				rec := &model.ToolCallRecord{ID: req.ID, Name: req.Name, Args: req.Args}
				indexOf[req.ID] = len(g.Nodes)
				records[req.ID] = rec
				g.Nodes = append(g.Nodes, OrderNode{Index: len(g.Nodes), Record: rec})
			}
		case model.OutputKindToolResult:
			rec, ok := records[out.ToolCallID]
			if !ok {
				g.Dropped++
				slog.Warn("dropping tool result with no matching request",
					"trace", trace.ID, "tool_call_id", out.ToolCallID)
				continue
			}
			rec.Status = out.Status
			rec.Content = out.Content
		default:
			g.Dropped++
			slog.Warn("skipping unrecognized output entry", "trace", trace.ID)
		}
	}

	for i := 1; i < len(g.Nodes); i++ {
		g.Edges = append(g.Edges, OrderEdge{Source: i - 1, Target: i, Weight: 1})
	}
	return g
}

// FlowNode is one unique tool name with its occurrence count.
type FlowNode struct {
	Name  string
	Count int
}

// FlowEdge is one unique (source, target) consecutive transition with
// the number of times it occurred. Two A→B transitions at different
// points in the sequence collapse into one edge of weight 2.
type FlowEdge struct {
	Source string
	Target string
	Weight int
}

// FlowGraph is the deduplicated, frequency-weighted transition graph of
// one run. CallSequence retains the full first-seen call-name order for
// the linear timeline strip.
type FlowGraph struct {
	Nodes        []FlowNode
	Edges        []FlowEdge
	CallSequence []string
	Dropped      int
}

// MaxWeight returns the largest edge weight, or 0 for an edgeless graph.
func (g *FlowGraph) MaxWeight() int {
	max := 0
	for _, e := range g.Edges {
		if e.Weight > max {
			max = e.Weight
		}
	}
	return max
}

// BuildFlowGraph extracts the flow graph from one trace: the same
// single pass as the order graph, but keyed by tool name rather than
// call id. Node order is first appearance of each name. Duplicate call
// ids follow the same merge policy as the other extractors: the first
// sighting fixes the sequence position, the latest name wins.
func BuildFlowGraph(trace *model.TraceRecord) *FlowGraph {
	g := &FlowGraph{}
	idPos := make(map[string]int)

	for _, out := range trace.Outputs {
		switch out.Kind() {
		case model.OutputKindToolCall:
			for _, req := range out.ToolCalls {
				if pos, seen := idPos[req.ID]; seen {
					g.CallSequence[pos] = req.Name
					continue
				}
				idPos[req.ID] = len(g.CallSequence)
				g.CallSequence = append(g.CallSequence, req.Name)
			}
		case model.OutputKindToolResult:
			if _, ok := idPos[out.ToolCallID]; !ok {
				g.Dropped++
				slog.Warn("dropping tool result with no matching request",
					"trace", trace.ID, "tool_call_id", out.ToolCallID)
			}
		default:
			g.Dropped++
			slog.Warn("skipping unrecognized output entry", "trace", trace.ID)
		}
	}

	// Nodes and edges derive from the final sequence, so a merged name
	// never leaves a stale count behind.
	nodeIdx := make(map[string]int, len(g.CallSequence))
	for _, name := range g.CallSequence {
		if i, ok := nodeIdx[name]; ok {
			g.Nodes[i].Count++
			continue
		}
		nodeIdx[name] = len(g.Nodes)
		g.Nodes = append(g.Nodes, FlowNode{Name: name, Count: 1})
	}

	edgeIdx := make(map[[2]string]int)
	for i := 1; i < len(g.CallSequence); i++ {
		key := [2]string{g.CallSequence[i-1], g.CallSequence[i]}
		if j, ok := edgeIdx[key]; ok {
			g.Edges[j].Weight++
			continue
		}
		edgeIdx[key] = len(g.Edges)
		g.Edges = append(g.Edges, FlowEdge{Source: key[0], Target: key[1], Weight: 1})
	}
	return g
}
