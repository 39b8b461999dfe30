// Package extract turns trace records into the typed structures the
// views render: the tool×run intersection matrix, the per-instance
// order graph, and the deduplicated flow graph. All three are pure
// single-pass extractions; none mutate their input, and every render
// rebuilds from scratch.
package extract

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

// TraceCalls is the canonical per-trace view: the id→record mapping of
// every tool call whose request has been seen, plus the run's score.
type TraceCalls struct {
	ToolCalls map[string]*model.ToolCallRecord
	Order     []string // call ids in first-seen order
	Score     *float64
}

// Matrix is the tool × run presence structure behind the UpSet view.
// Tools keeps first-seen order across all traces so that the bar chart,
// matrix and highlight overlays agree on column order within a render.
type Matrix struct {
	Tools    []string
	TraceIDs []string
	PerTrace map[string]*TraceCalls

	// Dropped counts outputs that were skipped: unrecognized shapes
	// plus results with no matching request.
	Dropped int
}

// Active reports whether a trace has at least one call of the tool, and
// returns the first matching record for tooltip content.
func (m *Matrix) Active(traceID, tool string) (*model.ToolCallRecord, bool) {
	tc, ok := m.PerTrace[traceID]
	if !ok {
		return nil, false
	}
	for _, id := range tc.Order {
		if rec := tc.ToolCalls[id]; rec.Name == tool {
			return rec, true
		}
	}
	return nil, false
}

// ToolUsage returns, per tool in column order, the number of traces the
// tool is active in. This feeds the importance bar chart.
func (m *Matrix) ToolUsage() []int {
	counts := make([]int, len(m.Tools))
	for i, tool := range m.Tools {
		for _, id := range m.TraceIDs {
			if _, ok := m.Active(id, tool); ok {
				counts[i]++
			}
		}
	}
	return counts
}

// ToolCombo is one distinct set of tools used together in a run, with
// the number of runs that used exactly that set. Tools keep matrix
// column order.
type ToolCombo struct {
	Tools []string
	Count int
}

// Label renders the combo for display, with a placeholder for runs that
// called no tools at all.
func (c ToolCombo) Label() string {
	if len(c.Tools) == 0 {
		return "(none)"
	}
	return strings.Join(c.Tools, "+")
}

// Combos aggregates the distinct per-run tool sets with their
// frequencies, ordered by descending count; ties keep first-seen run
// order. A run with no calls counts as the empty combination.
func (m *Matrix) Combos() []ToolCombo {
	var combos []ToolCombo
	idx := make(map[string]int)
	for _, id := range m.TraceIDs {
		var tools []string
		for _, tool := range m.Tools {
			if _, ok := m.Active(id, tool); ok {
				tools = append(tools, tool)
			}
		}
		key := strings.Join(tools, "\x00")
		if i, ok := idx[key]; ok {
			combos[i].Count++
			continue
		}
		idx[key] = len(combos)
		combos = append(combos, ToolCombo{Tools: tools, Count: 1})
	}
	sort.SliceStable(combos, func(i, j int) bool {
		return combos[i].Count > combos[j].Count
	})
	return combos
}

// BuildMatrix walks every trace once, in input order, correlating tool
// results back to their requests by call id. A result whose id has no
// prior request is dropped; an output matching neither variant is
// logged and skipped. Neither aborts extraction.
func BuildMatrix(traces []model.TraceRecord) *Matrix {
	m := &Matrix{
		PerTrace: make(map[string]*TraceCalls, len(traces)),
	}
	seenTool := make(map[string]bool)

	for ti := range traces {
		tr := &traces[ti]
		tc := &TraceCalls{
			ToolCalls: make(map[string]*model.ToolCallRecord),
			Score:     tr.Score,
		}
		for _, out := range tr.Outputs {
			switch out.Kind() {
			case model.OutputKindToolCall:
				for _, req := range out.ToolCalls {
					mergeRequest(tc, req)
					if !seenTool[req.Name] {
						seenTool[req.Name] = true
						m.Tools = append(m.Tools, req.Name)
					}
				}
			case model.OutputKindToolResult:
				rec, ok := tc.ToolCalls[out.ToolCallID]
				if !ok {
					// Dangling result: documented lenient-parse policy.
					m.Dropped++
					slog.Warn("dropping tool result with no matching request",
						"trace", tr.ID, "tool_call_id", out.ToolCallID)
					continue
				}
				rec.Status = out.Status
				rec.Content = out.Content
			default:
				m.Dropped++
				slog.Warn("skipping unrecognized output entry", "trace", tr.ID)
			}
		}
		m.TraceIDs = append(m.TraceIDs, tr.ID)
		m.PerTrace[tr.ID] = tc
	}
	return m
}

// mergeRequest creates or updates the record for a call id. The first
// occurrence fixes the id's position in the trace's call order.
func mergeRequest(tc *TraceCalls, req model.ToolCallRequest) {
	if rec, ok := tc.ToolCalls[req.ID]; ok {
		rec.Name = req.Name
		rec.Args = req.Args
		return
	}
	tc.ToolCalls[req.ID] = &model.ToolCallRecord{
		ID:   req.ID,
		Name: req.Name,
		Args: req.Args,
	}
	tc.Order = append(tc.Order, req.ID)
}
