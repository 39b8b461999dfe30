package model

import "encoding/json"

// OutputKind classifies a single output entry in a trace
type OutputKind string

const (
	OutputKindToolCall   OutputKind = "tool_call"
	OutputKindToolResult OutputKind = "tool_result"
	OutputKindUnknown    OutputKind = "unknown"
)

// TraceRecord is one recorded agent run: an ordered sequence of outputs
// plus an optional score. The record is owned by the host; the library
// only backfills a missing ID or Score during normalization.
type TraceRecord struct {
	ID      string         `json:"id"`
	Score   *float64       `json:"score,omitempty"`
	Outputs []Output       `json:"outputs"`
	Meta    map[string]any `json:"metadata,omitempty"`
	Raw     map[string]any `json:"-"`
}

// ScoreValue returns the trace score, or 0 when absent.
func (t *TraceRecord) ScoreValue() float64 {
	if t.Score == nil {
		return 0
	}
	return *t.Score
}

// HasScore reports whether the trace carries an explicit score.
func (t *TraceRecord) HasScore() bool {
	return t.Score != nil
}

// Output is one entry in a trace's output sequence. Exactly one of the
// variant fields is meaningful; Kind() decides which.
type Output struct {
	// Tool call variant: one or more requests emitted together.
	ToolCalls []ToolCallRequest `json:"tool_calls,omitempty"`

	// Tool result variant: correlates back to a request by id.
	ToolCallID string `json:"tool_call_id,omitempty"`
	Status     string `json:"status,omitempty"`
	Content    any    `json:"content,omitempty"`
}

// Kind classifies the output. Entries matching neither variant are
// OutputKindUnknown; extraction logs and skips them.
func (o Output) Kind() OutputKind {
	switch {
	case len(o.ToolCalls) > 0:
		return OutputKindToolCall
	case o.ToolCallID != "":
		return OutputKindToolResult
	default:
		return OutputKindUnknown
	}
}

// ToolCallRequest is a single invocation of a named tool. The ID is
// unique within one trace and is used only for result correlation.
type ToolCallRequest struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolCallRecord merges a request with its (optional) result.
type ToolCallRecord struct {
	ID      string         `json:"id"`
	Name    string         `json:"name"`
	Args    map[string]any `json:"args,omitempty"`
	Status  string         `json:"status,omitempty"`
	Content any            `json:"content,omitempty"`
}

// ArgsJSON pretty-prints the call arguments for display. Returns the
// placeholder when args are absent or fail to serialize.
func (r *ToolCallRecord) ArgsJSON(placeholder string) string {
	if len(r.Args) == 0 {
		return placeholder
	}
	b, err := json.MarshalIndent(r.Args, "", "  ")
	if err != nil {
		return placeholder
	}
	return string(b)
}

// Taxonomy maps a group name to the set of tool names it contains.
// An empty taxonomy is valid: every tool then falls into "unknown".
type Taxonomy map[string][]string

// GroupOf returns the group containing the tool, or "unknown".
// When a tool appears in several groups the lexicographically smallest
// group name wins, so the answer never depends on map iteration order.
func (tx Taxonomy) GroupOf(tool string) string {
	best := ""
	for group, tools := range tx {
		for _, t := range tools {
			if t == tool && (best == "" || group < best) {
				best = group
			}
		}
	}
	if best == "" {
		return UnknownGroup
	}
	return best
}

// UnknownGroup is the synthetic group for tools absent from the taxonomy.
const UnknownGroup = "unknown"
