// Package trace loads agent traces from JSONL or JSON-array files and
// normalizes the assorted shapes trace emitters produce into the
// model.TraceRecord the extraction layer consumes. Loading is lenient:
// a line that fails to decode is logged and skipped, never fatal.
package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/EdenWuyifan/AgentProfiler/internal/model"
)

// Keys that carry tool-call lists in the wild; everything else on a
// trace (besides id/score/outputs) is preserved as metadata.
var callListKeys = []string{"tool_calls", "toolCalls", "calls", "steps"}

var reservedKeys = map[string]bool{
	"id": true, "trace_id": true, "score": true, "outputs": true,
	"tool_calls": true, "toolCalls": true, "calls": true, "steps": true,
}

// LoadFile reads traces from a file holding either one JSON object per
// line or a single JSON array of trace objects.
func LoadFile(path string) ([]model.TraceRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading traces: %w", err)
	}
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var raws []map[string]any
		if err := json.Unmarshal([]byte(trimmed), &raws); err != nil {
			return nil, fmt.Errorf("decoding trace array: %w", err)
		}
		return Normalize(raws), nil
	}

	var raws []map[string]any
	scanner := bufio.NewScanner(strings.NewReader(trimmed))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var raw map[string]any
		if err := json.Unmarshal([]byte(line), &raw); err != nil {
			slog.Warn("skipping undecodable trace line", "line", lineNo, "err", err)
			continue
		}
		raws = append(raws, raw)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning traces: %w", err)
	}
	return Normalize(raws), nil
}

// Normalize converts raw JSON-shaped trace objects into TraceRecords,
// backfilling missing ids by insertion order and preserving unknown
// top-level keys as metadata. The input maps are not mutated.
func Normalize(raws []map[string]any) []model.TraceRecord {
	traces := make([]model.TraceRecord, 0, len(raws))
	for i, raw := range raws {
		traces = append(traces, normalizeOne(raw, i))
	}
	return traces
}

func normalizeOne(raw map[string]any, pos int) model.TraceRecord {
	tr := model.TraceRecord{Raw: raw}

	if id, ok := stringValue(raw["id"]); ok {
		tr.ID = id
	} else if id, ok := stringValue(raw["trace_id"]); ok {
		tr.ID = id
	} else {
		tr.ID = fmt.Sprintf("trace-%d", pos)
	}

	if f, ok := numberValue(raw["score"]); ok {
		tr.Score = &f
	}

	if outs, ok := raw["outputs"].([]any); ok {
		tr.Outputs = normalizeOutputs(outs)
	} else {
		// Flat call-list shapes: a bare list of tool names or call
		// objects becomes a single synthetic tool-call output.
		tr.Outputs = outputsFromCallLists(raw, tr.ID)
	}

	for k, v := range raw {
		if reservedKeys[k] {
			continue
		}
		if tr.Meta == nil {
			tr.Meta = make(map[string]any)
		}
		tr.Meta[k] = v
	}
	return tr
}

func normalizeOutputs(outs []any) []model.Output {
	outputs := make([]model.Output, 0, len(outs))
	for _, o := range outs {
		obj, ok := o.(map[string]any)
		if !ok {
			// Keep the entry so extraction counts and logs the drop.
			outputs = append(outputs, model.Output{})
			continue
		}
		var out model.Output
		if calls, ok := obj["tool_calls"].([]any); ok {
			for ci, c := range calls {
				if req, ok := normalizeRequest(c, ci); ok {
					out.ToolCalls = append(out.ToolCalls, req)
				}
			}
		}
		if id, ok := stringValue(obj["tool_call_id"]); ok {
			out.ToolCallID = id
		}
		if st, ok := stringValue(obj["status"]); ok {
			out.Status = st
		}
		if c, ok := obj["content"]; ok {
			out.Content = c
		}
		outputs = append(outputs, out)
	}
	return outputs
}

func outputsFromCallLists(raw map[string]any, traceID string) []model.Output {
	var out model.Output
	n := 0
	for _, key := range callListKeys {
		calls, ok := raw[key].([]any)
		if !ok {
			continue
		}
		for _, c := range calls {
			if req, ok := normalizeRequest(c, n); ok {
				out.ToolCalls = append(out.ToolCalls, req)
				n++
			} else {
				slog.Warn("skipping unrecognized call entry", "trace", traceID, "key", key)
			}
		}
	}
	if len(out.ToolCalls) == 0 {
		return nil
	}
	return []model.Output{out}
}

// normalizeRequest accepts either a bare tool-name string or a call
// object under any of the common name keys.
func normalizeRequest(c any, pos int) (model.ToolCallRequest, bool) {
	switch call := c.(type) {
	case string:
		if call == "" {
			return model.ToolCallRequest{}, false
		}
		return model.ToolCallRequest{ID: fmt.Sprintf("call-%d", pos), Name: call}, true
	case map[string]any:
		name := callName(call)
		if name == "" {
			return model.ToolCallRequest{}, false
		}
		req := model.ToolCallRequest{Name: name}
		if id, ok := stringValue(call["id"]); ok {
			req.ID = id
		} else {
			req.ID = fmt.Sprintf("call-%d", pos)
		}
		for _, key := range []string{"args", "arguments", "input"} {
			if args, ok := call[key].(map[string]any); ok {
				req.Args = args
				break
			}
		}
		return req, true
	}
	return model.ToolCallRequest{}, false
}

func callName(call map[string]any) string {
	for _, key := range []string{"name", "tool", "tool_name", "toolName", "function", "type"} {
		switch v := call[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			if name, ok := stringValue(v["name"]); ok {
				return name
			}
		}
	}
	return ""
}

func stringValue(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok && s != ""
}

func numberValue(v any) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
