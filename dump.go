package promptview

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/promptview/promptview/schema"
)

// blockType is the serialized discriminator for block dicts.
const blockType = "Block"

// Dump recursively converts the tree into a JSON-compatible map:
//
//	{
//	  "_type": "Block",
//	  "content": [chunk values...],
//	  "tags": [...], "style": [...],
//	  "attrs": [{"key": ..., "value": ...}, ...],
//	  "children": [...],
//	  "role": "...", "id": "...", "run_id": "...", "model": "...",
//	  "tool_calls": [...], "usage": {...}
//	}
//
// Content chunks serialize as their primitive value, or as a
// {"value", "logprob", "event"} map when they carry streaming metadata.
// [Load] is the exact inverse; round-tripping preserves Render output,
// tags, and inline styles at every node.
func (b *Block) Dump() map[string]any {
	content := make([]any, 0, b.content.Len())
	for _, c := range b.content.Chunks() {
		content = append(content, dumpChunk(c))
	}

	children := make([]any, 0, len(b.children))
	for _, c := range b.children {
		children = append(children, c.Dump())
	}

	// Attrs dump as an ordered key/value array: XML rendering follows the
	// authored attribute order, so a plain map would not round-trip it.
	attrs := make([]any, 0, len(b.attrOrder))
	for _, k := range b.attrOrder {
		v := b.attrs[k]
		if a, ok := v.(*schema.Attr); ok {
			v = a.Dump()
		}
		attrs = append(attrs, map[string]any{"key": k, "value": v})
	}

	out := map[string]any{
		"_type":    blockType,
		"content":  content,
		"tags":     append([]string{}, b.tags...),
		"style":    append([]string{}, b.styles...),
		"attrs":    attrs,
		"children": children,
		"role":     string(b.role),
		"id":       b.id,
		"run_id":   b.runID,
		"model":    b.model,
	}

	if len(b.toolCalls) > 0 {
		calls := make([]any, 0, len(b.toolCalls))
		for _, tc := range b.toolCalls {
			calls = append(calls, map[string]any{
				"id":   tc.ID,
				"name": tc.Name,
				"args": tc.Args,
			})
		}
		out["tool_calls"] = calls
	}
	if b.usage != nil {
		out["usage"] = map[string]any{
			"input_tokens":  b.usage.InputTokens,
			"output_tokens": b.usage.OutputTokens,
			"total_tokens":  b.usage.TotalTokens,
		}
	}
	return out
}

// MarshalJSON serializes the tree through Dump.
func (b *Block) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Dump())
}

func dumpChunk(c *BlockChunk) any {
	if c.logprob == 0 && c.event == "" && c.metadata == nil {
		return c.content.Native()
	}
	out := map[string]any{
		"value":   c.content.Native(),
		"logprob": c.logprob,
	}
	if c.event != "" {
		out["event"] = c.event
	}
	if c.metadata != nil {
		out["metadata"] = c.metadata
	}
	return out
}

// Load restores a block tree from its dumped form. Input missing the
// "_type" discriminator, or carrying a mismatched one, is rejected with a
// *ValidationError. Children are accepted under either "children" or the
// legacy "items" key.
func Load(data map[string]any) (*Block, error) {
	typ, ok := data["_type"].(string)
	if !ok {
		return nil, &ValidationError{Field: "_type", Msg: "missing discriminator, not a valid block"}
	}
	if typ != blockType {
		return nil, &ValidationError{Field: "_type", Msg: fmt.Sprintf("expected %q, got %q", blockType, typ)}
	}

	b := NewBlock()
	if err := loadContent(b, data["content"]); err != nil {
		return nil, err
	}
	b.tags = toStrings(data["tags"])
	b.styles = toStrings(data["style"])
	if role, ok := data["role"].(string); ok {
		b.role = Role(role)
	}
	if id, ok := data["id"].(string); ok {
		b.id = id
	}
	if runID, ok := data["run_id"].(string); ok {
		b.runID = runID
	}
	if model, ok := data["model"].(string); ok {
		b.model = model
	}

	if err := loadAttrs(b, data["attrs"]); err != nil {
		return nil, err
	}

	if calls, ok := data["tool_calls"].([]any); ok {
		for _, raw := range calls {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, &ValidationError{Field: "tool_calls", Msg: "tool call must be an object"}
			}
			tc := ToolCall{}
			tc.ID, _ = m["id"].(string)
			tc.Name, _ = m["name"].(string)
			tc.Args, _ = m["args"].(map[string]any)
			b.toolCalls = append(b.toolCalls, tc)
		}
	}
	if u, ok := data["usage"].(map[string]any); ok {
		b.usage = &Usage{
			InputTokens:  toInt(u["input_tokens"]),
			OutputTokens: toInt(u["output_tokens"]),
			TotalTokens:  toInt(u["total_tokens"]),
		}
	}

	childrenRaw, ok := data["children"]
	if !ok {
		childrenRaw = data["items"]
	}
	if children, ok := childrenRaw.([]any); ok {
		for _, raw := range children {
			m, ok := raw.(map[string]any)
			if !ok {
				return nil, &ValidationError{Field: "children", Msg: "child must be a block object"}
			}
			child, err := Load(m)
			if err != nil {
				return nil, err
			}
			b.AddChild(child)
		}
	}
	return b, nil
}

// LoadJSON restores a block tree from its JSON serialization.
func LoadJSON(data []byte) (*Block, error) {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ValidationError{Msg: err.Error()}
	}
	return Load(m)
}

// loadAttrs restores attributes. The ordered key/value array form preserves
// the authored attribute order; the legacy map form is restored in sorted
// key order.
func loadAttrs(b *Block, raw any) error {
	setAttr := func(key string, v any) error {
		if m, ok := v.(map[string]any); ok && m["_type"] == schema.AttrType {
			attr, err := schema.AttrFromDump(m)
			if err != nil {
				return &ValidationError{Field: "attrs", Msg: err.Error()}
			}
			b.WithAttr(key, attr)
			return nil
		}
		b.WithAttr(key, v)
		return nil
	}

	switch attrs := raw.(type) {
	case nil:
	case []any:
		for _, item := range attrs {
			m, ok := item.(map[string]any)
			if !ok {
				return &ValidationError{Field: "attrs", Msg: "attr entry must be a {key, value} object"}
			}
			key, ok := m["key"].(string)
			if !ok || key == "" {
				return &ValidationError{Field: "attrs", Msg: "attr entry missing key"}
			}
			if err := setAttr(key, m["value"]); err != nil {
				return err
			}
		}
	case map[string]any:
		for _, k := range sortedKeys(attrs) {
			if err := setAttr(k, attrs[k]); err != nil {
				return err
			}
		}
	default:
		return &ValidationError{Field: "attrs", Msg: fmt.Sprintf("unsupported attrs form %T", raw)}
	}
	return nil
}

func loadContent(b *Block, raw any) error {
	switch t := raw.(type) {
	case nil:
	case string:
		// legacy flattened dump: a single pre-joined string
		if t != "" {
			b.content.Append(t)
		}
	case []any:
		for _, item := range t {
			if m, ok := item.(map[string]any); ok {
				c := NewChunk(m["value"])
				if lp, ok := m["logprob"].(float64); ok {
					c.logprob = lp
				}
				if ev, ok := m["event"].(string); ok {
					c.event = ev
				}
				if md, ok := m["metadata"].(map[string]any); ok {
					c.metadata = md
				}
				b.content.Append(c)
				continue
			}
			if _, err := ValueOf(item); err != nil {
				return &ValidationError{Field: "content", Msg: err.Error()}
			}
			b.content.Append(item)
		}
	default:
		return &ValidationError{Field: "content", Msg: fmt.Sprintf("unsupported content form %T", raw)}
	}
	return nil
}

func toStrings(raw any) []string {
	switch t := raw.(type) {
	case []string:
		if len(t) == 0 {
			return nil
		}
		return append([]string{}, t...)
	case []any:
		var out []string
		for _, v := range t {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func toInt(raw any) int {
	switch t := raw.(type) {
	case int:
		return t
	case float64:
		return int(t)
	default:
		return 0
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
