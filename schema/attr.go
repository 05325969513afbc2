package schema

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AttrType is the serialized discriminator for attribute descriptors.
const AttrType = "Attr"

// FieldType enumerates the value types an attribute descriptor can carry.
type FieldType string

const (
	FieldString FieldType = "str"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
	FieldBool   FieldType = "bool"
	FieldList   FieldType = "list"
	FieldDict   FieldType = "dict"
)

// Attr is a typed field descriptor attached to a block attribute. Instead
// of rendering as literal data, it renders as an instructional placeholder
// embedding the type, bounds, and description, telling the model what to
// fill in.
type Attr struct {
	Name        string
	Type        FieldType
	Description string
	Gt          *float64
	Lt          *float64
	Ge          *float64
	Le          *float64
}

// NewAttr creates a descriptor with the given name, type, and description.
func NewAttr(name string, typ FieldType, description string) *Attr {
	return &Attr{Name: name, Type: typ, Description: description}
}

// WithGt sets an exclusive lower bound. Returns the attr for chaining.
func (a *Attr) WithGt(v float64) *Attr { a.Gt = &v; return a }

// WithLt sets an exclusive upper bound.
func (a *Attr) WithLt(v float64) *Attr { a.Lt = &v; return a }

// WithGe sets an inclusive lower bound.
func (a *Attr) WithGe(v float64) *Attr { a.Ge = &v; return a }

// WithLe sets an inclusive upper bound.
func (a *Attr) WithLe(v float64) *Attr { a.Le = &v; return a }

// Placeholder renders the instructional placeholder string embedded in XML
// attribute position:
//
//	confidence=[("float" wrap in quotes) how sure the model is ge=0 le=1]
func (a *Attr) Placeholder() string {
	var sb strings.Builder
	sb.WriteString("[(\"")
	sb.WriteString(string(a.Type))
	sb.WriteString("\"")
	if a.Type == FieldInt || a.Type == FieldFloat {
		sb.WriteString(" wrap in quotes")
	}
	sb.WriteString(") ")
	sb.WriteString(a.Description)
	if a.Gt != nil {
		fmt.Fprintf(&sb, " gt=%s", formatBound(*a.Gt))
	}
	if a.Lt != nil {
		fmt.Fprintf(&sb, " lt=%s", formatBound(*a.Lt))
	}
	if a.Ge != nil {
		fmt.Fprintf(&sb, " ge=%s", formatBound(*a.Ge))
	}
	if a.Le != nil {
		fmt.Fprintf(&sb, " le=%s", formatBound(*a.Le))
	}
	sb.WriteString("]")
	return sb.String()
}

// Parse converts model-provided text into the attr's declared type. List
// values split on commas; dict values parse as YAML (which accepts JSON).
func (a *Attr) Parse(content string) (any, error) {
	content = strings.TrimSpace(content)
	switch a.Type {
	case FieldString, "":
		return content, nil
	case FieldInt:
		n, err := strconv.ParseInt(content, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("schema: attr %s: %w", a.Name, err)
		}
		return int(n), nil
	case FieldFloat:
		f, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return nil, fmt.Errorf("schema: attr %s: %w", a.Name, err)
		}
		return f, nil
	case FieldBool:
		b, err := strconv.ParseBool(strings.ToLower(content))
		if err != nil {
			return nil, fmt.Errorf("schema: attr %s: %w", a.Name, err)
		}
		return b, nil
	case FieldList:
		parts := strings.Split(content, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out, nil
	case FieldDict:
		var out map[string]any
		if err := yaml.Unmarshal([]byte(content), &out); err != nil {
			return nil, fmt.Errorf("schema: attr %s: %w", a.Name, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("schema: attr %s: unsupported type %q", a.Name, a.Type)
	}
}

// Dump serializes the descriptor with its "_type" discriminator.
func (a *Attr) Dump() map[string]any {
	out := map[string]any{
		"_type":       AttrType,
		"name":        a.Name,
		"type":        string(a.Type),
		"description": a.Description,
	}
	if a.Gt != nil {
		out["gt"] = *a.Gt
	}
	if a.Lt != nil {
		out["lt"] = *a.Lt
	}
	if a.Ge != nil {
		out["ge"] = *a.Ge
	}
	if a.Le != nil {
		out["le"] = *a.Le
	}
	return out
}

// AttrFromDump is the inverse of [Attr.Dump].
func AttrFromDump(data map[string]any) (*Attr, error) {
	if data["_type"] != AttrType {
		return nil, fmt.Errorf("schema: not an attr dump: _type=%v", data["_type"])
	}
	name, _ := data["name"].(string)
	typ, _ := data["type"].(string)
	desc, _ := data["description"].(string)
	a := NewAttr(name, FieldType(typ), desc)
	if v, ok := toFloat(data["gt"]); ok {
		a.Gt = &v
	}
	if v, ok := toFloat(data["lt"]); ok {
		a.Lt = &v
	}
	if v, ok := toFloat(data["ge"]); ok {
		a.Ge = &v
	}
	if v, ok := toFloat(data["le"]); ok {
		a.Le = &v
	}
	return a, nil
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func toFloat(raw any) (float64, bool) {
	switch t := raw.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	default:
		return 0, false
	}
}
