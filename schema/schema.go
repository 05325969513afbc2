package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Tool describes an action available to the model: its name, a docstring
// style description, and a JSON Schema for its parameters. The renderer
// consumes tools as pure data; it never introspects the implementation
// behind them.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any

	compiled *jsonschema.Schema
}

// NewTool creates a tool descriptor from a raw parameters schema.
func NewTool(name, description string, parameters map[string]any) *Tool {
	return &Tool{Name: name, Description: description, Parameters: parameters}
}

// Validate checks parsed tool arguments against the parameters schema.
// The schema is compiled lazily on first use. Returns nil when the tool
// declares no parameters schema.
func (t *Tool) Validate(args map[string]any) error {
	if t.Parameters == nil {
		return nil
	}
	if t.compiled == nil {
		compiled, err := Compile(t.Parameters)
		if err != nil {
			return err
		}
		t.compiled = compiled
	}
	// jsonschema validates the generic decoded form, so round-trip
	// through JSON to normalize numeric types.
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("schema: marshal args: %w", err)
	}
	data, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("schema: decode args: %w", err)
	}
	if err := t.compiled.Validate(data); err != nil {
		return &ArgsError{Tool: t.Name, Err: err}
	}
	return nil
}

// ParamNames returns the parameter property names in sorted order, with
// required parameters listed first. Used when rendering the parameter
// table in tool documentation.
func (t *Tool) ParamNames() []string {
	props, _ := t.Parameters["properties"].(map[string]any)
	required := map[string]bool{}
	if reqs, ok := t.Parameters["required"].([]string); ok {
		for _, r := range reqs {
			required[r] = true
		}
	}
	if reqs, ok := t.Parameters["required"].([]any); ok {
		for _, r := range reqs {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}
	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})
	return names
}

// Describe renders a one-parameter-per-line table of the tool's
// parameters: name, type, required marker, and description.
func (t *Tool) Describe() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s", t.Name, t.Description)
	props, _ := t.Parameters["properties"].(map[string]any)
	required := requiredSet(t.Parameters)
	for _, name := range t.ParamNames() {
		prop, _ := props[name].(map[string]any)
		typ, _ := prop["type"].(string)
		desc, _ := prop["description"].(string)
		marker := ""
		if required[name] {
			marker = " (required)"
		}
		fmt.Fprintf(&sb, "\n- %s (%s)%s: %s", name, typ, marker, desc)
	}
	return sb.String()
}

func requiredSet(parameters map[string]any) map[string]bool {
	out := map[string]bool{}
	switch reqs := parameters["required"].(type) {
	case []string:
		for _, r := range reqs {
			out[r] = true
		}
	case []any:
		for _, r := range reqs {
			if s, ok := r.(string); ok {
				out[s] = true
			}
		}
	}
	return out
}

// ArgsError reports tool arguments that failed schema validation.
type ArgsError struct {
	Tool string
	Err  error
}

func (e *ArgsError) Error() string {
	return fmt.Sprintf("schema: invalid arguments for %q: %v", e.Tool, e.Err)
}

func (e *ArgsError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a validator.
func Compile(raw map[string]any) (*jsonschema.Schema, error) {
	schemaJSON, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("schema: marshal schema: %w", err)
	}
	schemaData, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("schema: parse schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", schemaData); err != nil {
		return nil, fmt.Errorf("schema: add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("schema: compile schema: %w", err)
	}
	return compiled, nil
}

// -----------------------------------------------------------------------------
// Schema builders
// -----------------------------------------------------------------------------

// Object creates an object schema from properties. Names passed as
// variadic arguments are marked required.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}
	schema := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Property is a property in an object schema.
type Property struct {
	typ         string
	description string
	enum        []any
	minimum     *float64
	maximum     *float64
	items       map[string]any
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a number property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// Array creates an array property with the given item schema.
func Array(description string, items *Property) *Property {
	return &Property{typ: "array", description: description, items: items.build()}
}

// Enum restricts the property to the given values.
func (p *Property) Enum(values ...any) *Property {
	p.enum = values
	return p
}

// Min sets the minimum for numeric properties.
func (p *Property) Min(v float64) *Property {
	p.minimum = &v
	return p
}

// Max sets the maximum for numeric properties.
func (p *Property) Max(v float64) *Property {
	p.maximum = &v
	return p
}

func (p *Property) build() map[string]any {
	m := map[string]any{"type": p.typ}
	if p.description != "" {
		m["description"] = p.description
	}
	if len(p.enum) > 0 {
		m["enum"] = p.enum
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.items != nil {
		m["items"] = p.items
	}
	return m
}
