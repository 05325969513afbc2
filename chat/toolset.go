package chat

import (
	"fmt"
	"sort"
	"strings"

	"github.com/promptview/promptview/schema"
)

// ToolNotFoundError reports a tool invocation naming a tool absent from
// the set the model was given. Available lists what was offered, which
// usually makes the typo obvious.
type ToolNotFoundError struct {
	Name      string
	Available []string
}

func (e *ToolNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("chat: tool %q not found (no tools registered)", e.Name)
	}
	return fmt.Sprintf("chat: tool %q not found (available: %s)",
		e.Name, strings.Join(e.Available, ", "))
}

// Toolset is the ordered set of tools collected from a tree. Duplicate
// names keep the first registration.
type Toolset struct {
	tools []*schema.Tool
	index map[string]*schema.Tool
}

// NewToolset creates an empty toolset.
func NewToolset() *Toolset {
	return &Toolset{index: make(map[string]*schema.Tool)}
}

// Add registers a tool, keeping the earlier entry when the name repeats.
func (ts *Toolset) Add(tool *schema.Tool) {
	if tool == nil {
		return
	}
	if _, ok := ts.index[tool.Name]; ok {
		return
	}
	ts.tools = append(ts.tools, tool)
	ts.index[tool.Name] = tool
}

// Get returns the named tool or a ToolNotFoundError.
func (ts *Toolset) Get(name string) (*schema.Tool, error) {
	if tool, ok := ts.index[name]; ok {
		return tool, nil
	}
	return nil, &ToolNotFoundError{Name: name, Available: ts.Names()}
}

// Validate checks a parsed invocation's args against the named tool's
// schema. An unknown name surfaces as ToolNotFoundError, bad args as
// the schema package's validation error.
func (ts *Toolset) Validate(name string, args map[string]any) error {
	tool, err := ts.Get(name)
	if err != nil {
		return err
	}
	return tool.Validate(args)
}

// All returns the tools in registration order.
func (ts *Toolset) All() []*schema.Tool {
	return ts.tools
}

// Names returns the registered tool names, sorted.
func (ts *Toolset) Names() []string {
	names := make([]string, 0, len(ts.tools))
	for _, tool := range ts.tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of registered tools.
func (ts *Toolset) Len() int {
	return len(ts.tools)
}

// Describe renders every tool's documentation block, in registration
// order, separated by blank lines. This is what gets embedded in a
// prompt's "available tools" section.
func (ts *Toolset) Describe() string {
	parts := make([]string, 0, len(ts.tools))
	for _, tool := range ts.tools {
		parts = append(parts, tool.Describe())
	}
	return strings.Join(parts, "\n\n")
}
