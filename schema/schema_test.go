package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchTool() *Tool {
	return NewTool("search", "Search the knowledge base.", Object(map[string]*Property{
		"query": String("the search query"),
		"limit": Integer("max results").Min(1).Max(100),
	}, "query"))
}

func TestTool_Validate(t *testing.T) {
	type expected struct {
		ok bool
	}

	tests := []struct {
		name     string
		args     map[string]any
		expected expected
	}{
		{
			name:     "valid args",
			args:     map[string]any{"query": "go testing", "limit": 10},
			expected: expected{ok: true},
		},
		{
			name:     "missing required",
			args:     map[string]any{"limit": 10},
			expected: expected{ok: false},
		},
		{
			name:     "wrong type",
			args:     map[string]any{"query": 7},
			expected: expected{ok: false},
		},
		{
			name:     "bounds violated",
			args:     map[string]any{"query": "x", "limit": 1000},
			expected: expected{ok: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := searchTool().Validate(tt.args)
			if tt.expected.ok {
				assert.NoError(t, err)
				return
			}
			var aerr *ArgsError
			require.ErrorAs(t, err, &aerr)
			assert.Equal(t, "search", aerr.Tool)
		})
	}
}

func TestTool_ValidateNilSchemaAccepts(t *testing.T) {
	tool := NewTool("noop", "does nothing", nil)
	assert.NoError(t, tool.Validate(map[string]any{"anything": "goes"}))
}

func TestTool_ParamNamesRequiredFirst(t *testing.T) {
	tool := NewTool("t", "d", Object(map[string]*Property{
		"zeta":  String(""),
		"alpha": String(""),
		"must":  String(""),
	}, "must"))

	assert.Equal(t, []string{"must", "alpha", "zeta"}, tool.ParamNames())
}

func TestTool_Describe(t *testing.T) {
	out := searchTool().Describe()

	assert.Contains(t, out, "search: Search the knowledge base.")
	assert.Contains(t, out, "- query (string) (required): the search query")
	assert.Contains(t, out, "- limit (integer): max results")
}

func TestProperty_Builders(t *testing.T) {
	prop := Array("tags", String("one tag")).build()
	assert.Equal(t, "array", prop["type"])

	enum := String("color").Enum("red", "green").build()
	assert.Equal(t, []any{"red", "green"}, enum["enum"])
}

func TestCompile_RejectsBadSchema(t *testing.T) {
	_, err := Compile(map[string]any{"type": 42})
	assert.Error(t, err)
}

type scheduleInput struct {
	Title    string         `json:"title" description:"event title"`
	Minutes  int            `json:"minutes"`
	Notify   *bool          `json:"notify,omitempty"`
	Internal string         `json:"-"`
	Extra    map[string]any `json:"extra,omitempty"`
}

func TestFromType_StructSchema(t *testing.T) {
	tool := ToolFor("schedule", "Schedule an event.", scheduleInput{})

	props, ok := tool.Parameters["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "title")
	assert.Contains(t, props, "minutes")
	assert.Contains(t, props, "notify")
	assert.NotContains(t, props, "Internal")

	title, _ := props["title"].(map[string]any)
	assert.Equal(t, "string", title["type"])
	assert.Equal(t, "event title", title["description"])

	// Pointer field is nullable and optional.
	notify, _ := props["notify"].(map[string]any)
	assert.Equal(t, []string{"boolean", "null"}, notify["type"])

	required, _ := tool.Parameters["required"].([]string)
	assert.ElementsMatch(t, []string{"title", "minutes"}, required)

	// Generated schemas must be valid and usable end to end.
	assert.NoError(t, tool.Validate(map[string]any{"title": "standup", "minutes": 15}))
	assert.Error(t, tool.Validate(map[string]any{"minutes": 15}))
}

func TestAttr_Placeholder(t *testing.T) {
	tests := []struct {
		name     string
		attr     *Attr
		expected string
	}{
		{
			name:     "float with bounds hints quoting",
			attr:     NewAttr("confidence", FieldFloat, "how sure").WithGe(0).WithLe(1),
			expected: `[("float" wrap in quotes) how sure ge=0 le=1]`,
		},
		{
			name:     "string without bounds",
			attr:     NewAttr("name", FieldString, "the name"),
			expected: `[("str") the name]`,
		},
		{
			name:     "exclusive bounds",
			attr:     NewAttr("count", FieldInt, "how many").WithGt(0).WithLt(10),
			expected: `[("int" wrap in quotes) how many gt=0 lt=10]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.attr.Placeholder())
		})
	}
}

func TestAttr_Parse(t *testing.T) {
	type expected struct {
		value any
		err   bool
	}

	tests := []struct {
		name     string
		attr     *Attr
		content  string
		expected expected
	}{
		{
			name:     "int",
			attr:     NewAttr("n", FieldInt, ""),
			content:  " 42 ",
			expected: expected{value: 42},
		},
		{
			name:     "float",
			attr:     NewAttr("f", FieldFloat, ""),
			content:  "0.75",
			expected: expected{value: 0.75},
		},
		{
			name:     "bool case-insensitive",
			attr:     NewAttr("b", FieldBool, ""),
			content:  "True",
			expected: expected{value: true},
		},
		{
			name:     "list splits on commas",
			attr:     NewAttr("l", FieldList, ""),
			content:  "a, b ,c",
			expected: expected{value: []string{"a", "b", "c"}},
		},
		{
			name:     "dict parses yaml",
			attr:     NewAttr("d", FieldDict, ""),
			content:  "key: value",
			expected: expected{value: map[string]any{"key": "value"}},
		},
		{
			name:     "bad int errors",
			attr:     NewAttr("n", FieldInt, ""),
			content:  "seven",
			expected: expected{err: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.attr.Parse(tt.content)
			if tt.expected.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.value, v)
		})
	}
}

func TestAttr_DumpRoundTrip(t *testing.T) {
	original := NewAttr("score", FieldFloat, "confidence").WithGe(0).WithLe(1)

	restored, err := AttrFromDump(original.Dump())
	require.NoError(t, err)
	assert.Equal(t, original, restored)

	_, err = AttrFromDump(map[string]any{"_type": "Block"})
	assert.Error(t, err)
}
