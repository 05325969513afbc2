package promptview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf_Promotion(t *testing.T) {
	type expected struct {
		kind ContentKind
		text string
		err  bool
	}

	tests := []struct {
		name     string
		input    any
		expected expected
	}{
		{
			name:     "string",
			input:    "hello",
			expected: expected{kind: KindText, text: "hello"},
		},
		{
			name:     "int",
			input:    42,
			expected: expected{kind: KindNumber, text: "42"},
		},
		{
			name:     "float without integral part noise",
			input:    3.0,
			expected: expected{kind: KindNumber, text: "3"},
		},
		{
			name:     "float with fraction",
			input:    3.5,
			expected: expected{kind: KindNumber, text: "3.5"},
		},
		{
			name:     "bool",
			input:    true,
			expected: expected{kind: KindBool, text: "true"},
		},
		{
			name:     "nil is the null variant",
			input:    nil,
			expected: expected{kind: KindNull, text: ""},
		},
		{
			name:     "content value passes through",
			input:    TextValue("x"),
			expected: expected{kind: KindText, text: "x"},
		},
		{
			name:     "unsupported type errors",
			input:    struct{}{},
			expected: expected{err: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := ValueOf(tt.input)
			if tt.expected.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected.kind, v.Kind())
			assert.Equal(t, tt.expected.text, v.String())
		})
	}
}

func TestNewChunk_PanicsOnUnsupportedType(t *testing.T) {
	assert.Panics(t, func() {
		NewChunk(make(chan int))
	})
}

func TestBlockChunk_EqualityByContent(t *testing.T) {
	a := NewChunk("hello")
	b := NewChunkLogprob("hello", -1.5)
	c := NewChunk("world")

	assert.True(t, a.Equal(b), "logprob must not affect equality")
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
}

func TestBlockChunk_CloneCopiesMetadata(t *testing.T) {
	c := NewChunk("x").WithMetadata(map[string]any{"k": "v"}).WithEvent("delta")
	clone := c.Clone()

	clone.Metadata()["k"] = "changed"
	assert.Equal(t, "v", c.Metadata()["k"])
	assert.Equal(t, "delta", clone.Event())
	assert.Equal(t, 0, clone.Index())
}

func TestContentValue_Native(t *testing.T) {
	assert.Equal(t, "s", TextValue("s").Native())
	assert.Equal(t, 2.5, NumberValue(2.5).Native())
	assert.Equal(t, true, BoolValue(true).Native())
	assert.Nil(t, NullValue().Native())
}
