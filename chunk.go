package promptview

import (
	"fmt"
	"strconv"
)

// ContentKind discriminates the closed set of chunk content variants.
type ContentKind int

const (
	// KindNull is the absent-value variant. It renders as an empty string.
	KindNull ContentKind = iota
	// KindText is a plain string.
	KindText
	// KindNumber is a numeric value. Integers and floats share this variant.
	KindNumber
	// KindBool is a boolean value.
	KindBool
)

// ContentValue is a tagged variant holding the content of a single chunk.
// It replaces runtime type inspection with a closed set of cases, so the
// renderer never has to switch on arbitrary dynamic types.
//
// The zero value is the null variant.
type ContentValue struct {
	kind    ContentKind
	text    string
	number  float64
	boolean bool
}

// TextValue creates a text content value.
func TextValue(s string) ContentValue {
	return ContentValue{kind: KindText, text: s}
}

// NumberValue creates a numeric content value.
func NumberValue(f float64) ContentValue {
	return ContentValue{kind: KindNumber, number: f}
}

// BoolValue creates a boolean content value.
func BoolValue(b bool) ContentValue {
	return ContentValue{kind: KindBool, boolean: b}
}

// NullValue creates the null content value.
func NullValue() ContentValue {
	return ContentValue{kind: KindNull}
}

// ValueOf promotes a raw Go value into a ContentValue.
// Supported types: string, all int/uint widths, float32/float64, bool, nil,
// and ContentValue itself. Anything else is an error.
func ValueOf(v any) (ContentValue, error) {
	switch t := v.(type) {
	case nil:
		return NullValue(), nil
	case ContentValue:
		return t, nil
	case string:
		return TextValue(t), nil
	case bool:
		return BoolValue(t), nil
	case int:
		return NumberValue(float64(t)), nil
	case int8:
		return NumberValue(float64(t)), nil
	case int16:
		return NumberValue(float64(t)), nil
	case int32:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case uint:
		return NumberValue(float64(t)), nil
	case uint8:
		return NumberValue(float64(t)), nil
	case uint16:
		return NumberValue(float64(t)), nil
	case uint32:
		return NumberValue(float64(t)), nil
	case uint64:
		return NumberValue(float64(t)), nil
	case float32:
		return NumberValue(float64(t)), nil
	case float64:
		return NumberValue(t), nil
	default:
		return ContentValue{}, fmt.Errorf("promptview: cannot promote %T to content value", v)
	}
}

// Kind returns the variant tag.
func (v ContentValue) Kind() ContentKind {
	return v.kind
}

// IsNull reports whether this is the null variant.
func (v ContentValue) IsNull() bool {
	return v.kind == KindNull
}

// String renders the value for output. Null renders as an empty string,
// numbers render without a trailing ".0" when integral.
func (v ContentValue) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.boolean)
	default:
		return ""
	}
}

// Native returns the value as a plain JSON-compatible Go value
// (string, float64, bool, or nil). Used by Dump.
func (v ContentValue) Native() any {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return v.number
	case KindBool:
		return v.boolean
	default:
		return nil
	}
}

// Equal reports whether two values hold the same variant and content.
func (v ContentValue) Equal(o ContentValue) bool {
	return v == o
}

// BlockChunk is the smallest unit of renderable content. Chunks are owned
// exclusively by the sentence that holds them; Index reflects the chunk's
// position in its sentence and is recomputed whenever the sentence mutates.
//
// Content is immutable once the chunk is created; equality is by content.
type BlockChunk struct {
	content  ContentValue
	logprob  float64
	event    string
	metadata map[string]any
	index    int
}

// NewChunk wraps a raw value as a chunk. It panics if the value cannot be
// promoted to a ContentValue; use [ValueOf] first when the input is untrusted.
func NewChunk(v any) *BlockChunk {
	cv, err := ValueOf(v)
	if err != nil {
		panic(err)
	}
	return &BlockChunk{content: cv}
}

// NewChunkLogprob wraps a raw value as a chunk carrying the token's
// log-probability from a streaming model response.
func NewChunkLogprob(v any, logprob float64) *BlockChunk {
	c := NewChunk(v)
	c.logprob = logprob
	return c
}

// WithEvent sets an optional status tag on the chunk (e.g. "delta", "stop").
// Returns the chunk for chaining.
func (c *BlockChunk) WithEvent(event string) *BlockChunk {
	c.event = event
	return c
}

// WithMetadata attaches arbitrary metadata to the chunk.
// Returns the chunk for chaining.
func (c *BlockChunk) WithMetadata(metadata map[string]any) *BlockChunk {
	c.metadata = metadata
	return c
}

// Content returns the chunk's content value.
func (c *BlockChunk) Content() ContentValue {
	return c.content
}

// Text returns the rendered string form of the chunk's content.
func (c *BlockChunk) Text() string {
	return c.content.String()
}

// Logprob returns the chunk's log-probability (0 when not streamed).
func (c *BlockChunk) Logprob() float64 {
	return c.logprob
}

// Event returns the optional status tag.
func (c *BlockChunk) Event() string {
	return c.event
}

// Metadata returns the optional metadata map. May be nil.
func (c *BlockChunk) Metadata() map[string]any {
	return c.metadata
}

// Index returns the chunk's zero-based position within its owning sentence.
func (c *BlockChunk) Index() int {
	return c.index
}

// Equal reports whether two chunks carry equal content.
func (c *BlockChunk) Equal(o *BlockChunk) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.content.Equal(o.content)
}

// Clone returns a copy of the chunk. The copy's index is reset; it is
// assigned when the clone is inserted into a sentence.
func (c *BlockChunk) Clone() *BlockChunk {
	clone := *c
	clone.index = 0
	if c.metadata != nil {
		clone.metadata = make(map[string]any, len(c.metadata))
		for k, v := range c.metadata {
			clone.metadata[k] = v
		}
	}
	return &clone
}

func (c *BlockChunk) String() string {
	return c.Text()
}
