package promptview

import (
	"fmt"
	"iter"
	"strings"

	"github.com/promptview/promptview/schema"
)

// Role tags a block for flattening into role-tagged LLM messages.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// ToolCall records a tool invocation requested by the model, carried on
// assistant blocks for message flattening and serialization.
type ToolCall struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

// Usage records token accounting for a model-produced block.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Block is the tree node. It owns a content sentence (its own inline text)
// and an ordered list of child blocks. The parent pointer is a non-owning
// back-reference used for style inheritance and path computation only;
// ownership always flows parent to children.
type Block struct {
	content   *BlockSent
	children  BlockList
	role      Role
	tags      []string
	styles    []string
	attrs     map[string]any
	attrOrder []string
	tool      *schema.Tool

	id        string
	runID     string
	model     string
	toolCalls []ToolCall
	usage     *Usage

	parent *Block
}

// NewBlock creates a block whose content sentence holds the given values
// (auto-wrapped as chunks). Zero values creates an empty wrapper block.
func NewBlock(values ...any) *Block {
	b := &Block{content: NewSent(values...)}
	return b
}

// -----------------------------------------------------------------------------
// Fluent configuration
// -----------------------------------------------------------------------------

// WithRole sets the block's role. Returns the block for chaining.
func (b *Block) WithRole(role Role) *Block {
	b.role = role
	return b
}

// WithTags appends tags used for style selection and tree querying.
func (b *Block) WithTags(tags ...string) *Block {
	b.tags = append(b.tags, tags...)
	return b
}

// WithStyle appends inline style selectors. A single string may carry
// several space-separated selectors ("md list:roman").
func (b *Block) WithStyle(styles ...string) *Block {
	for _, s := range styles {
		for _, tok := range strings.Fields(s) {
			b.styles = append(b.styles, tok)
		}
	}
	return b
}

// WithAttr sets a structured attribute. Values may be plain strings or
// typed field descriptors (*schema.Attr) used for schema documentation
// rendering. Attribute order is preserved.
func (b *Block) WithAttr(key string, value any) *Block {
	if b.attrs == nil {
		b.attrs = make(map[string]any)
	}
	if _, exists := b.attrs[key]; !exists {
		b.attrOrder = append(b.attrOrder, key)
	}
	b.attrs[key] = value
	return b
}

// WithAttrs sets several attributes. Iteration order of the input map is
// not deterministic, so keys are added in sorted order; use WithAttr when
// the authored order matters.
func (b *Block) WithAttrs(attrs map[string]any) *Block {
	for _, k := range sortedKeys(attrs) {
		b.WithAttr(k, attrs[k])
	}
	return b
}

// WithTool attaches an available-tool descriptor to this block. The
// renderer emits the tool's documentation (name, description, parameter
// table) and Transform collects the full tool set from the tree.
func (b *Block) WithTool(tool *schema.Tool) *Block {
	b.tool = tool
	return b
}

// WithID sets the block id. Required for role "tool" blocks, where it
// correlates the tool response with its originating call.
func (b *Block) WithID(id string) *Block {
	b.id = id
	return b
}

// WithRunID sets the run id used to key tracing snapshots.
func (b *Block) WithRunID(runID string) *Block {
	b.runID = runID
	return b
}

// WithModel records the model that produced this block.
func (b *Block) WithModel(model string) *Block {
	b.model = model
	return b
}

// WithToolCalls records tool invocations requested by the model.
func (b *Block) WithToolCalls(calls ...ToolCall) *Block {
	b.toolCalls = append(b.toolCalls, calls...)
	return b
}

// WithUsage records token usage for this block.
func (b *Block) WithUsage(u *Usage) *Block {
	b.usage = u
	return b
}

// -----------------------------------------------------------------------------
// Accessors
// -----------------------------------------------------------------------------

// Content returns the block's own content sentence.
func (b *Block) Content() *BlockSent {
	return b.content
}

// Children returns the block's child list.
func (b *Block) Children() BlockList {
	return b.children
}

// Role returns the block's role ("" when unset).
func (b *Block) Role() Role {
	return b.role
}

// Tags returns the block's tags.
func (b *Block) Tags() []string {
	return b.tags
}

// Styles returns the block's inline style selectors.
func (b *Block) Styles() []string {
	return b.styles
}

// Attrs returns the attribute map. May be nil.
func (b *Block) Attrs() map[string]any {
	return b.attrs
}

// AttrKeys returns attribute keys in the order they were set.
func (b *Block) AttrKeys() []string {
	return b.attrOrder
}

// Tool returns the attached tool descriptor, or nil.
func (b *Block) Tool() *schema.Tool {
	return b.tool
}

// ID returns the block id.
func (b *Block) ID() string { return b.id }

// RunID returns the run id.
func (b *Block) RunID() string { return b.runID }

// Model returns the producing model name.
func (b *Block) Model() string { return b.model }

// ToolCalls returns recorded tool invocations.
func (b *Block) ToolCalls() []ToolCall { return b.toolCalls }

// Usage returns token usage, or nil.
func (b *Block) Usage() *Usage { return b.usage }

// Parent returns the non-owning parent back-reference, or nil at the root.
func (b *Block) Parent() *Block {
	return b.parent
}

// HasTag reports whether the block carries the given tag.
func (b *Block) HasTag(tag string) bool {
	for _, t := range b.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsWrapper reports whether the block has no visible content of its own.
// Wrapper blocks group children without contributing a line or a heading.
func (b *Block) IsWrapper() bool {
	return b.content.IsEmpty()
}

// Depth returns the number of ancestors above this block.
func (b *Block) Depth() int {
	d := 0
	for p := b.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Path returns child indices from the root to this block.
func (b *Block) Path() []int {
	if b.parent == nil {
		return nil
	}
	idx := -1
	for i, c := range b.parent.children {
		if c == b {
			idx = i
			break
		}
	}
	return append(b.parent.Path(), idx)
}

// Breadcrumb returns a human-readable root-to-node trail used in error
// messages: each segment is the node's first tag, its head text, or its
// role, whichever is set first.
func (b *Block) Breadcrumb() string {
	var segs []string
	for n := b; n != nil; n = n.parent {
		segs = append([]string{n.label()}, segs...)
	}
	return strings.Join(segs, " > ")
}

func (b *Block) label() string {
	if len(b.tags) > 0 {
		return "[" + b.tags[0] + "]"
	}
	if !b.content.IsEmpty() {
		head := b.content.At(0).Text()
		// Truncate on a rune boundary so breadcrumbs stay valid UTF-8.
		if r := []rune(head); len(r) > 24 {
			head = string(r[:24]) + "…"
		}
		return head
	}
	if b.role != "" {
		return "(" + string(b.role) + ")"
	}
	return "(block)"
}

// -----------------------------------------------------------------------------
// Mutation
// -----------------------------------------------------------------------------

// AddChild appends a child block, taking exclusive ownership of it.
func (b *Block) AddChild(child *Block) *Block {
	child.parent = b
	b.children = append(b.children, child)
	return b
}

// AddChildren appends several children in order.
func (b *Block) AddChildren(children ...*Block) *Block {
	for _, c := range children {
		b.AddChild(c)
	}
	return b
}

// AppendContent appends values (auto-wrapped as chunks) to the block's own
// content sentence.
func (b *Block) AppendContent(values ...any) *Block {
	for _, v := range values {
		b.content.Append(v)
	}
	return b
}

// Join returns a new block whose content is this block's chunks followed by
// other's, and whose children are deep copies of this block's children
// followed by copies of other's. Neither operand is mutated: the copies keep
// each child single-parented, so both source trees stay intact.
func (b *Block) Join(other *Block) *Block {
	out := NewBlock()
	out.content = b.content.Concat(other.content)
	out.role = b.role
	out.tags = append(append([]string{}, b.tags...), other.tags...)
	for _, c := range b.children {
		out.AddChild(c.Clone())
	}
	for _, c := range other.children {
		out.AddChild(c.Clone())
	}
	return out
}

// Stack returns a new wrapper block holding deep copies of this block and
// other as its two children, stacking them vertically when rendered.
// Neither operand is mutated.
func (b *Block) Stack(other *Block) *Block {
	out := NewBlock().WithRole(b.role)
	out.tags = append(append([]string{}, b.tags...), other.tags...)
	out.AddChild(b.Clone())
	out.AddChild(other.Clone())
	return out
}

// -----------------------------------------------------------------------------
// Queries
// -----------------------------------------------------------------------------

// Get returns this block or the first descendant (pre-order) carrying the
// tag, or nil when no node matches.
func (b *Block) Get(tag string) *Block {
	if b.HasTag(tag) {
		return b
	}
	for _, child := range b.children {
		if found := child.Get(tag); found != nil {
			return found
		}
	}
	return nil
}

// GetLast returns the last node (pre-order) carrying the tag, or nil.
func (b *Block) GetLast(tag string) *Block {
	var last *Block
	for n := range b.Traverse() {
		if n.HasTag(tag) {
			last = n
		}
	}
	return last
}

// Find returns all descendants (including this block) matching any of the
// given tags or roles.
func (b *Block) Find(tags ...string) BlockList {
	var out BlockList
	for n := range b.Traverse() {
		if matchesAny(n, tags) {
			out = append(out, n)
		}
	}
	return out
}

// Traverse iterates the subtree pre-order, starting with this block.
func (b *Block) Traverse() iter.Seq[*Block] {
	return func(yield func(*Block) bool) {
		b.traverse(yield)
	}
}

func (b *Block) traverse(yield func(*Block) bool) bool {
	if !yield(b) {
		return false
	}
	for _, c := range b.children {
		if !c.traverse(yield) {
			return false
		}
	}
	return true
}

// Validate checks structural invariants: a role "tool" block must carry a
// non-empty id correlating it to its originating call. The check is applied
// recursively.
func (b *Block) Validate() error {
	for n := range b.Traverse() {
		if n.role == RoleTool && n.id == "" {
			return &ValidationError{
				Field: "id",
				Msg:   fmt.Sprintf("tool block %q requires an id", n.Breadcrumb()),
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the subtree. The copy's parent is nil.
func (b *Block) Clone() *Block {
	out := NewBlock()
	out.content = b.content.Clone()
	out.role = b.role
	out.tags = append([]string{}, b.tags...)
	out.styles = append([]string{}, b.styles...)
	out.tool = b.tool
	out.id = b.id
	out.runID = b.runID
	out.model = b.model
	out.toolCalls = append([]ToolCall{}, b.toolCalls...)
	if b.usage != nil {
		u := *b.usage
		out.usage = &u
	}
	for _, k := range b.attrOrder {
		out.WithAttr(k, b.attrs[k])
	}
	for _, c := range b.children {
		out.AddChild(c.Clone())
	}
	return out
}

func matchesAny(b *Block, tags []string) bool {
	for _, t := range tags {
		if b.HasTag(t) || (b.role != "" && string(b.role) == t) {
			return true
		}
	}
	return false
}
