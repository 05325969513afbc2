package promptview

// Builder constructs a block tree through an explicitly owned context
// stack, so sibling and child appends target the correct node without
// threading parent references through every call site.
//
// The builder replaces the implicit "current block" context-manager
// protocol with an explicit object: Open pushes a new child onto the
// stack, Close pops back to its parent, and Section scopes the two
// around a callback. Because the same builder tracks the whole stack,
// there is no shadowing footgun when nesting scopes.
//
//	b := promptview.Build(promptview.NewBlock("Rules").WithStyle("list"))
//	b.Line("rule one")
//	b.Line("rule two")
//	b.Section(promptview.NewBlock("Exceptions"), func(b *promptview.Builder) {
//	    b.Line("unless asked nicely")
//	})
//
// Line appends one new child block per call (one row each); Text appends
// chunks inline into the current block's own content sentence, extending
// the current line. Embedded newlines in Text are NOT split into separate
// children; splitting lines is always an explicit Line call.
type Builder struct {
	stack []*Block
}

// Build creates a root block from the given value (a *Block is used as-is,
// anything else is promoted to a block with that content) and returns a
// builder with the root on its stack.
func Build(v any) *Builder {
	return NewBuilder(asBlock(v))
}

// NewBuilder returns a builder with the given root pushed on its stack.
func NewBuilder(root *Block) *Builder {
	return &Builder{stack: []*Block{root}}
}

// Root returns the bottom of the stack.
func (b *Builder) Root() *Block {
	b.require("Root")
	return b.stack[0]
}

// Current returns the top of the stack: the block all append operations
// currently target.
func (b *Builder) Current() *Block {
	b.require("Current")
	return b.stack[len(b.stack)-1]
}

// Depth returns the number of blocks on the stack.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Open appends a new child (promoted from v) to the current block and
// pushes it, so subsequent operations target the child. Returns the
// builder for chaining.
func (b *Builder) Open(v any) *Builder {
	b.require("Open")
	child := asBlock(v)
	b.Current().AddChild(child)
	b.stack = append(b.stack, child)
	return b
}

// Close pops the stack back to the parent scope. Closing at the root is a
// no-op: the root block always remains.
func (b *Builder) Close() *Builder {
	if len(b.stack) > 1 {
		b.stack = b.stack[:len(b.stack)-1]
	}
	return b
}

// Section opens a child scope, runs fn against it, and closes it again,
// expressing deep nesting without manual Close bookkeeping.
func (b *Builder) Section(v any, fn func(*Builder)) *Builder {
	b.Open(v)
	fn(b)
	return b.Close()
}

// Line appends one new child block to the current block — a new row in
// the rendered output. All values passed in a single call are packed into
// the one child's content sentence (one line with multiple chunks), never
// into multiple children.
func (b *Builder) Line(values ...any) *Builder {
	b.require("Line")
	b.Current().AddChild(NewBlock(values...))
	return b
}

// Text appends values inline into the current block's own content
// sentence, extending the current line rather than creating a new child.
func (b *Builder) Text(values ...any) *Builder {
	b.require("Text")
	b.Current().AppendContent(values...)
	return b
}

// Child appends a new child (promoted from v) to the current block
// without pushing it, and returns the created block so the caller can
// configure it further.
func (b *Builder) Child(v any) *Block {
	b.require("Child")
	child := asBlock(v)
	b.Current().AddChild(child)
	return child
}

// require panics with a StructuralError when the stack is empty (builder
// used without a root, e.g. a zero-value Builder).
func (b *Builder) require(op string) {
	if len(b.stack) == 0 {
		panic(&StructuralError{Op: op, Err: ErrNoContext})
	}
}

// asBlock promotes a value to a block: a *Block passes through, a
// *BlockSent becomes the block's content, anything else is wrapped as a
// single content chunk.
func asBlock(v any) *Block {
	switch t := v.(type) {
	case *Block:
		return t
	case *BlockSent:
		blk := NewBlock()
		blk.content = t
		return blk
	default:
		return NewBlock(v)
	}
}
