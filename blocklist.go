package promptview

import (
	"fmt"

	"github.com/samber/lo"
)

// BlockList is an ordered collection of blocks with query, filter, split,
// and grouping operations used to navigate and restructure trees (for
// example extracting "history" and "system" sections before flattening to
// messages).
//
// The list itself owns nothing: elements remain owned by their original
// parents, or are transient roots.
type BlockList []*Block

// Find returns all blocks in the list, searched recursively, whose tags or
// role match any of the given keys. A block that matches is returned
// without descending into it, mirroring shallow-first extraction.
func (l BlockList) Find(tags ...string) BlockList {
	var out BlockList
	for _, b := range l {
		if matchesAny(b, tags) {
			out = append(out, b)
			continue
		}
		out = append(out, b.children.Find(tags...)...)
	}
	return out
}

// Filter returns the blocks whose tags and role match none of the given
// keys. Unlike Find it does not descend into children.
func (l BlockList) Filter(tags ...string) BlockList {
	return lo.Filter(l, func(b *Block, _ int) bool {
		return !matchesAny(b, tags)
	})
}

// FindBefore returns the blocks preceding the first block tagged with the
// pivot tag. When the pivot is absent the whole list is returned.
func (l BlockList) FindBefore(pivot string) BlockList {
	var out BlockList
	for _, b := range l {
		if b.HasTag(pivot) {
			break
		}
		out = append(out, b)
	}
	return out
}

// FindAfter returns the blocks following the first block tagged with the
// pivot tag. Errors when the pivot is absent.
func (l BlockList) FindAfter(pivot string) (BlockList, error) {
	_, _, after, err := l.Split(pivot)
	return after, err
}

// Split partitions the list around the first block carrying the pivot tag,
// returning (before, pivot, after). A missing pivot is a structural error.
func (l BlockList) Split(pivot string) (BlockList, *Block, BlockList, error) {
	var before, after BlockList
	var pivotBlock *Block
	for _, b := range l {
		switch {
		case pivotBlock == nil && b.HasTag(pivot):
			pivotBlock = b
		case pivotBlock == nil:
			before = append(before, b)
		default:
			after = append(after, b)
		}
	}
	if pivotBlock == nil {
		return nil, nil, nil, fmt.Errorf("promptview: split on %q: %w", pivot, ErrPivotNotFound)
	}
	return before, pivotBlock, after, nil
}

// Group wraps the blocks in a new synthetic block with the given role and
// tags. The wrapper takes ownership of the elements.
func (l BlockList) Group(role Role, tags ...string) *Block {
	wrapper := NewBlock().WithRole(role).WithTags(tags...)
	for _, b := range l {
		wrapper.AddChild(b)
	}
	return wrapper
}

// GroupOrNil is Group, except it returns nil for an empty list so callers
// can skip empty sections.
func (l BlockList) GroupOrNil(role Role, tags ...string) *Block {
	if len(l) == 0 {
		return nil
	}
	return l.Group(role, tags...)
}

// Slice returns a sub-list. Bounds are clamped to the list length.
func (l BlockList) Slice(start, end int) BlockList {
	if start < 0 {
		start = 0
	}
	if end > len(l) {
		end = len(l)
	}
	if start >= end {
		return nil
	}
	return BlockList(l[start:end])
}

// Map returns a new list with fn applied to every block.
func (l BlockList) Map(fn func(*Block) *Block) BlockList {
	return lo.Map(l, func(b *Block, _ int) *Block {
		return fn(b)
	})
}

// Roles returns the distinct roles present in the list, in order of first
// appearance.
func (l BlockList) Roles() []Role {
	roles := lo.Map(l, func(b *Block, _ int) Role { return b.role })
	return lo.Uniq(lo.Filter(roles, func(r Role, _ int) bool { return r != "" }))
}
