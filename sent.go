package promptview

import (
	"iter"
	"strings"
)

// Separator is the conventional separator between chunks in a rendered
// sentence.
const Separator = " "

// BlockSent is an ordered, indexable, mutable sequence of chunks
// representing one line of inline content.
//
// Invariant: every chunk's Index equals its zero-based position in the
// sequence at all times. Mutating operations re-index as needed.
type BlockSent struct {
	chunks []*BlockChunk
}

// NewSent creates a sentence from zero or more chunks or raw values.
// Raw values are auto-wrapped via [NewChunk].
func NewSent(values ...any) *BlockSent {
	s := &BlockSent{chunks: make([]*BlockChunk, 0, len(values))}
	for _, v := range values {
		s.Append(v)
	}
	return s
}

// Len returns the number of chunks.
func (s *BlockSent) Len() int {
	return len(s.chunks)
}

// At returns the chunk at position i.
func (s *BlockSent) At(i int) *BlockChunk {
	return s.chunks[i]
}

// Chunks returns the underlying chunk slice. The slice must not be
// reordered by the caller; use Append/Prepend/Extend instead.
func (s *BlockSent) Chunks() []*BlockChunk {
	return s.chunks
}

// Append adds a chunk (or auto-wrapped raw value) at the end of the
// sentence. Only the new chunk is assigned an index; existing chunks are
// untouched.
func (s *BlockSent) Append(v any) *BlockSent {
	c := asChunk(v)
	c.index = len(s.chunks)
	s.chunks = append(s.chunks, c)
	return s
}

// Prepend inserts a chunk (or auto-wrapped raw value) at position 0.
// Every existing chunk shifts one position, so the whole sequence is
// re-indexed.
func (s *BlockSent) Prepend(v any) *BlockSent {
	c := asChunk(v)
	s.chunks = append([]*BlockChunk{c}, s.chunks...)
	s.reindex()
	return s
}

// Extend appends a copy of every chunk of other to this sentence in place,
// re-indexing the appended copies. The other sentence is not mutated:
// appending the shared pointers would rewrite their indices under it.
func (s *BlockSent) Extend(other *BlockSent) *BlockSent {
	for _, c := range other.chunks {
		s.Append(c.Clone())
	}
	return s
}

// Concat returns a new sentence holding copies of this sentence's chunks
// followed by copies of other's chunks, fully re-indexed. Neither operand
// is mutated.
func (s *BlockSent) Concat(other *BlockSent) *BlockSent {
	out := &BlockSent{chunks: make([]*BlockChunk, 0, len(s.chunks)+len(other.chunks))}
	for _, c := range s.chunks {
		out.Append(c.Clone())
	}
	for _, c := range other.chunks {
		out.Append(c.Clone())
	}
	return out
}

// Prefixed returns a new sentence with the given chunk at index 0 followed
// by copies of this sentence's chunks, re-indexed. Neither the chunk nor
// the sentence is mutated.
func (s *BlockSent) Prefixed(c *BlockChunk) *BlockSent {
	out := NewSent()
	out.Append(c.Clone())
	for _, ch := range s.chunks {
		out.Append(ch.Clone())
	}
	return out
}

// Pairs iterates (separator, chunk) in order. The separator is empty for
// the first chunk and [Separator] for every subsequent one, so joining
// separator+content over the iteration yields the sentence without a
// trailing separator.
func (s *BlockSent) Pairs() iter.Seq2[string, *BlockChunk] {
	return func(yield func(string, *BlockChunk) bool) {
		for i, c := range s.chunks {
			sep := Separator
			if i == 0 {
				sep = ""
			}
			if !yield(sep, c) {
				return
			}
		}
	}
}

// Render joins every chunk's content followed by the separator, including
// after the last chunk. The trailing separator is a deliberate, contract
// level behavior relied on by streaming concatenation:
//
//	NewSent("hello", "world", "!").Render() == "hello world ! "
func (s *BlockSent) Render() string {
	var sb strings.Builder
	for _, c := range s.chunks {
		sb.WriteString(c.Text())
		sb.WriteString(Separator)
	}
	return sb.String()
}

// Inline joins chunk contents with the separator between them, without the
// trailing separator. Used for head content when a block is rendered.
func (s *BlockSent) Inline() string {
	var sb strings.Builder
	for sep, c := range s.Pairs() {
		sb.WriteString(sep)
		sb.WriteString(c.Text())
	}
	return sb.String()
}

// IsEmpty reports whether the sentence has no chunks with visible content.
func (s *BlockSent) IsEmpty() bool {
	for _, c := range s.chunks {
		if c.Text() != "" {
			return false
		}
	}
	return true
}

// Logprob returns the sum of all chunk log-probabilities.
func (s *BlockSent) Logprob() float64 {
	total := 0.0
	for _, c := range s.chunks {
		total += c.logprob
	}
	return total
}

// Clone returns a deep copy of the sentence.
func (s *BlockSent) Clone() *BlockSent {
	out := &BlockSent{chunks: make([]*BlockChunk, 0, len(s.chunks))}
	for _, c := range s.chunks {
		out.Append(c.Clone())
	}
	return out
}

func (s *BlockSent) reindex() {
	for i, c := range s.chunks {
		c.index = i
	}
}

// asChunk promotes a raw value to a chunk, passing chunks through as-is.
func asChunk(v any) *BlockChunk {
	if c, ok := v.(*BlockChunk); ok {
		return c
	}
	return NewChunk(v)
}
