package promptview

import (
	"io"
	"sync"
)

// StreamAccumulator folds streamed chunks into a sentence as they
// arrive. It is safe for the producer and an observer to touch
// concurrently, so a UI can show partial content mid-stream.
//
// Usage:
//
//	acc := NewStreamAccumulator()
//	if err := acc.Drain(Flatten(stream)); err != nil {
//	    return err
//	}
//	block.AppendContent(acc.Sentence())
type StreamAccumulator struct {
	mu   sync.Mutex
	sent *BlockSent
}

// NewStreamAccumulator creates an empty accumulator.
func NewStreamAccumulator() *StreamAccumulator {
	return &StreamAccumulator{sent: NewSent()}
}

// Add appends one chunk. Nil chunks are ignored so callers can feed
// events straight through without guarding.
func (a *StreamAccumulator) Add(c *BlockChunk) {
	if c == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sent.Append(c)
}

// Drain pulls s until io.EOF, adding every chunk event. Sub-stream
// events are skipped; flatten the stream first if nested chunks should
// be included.
func (a *StreamAccumulator) Drain(s Stream) error {
	for {
		ev, err := s.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		a.Add(ev.Chunk)
	}
}

// Sentence returns a snapshot of the accumulated sentence. The snapshot
// is a clone, so later chunks do not mutate it.
func (a *StreamAccumulator) Sentence() *BlockSent {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sent.Clone()
}

// Text returns the accumulated content so far, without the trailing
// separator.
func (a *StreamAccumulator) Text() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sent.Inline()
}

// Len returns the number of chunks accumulated so far.
func (a *StreamAccumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.sent.Len()
}

// Reset clears the accumulator for reuse.
func (a *StreamAccumulator) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sent = NewSent()
}
