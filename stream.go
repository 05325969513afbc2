package promptview

import (
	"io"

	"github.com/promptview/promptview/internal/buffer"
)

// StreamEvent is one item pulled from a chunk stream. Exactly one of
// Chunk or Sub is set: a content chunk, or the start of a nested
// sub-stream whose events belong between this block's chunks.
type StreamEvent struct {
	Chunk *BlockChunk
	Sub   Stream
}

// Stream is a strictly sequential pull source of chunk events. At most
// one Next call may be outstanding at a time; there is no fan-out. Next
// returns io.EOF when the stream is exhausted. Close releases the
// producer side and is safe to call more than once.
type Stream interface {
	Next() (*StreamEvent, error)
	Close() error
}

// ---------------------------------------------------------------------------
// Buffered stream
// ---------------------------------------------------------------------------

// BufferStream is a Stream with an unbounded producer side: Send never
// blocks, regardless of how slowly the consumer pulls. A model callback
// can push tokens at wire speed while the tree builder drains at its
// own pace.
type BufferStream struct {
	buf *buffer.Unbounded[*StreamEvent]
}

// NewBufferStream creates an open buffered stream.
func NewBufferStream() *BufferStream {
	return &BufferStream{buf: buffer.NewUnbounded[*StreamEvent]()}
}

// Send queues one chunk. Sends after Close are dropped.
func (s *BufferStream) Send(c *BlockChunk) {
	s.buf.Send(&StreamEvent{Chunk: c})
}

// SendText queues a text chunk.
func (s *BufferStream) SendText(text string) {
	s.Send(NewChunk(text))
}

// SendSub queues the start of a nested stream. Consumers flattening
// this stream drain sub fully before pulling the next event here.
func (s *BufferStream) SendSub(sub Stream) {
	s.buf.Send(&StreamEvent{Sub: sub})
}

// Next implements Stream. It blocks until an event is queued or the
// stream is closed and drained.
func (s *BufferStream) Next() (*StreamEvent, error) {
	ev, ok := <-s.buf.Receive()
	if !ok {
		return nil, io.EOF
	}
	return ev, nil
}

// Close implements Stream. Queued events remain readable; Next returns
// io.EOF once they are drained.
func (s *BufferStream) Close() error {
	s.buf.Close()
	return nil
}

var _ Stream = (*BufferStream)(nil)

// ---------------------------------------------------------------------------
// Slice stream
// ---------------------------------------------------------------------------

// sliceStream replays a fixed set of events. Used by tests and by
// callers that already hold the full chunk sequence.
type sliceStream struct {
	events []*StreamEvent
	pos    int
	closed bool
}

// NewSliceStream returns a Stream that yields the given events in order.
func NewSliceStream(events ...*StreamEvent) Stream {
	return &sliceStream{events: events}
}

// NewChunkStream returns a Stream yielding one chunk per value, with
// raw values promoted the same way sentence construction promotes them.
func NewChunkStream(values ...any) Stream {
	events := make([]*StreamEvent, len(values))
	for i, v := range values {
		events[i] = &StreamEvent{Chunk: asChunk(v)}
	}
	return NewSliceStream(events...)
}

func (s *sliceStream) Next() (*StreamEvent, error) {
	if s.closed || s.pos >= len(s.events) {
		return nil, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}

func (s *sliceStream) Close() error {
	s.closed = true
	return nil
}

// ---------------------------------------------------------------------------
// Depth-first flatten
// ---------------------------------------------------------------------------

// flattenStream drains nested sub-streams eagerly: when an event opens
// a sub-stream, every event of the sub-stream (recursively) is yielded
// before the parent resumes. The result is a depth-first walk over a
// tree of streams, never an interleaving.
type flattenStream struct {
	stack []Stream
}

// Flatten wraps s so that nested sub-streams are inlined depth first.
// The returned stream yields chunk events only. Closing it closes every
// stream still on the drain stack, innermost first.
func Flatten(s Stream) Stream {
	return &flattenStream{stack: []Stream{s}}
}

func (f *flattenStream) Next() (*StreamEvent, error) {
	for len(f.stack) > 0 {
		top := f.stack[len(f.stack)-1]
		ev, err := top.Next()
		if err == io.EOF {
			f.stack = f.stack[:len(f.stack)-1]
			continue
		}
		if err != nil {
			return nil, err
		}
		if ev.Sub != nil {
			f.stack = append(f.stack, ev.Sub)
			continue
		}
		return ev, nil
	}
	return nil, io.EOF
}

func (f *flattenStream) Close() error {
	var first error
	for i := len(f.stack) - 1; i >= 0; i-- {
		if err := f.stack[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	f.stack = nil
	return first
}
