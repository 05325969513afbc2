// Package buffer provides the unbounded queue backing chunk streams.
package buffer

import (
	"sync"
)

// Unbounded is a queue with non-blocking sends and unlimited capacity.
// A token producer can push at wire speed while the tree builder drains
// at its own pace; the producer never blocks on a slow consumer.
//
// Usage:
//
//	buf := buffer.NewUnbounded[*StreamEvent]()
//	go func() {
//	    for ev := range buf.Receive() {
//	        // consume ev
//	    }
//	}()
//	buf.Send(ev1) // never blocks
//	buf.Send(ev2) // never blocks
//	buf.Close()   // closes the receive channel after draining
type Unbounded[T any] struct {
	mu     sync.Mutex
	items  []T
	cond   *sync.Cond
	closed bool
	out    chan T
}

// NewUnbounded creates an open buffer ready to receive items via Send.
func NewUnbounded[T any]() *Unbounded[T] {
	b := &Unbounded[T]{
		items: make([]T, 0, 64),
		out:   make(chan T, 1),
	}
	b.cond = sync.NewCond(&b.mu)
	go b.drainLoop()
	return b
}

// drainLoop moves items from the internal queue to the output channel
// until the buffer is closed and everything queued has been delivered.
func (b *Unbounded[T]) drainLoop() {
	for {
		item, ok := b.dequeue()
		if !ok {
			close(b.out)
			return
		}
		b.out <- item
	}
}

// dequeue blocks until an item is available or the buffer is closed.
// Returns (zero, false) once closed and empty.
func (b *Unbounded[T]) dequeue() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for len(b.items) == 0 && !b.closed {
		b.cond.Wait()
	}

	if len(b.items) == 0 {
		var zero T
		return zero, false
	}

	item := b.items[0]
	b.items = b.items[1:]
	return item, true
}

// Send queues an item without ever blocking. Safe from any goroutine.
// Items sent after Close are silently dropped.
func (b *Unbounded[T]) Send(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.items = append(b.items, item)
	b.cond.Signal()
}

// Receive returns the channel items are delivered on. The channel
// closes after Close, once all queued items are drained.
func (b *Unbounded[T]) Receive() <-chan T {
	return b.out
}

// Close marks the buffer closed. Safe to call more than once.
func (b *Unbounded[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	b.cond.Signal()
}

// Len reports the number of queued, undelivered items.
func (b *Unbounded[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// IsClosed reports whether Close has been called.
func (b *Unbounded[T]) IsClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
