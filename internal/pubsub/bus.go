// Package pubsub provides a typed publish/subscribe bus.
//
// Publish never blocks: each subscriber owns an unbounded FIFO drained by its
// own goroutine (queue.Worker). A slow subscriber therefore delays only
// itself, and every subscriber sees messages in publication order.
package pubsub

import (
	"sync"

	"github.com/roach88/msgcore/internal/queue"
)

// Bus delivers every published value to every current subscriber.
type Bus[T any] struct {
	mu     sync.RWMutex
	subs   map[uint64]*queue.Worker[T]
	nextID uint64
	closed bool
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{subs: make(map[uint64]*queue.Worker[T])}
}

// Subscription is a handle returned by Subscribe.
type Subscription[T any] struct {
	bus *Bus[T]
	id  uint64
	w   *queue.Worker[T]
}

// Subscribe registers handler. Handler calls for one subscription never
// overlap. Subscribing to a closed bus returns a subscription that receives
// nothing.
func (b *Bus[T]) Subscribe(handler func(T)) *Subscription[T] {
	w := queue.NewWorker(handler)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		w.Close()
		return &Subscription[T]{bus: b, w: w}
	}
	b.nextID++
	b.subs[b.nextID] = w
	return &Subscription[T]{bus: b, id: b.nextID, w: w}
}

// Publish enqueues v for every subscriber and returns immediately.
// Returns the number of subscribers the value was queued for.
func (b *Bus[T]) Publish(v T) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for _, w := range b.subs {
		if w.Submit(v) {
			n++
		}
	}
	return n
}

// Close unsubscribes everyone. Values already queued are still delivered.
func (b *Bus[T]) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[uint64]*queue.Worker[T])
	b.closed = true
	b.mu.Unlock()

	for _, w := range subs {
		w.Close()
	}
}

// Close removes the subscription. Values already queued are still delivered.
func (s *Subscription[T]) Close() {
	s.bus.mu.Lock()
	delete(s.bus.subs, s.id)
	s.bus.mu.Unlock()
	s.w.Close()
}

// Done is closed once the subscription is closed and its queue drained.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.w.Done()
}
