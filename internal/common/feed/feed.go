// Package feed is the live-snapshot subscription primitive behind the
// dashboard widgets. Writers publish the full current snapshot after every
// mutation; subscribers get each snapshot in turn plus an explicit
// unsubscribe handle.
package feed

import "sync"

// Event carries either a full snapshot or a subscription error, never both.
type Event[T any] struct {
	Snapshot T
	Err      error
}

type Handler[T any] func(Event[T])

type Feed[T any] struct {
	mu   sync.Mutex
	subs map[int]Handler[T]
	next int
}

func New[T any]() *Feed[T] {
	return &Feed[T]{subs: make(map[int]Handler[T])}
}

// Subscribe registers h and returns its unsubscribe handle. Unsubscribing
// twice is harmless.
func (f *Feed[T]) Subscribe(h Handler[T]) func() {
	f.mu.Lock()
	id := f.next
	f.next++
	f.subs[id] = h
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// Publish fans the snapshot out to every current subscriber.
func (f *Feed[T]) Publish(snapshot T) {
	for _, h := range f.handlers() {
		h(Event[T]{Snapshot: snapshot})
	}
}

// Fail delivers err to every subscriber and then drops them all: a failed
// subscription stays silent until the consumer subscribes again.
func (f *Feed[T]) Fail(err error) {
	handlers := f.handlers()
	f.mu.Lock()
	f.subs = make(map[int]Handler[T])
	f.mu.Unlock()
	for _, h := range handlers {
		h(Event[T]{Err: err})
	}
}

func (f *Feed[T]) handlers() []Handler[T] {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Handler[T], 0, len(f.subs))
	for _, h := range f.subs {
		out = append(out, h)
	}
	return out
}
