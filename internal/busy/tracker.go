// Package busy tracks whether any asynchronous unit of work is in flight.
package busy

import (
	"context"
	"sync"
)

// Tracker is a reference-counted busy flag. It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	inflight  int
	observers []func(busy bool)
}

// New returns an idle tracker.
func New() *Tracker {
	return &Tracker{}
}

// Begin marks one unit of work as started. The returned release func ends
// it; calling release more than once has no further effect.
func (t *Tracker) Begin() (release func()) {
	t.mu.Lock()
	t.inflight++
	edge := t.inflight == 1
	observers := t.snapshotObservers(edge)
	t.mu.Unlock()

	notify(observers, true)

	var once sync.Once
	return func() {
		once.Do(t.end)
	}
}

func (t *Tracker) end() {
	t.mu.Lock()
	if t.inflight == 0 {
		t.mu.Unlock()
		return
	}
	t.inflight--
	edge := t.inflight == 0
	observers := t.snapshotObservers(edge)
	t.mu.Unlock()

	notify(observers, false)
}

// Track runs fn as one unit of work. The unit ends on every exit path of fn,
// panics included.
func (t *Tracker) Track(ctx context.Context, fn func(ctx context.Context) error) error {
	release := t.Begin()
	defer release()
	return fn(ctx)
}

// IsBusy reports whether at least one unit is in flight.
func (t *Tracker) IsBusy() bool {
	return t.Inflight() > 0
}

// Inflight returns the number of outstanding units.
func (t *Tracker) Inflight() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.inflight
}

// OnChange registers fn to be called on every idle->busy and busy->idle
// edge, synchronously from the goroutine that caused it.
func (t *Tracker) OnChange(fn func(busy bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, fn)
}

func (t *Tracker) snapshotObservers(edge bool) []func(bool) {
	if !edge || len(t.observers) == 0 {
		return nil
	}
	return append([]func(bool){}, t.observers...)
}

func notify(observers []func(bool), busy bool) {
	for _, fn := range observers {
		fn(busy)
	}
}
