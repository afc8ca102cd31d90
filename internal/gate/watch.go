package gate

import (
	"sync"

	"taskdesk/internal/session"
)

// Watch re-evaluates the decision for d on every session change and calls fn
// whenever it differs from the previous one. fn is called once immediately
// with the current decision.
func Watch(store *session.Store, d Descriptor, fn func(Decision)) (stop func()) {
	var (
		mu   sync.Mutex
		last Decision
	)
	emit := func(s session.Snapshot) {
		next := Decide(s, d)
		mu.Lock()
		changed := next != last
		last = next
		mu.Unlock()
		if changed {
			fn(next)
		}
	}

	stop = store.Subscribe(emit)
	emit(store.Snapshot())
	return stop
}
