package project

import (
	"slices"
	"sync"
)

// Notifier fans a refresh signal out to subscribers. It is safe for
// concurrent use.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

// NewNotifier returns a Notifier with no subscribers.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func())}
}

// Subscribe registers fn and returns a function that removes it again.
func (n *Notifier) Subscribe(fn func()) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()

		delete(n.subs, id)
	}
}

// Fire calls every subscriber in subscription order. Callbacks run on the
// caller's goroutine, outside the lock, so they may subscribe or cancel.
func (n *Notifier) Fire() {
	n.mu.Lock()

	ids := make([]int, 0, len(n.subs))
	for id := range n.subs {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, n.subs[id])
	}

	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
