// Package store holds the client-side state containers. Each container owns
// its in-memory collection outright: nothing else mutates it, readers get
// copies, and every mutation is announced to subscribers so dependent views
// (and the syncer) can react.
package store

import "sync"

// Op identifies what a mutation did.
type Op int

const (
	OpAdd Op = iota
	OpUpdate
	OpDelete
)

// Event describes a single container mutation.
type Event struct {
	Op Op
	ID string
}

// notifier fans mutation events out to subscribers. Callbacks run on the
// mutating goroutine, after the container lock has been released.
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Event)
}

// Subscribe registers fn for mutation events and returns a cancel func.
func (n *notifier) Subscribe(fn func(Event)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(Event))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) publish(e Event) {
	n.mu.Lock()
	fns := make([]func(Event), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(e)
	}
}
