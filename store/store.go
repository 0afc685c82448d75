// Package store holds application state behind a commit-replace
// discipline: a single value, replaced only by reducer output, observed
// by subscribers in a total order. There is no error path — reducers
// are required to be total, and fallible transitions carry their error
// as state.
package store

import "sync"

// Action describes an intended state transition. Values must be
// treated as immutable by producers and the reducer alike. It is an
// alias so handler signatures elsewhere interchange freely with any.
type Action = any

// Reducer computes the next state from the current state and an
// action. It must be pure: no I/O, no mutation of its inputs.
type Reducer[S any] func(S, Action) S

// Subscriber is invoked once per committed transition with the new
// state. It receives the value after the commit is complete; dispatches
// it performs are queued behind the current cycle, never run inline.
type Subscriber[S any] func(S)

type subscription[S any] struct {
	id int
	fn Subscriber[S]
}

// Store owns one application state value. All mutation flows through
// Dispatch; reads take a snapshot via State.
type Store[S any] struct {
	mu      sync.Mutex
	state   S
	reducer Reducer[S]

	subs   []subscription[S]
	nextID int

	queue      []Action
	committing bool
}

// New creates a store with the initial state and reducer
func New[S any](initial S, reducer Reducer[S]) *Store[S] {
	return &Store[S]{
		state:   initial,
		reducer: reducer,
	}
}

// State returns the current state value
func (s *Store[S]) State() S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers a listener for committed transitions and returns
// its unsubscribe function. Listeners fire in registration order.
func (s *Store[S]) Subscribe(fn Subscriber[S]) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription[S]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch applies the action through the reducer and notifies
// subscribers. Reducer applications are totally ordered: no two run
// concurrently, and a dispatch issued from inside a subscriber is
// deferred until the current commit has been fully observed.
func (s *Store[S]) Dispatch(action Action) {
	s.mu.Lock()
	s.queue = append(s.queue, action)

	if s.committing {
		// A commit cycle is already draining the queue; it will pick
		// this action up in order
		s.mu.Unlock()
		return
	}
	s.committing = true

	for len(s.queue) > 0 {
		next := s.queue[0]
		s.queue = s.queue[1:]

		newState := s.reducer(s.state, next)
		s.state = newState

		// Snapshot subscribers so un/subscribe during notification is
		// safe; release the lock so listeners can read State and queue
		// further dispatches
		subs := make([]subscription[S], len(s.subs))
		copy(subs, s.subs)
		s.mu.Unlock()

		for _, sub := range subs {
			sub.fn(newState)
		}

		s.mu.Lock()
	}

	s.committing = false
	s.mu.Unlock()
}
