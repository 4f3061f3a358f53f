// Package store holds the client state, applies mutations to it and keeps a debounced copy of
// selected slices in a cache keyed by network and address.
package store

import (
	"fmt"
	"sync"
)

// Subscriber observes committed mutations. It runs while the store is locked and receives
// the state after the mutation; it must not commit.
type Subscriber func(mutation Mutation, state *State)

type subscription struct {
	id int
	fn Subscriber
}

type Store struct {
	mu          sync.RWMutex
	state       State
	subscribers []subscription
	nextID      int
}

func New(state State) *Store {
	return &Store{state: state}
}

// Commit applies a mutation and notifies subscribers. A failing mutation leaves the state unchanged.
func (s *Store) Commit(mutationType string, payload any) error {
	apply, ok := mutations[mutationType]
	if !ok {
		return fmt.Errorf("%s: %w", mutationType, ErrUnknownMutation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	if err := apply(&next, payload); err != nil {
		return err
	}
	s.state = next

	mutation := Mutation{Type: mutationType, Payload: payload}
	for _, sub := range s.subscribers {
		sub.fn(mutation, &s.state)
	}
	return nil
}

// Subscribe registers fn for all future commits and returns a function removing it again.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subscribers = append(s.subscribers, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// ReplaceState swaps the whole state without notifying subscribers.
func (s *Store) ReplaceState(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// MergePersisted overlays cached slices onto the current state without notifying subscribers.
func (s *Store) MergePersisted(cached Persisted) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Merge(cached)
	return s.state.Clone()
}
