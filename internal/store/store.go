// Package store provides the process-wide keyed state container shared by
// all loaded modules.
//
// # Model
//
// The container maps a module name to an opaque slice value owned by that
// module. The container never inspects slice values; shape is enforced by each
// module's own accessor layer (see package modstate).
//
// # Snapshots
//
// Every write replaces the top-level mapping with a new map (copy-on-write).
// A State handed to a subscriber or returned by Snapshot is therefore never
// mutated afterwards and can be held and compared freely.
//
// # Concurrency
//
// The intended model is a single writer reacting to discrete events, with
// last-write-wins semantics. Writes are synchronous: subscribers are called
// in subscription order, after the write is committed and before the write
// call returns. A RWMutex keeps concurrent use memory-safe; subscribers may
// call back into the store.
package store

import (
	"sort"
	"sync"
)

// State is an immutable top-level snapshot: module name to slice value.
type State map[string]any

// Subscriber receives the whole updated mapping after each write.
type Subscriber func(State)

// Store is the global keyed state container.
type Store struct {
	mu     sync.RWMutex
	state  State
	subs   []subscription
	nextID uint64
}

type subscription struct {
	id uint64
	fn Subscriber
}

// New creates an empty container.
func New() *Store {
	return &Store{state: State{}}
}

var defaultStore = New()

// Default returns the process-wide container created at process start.
func Default() *Store {
	return defaultStore
}

// Get returns the slice stored under key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.state[key]
	return v, ok
}

// Snapshot returns the current top-level mapping. Callers must not mutate it.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Keys returns the keys currently present, sorted.
func (s *Store) Keys() []string {
	snap := s.Snapshot()
	keys := make([]string, 0, len(snap))
	for k := range snap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SetStateFor replaces the value under key wholesale.
func (s *Store) SetStateFor(key string, value any) {
	s.commit(func(next State) {
		next[key] = value
	})
}

// ResetStateFor removes key. Removing an absent key still notifies subscribers.
func (s *Store) ResetStateFor(key string) {
	s.commit(func(next State) {
		delete(next, key)
	})
}

// Update runs fn against the freshest value under key and stores the result,
// all under the write lock. It is the read-modify-write primitive used by
// per-module hooks.
func (s *Store) Update(key string, fn func(current any, ok bool) any) {
	s.commit(func(next State) {
		cur, ok := next[key]
		next[key] = fn(cur, ok)
	})
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Subscriber) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// commit copies the current mapping, applies mutate, publishes the copy and
// notifies subscribers outside the lock.
func (s *Store) commit(mutate func(next State)) {
	s.mu.Lock()
	next := make(State, len(s.state)+1)
	for k, v := range s.state {
		next[k] = v
	}
	mutate(next)
	s.state = next
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(next)
	}
}
