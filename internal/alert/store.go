package alert

import (
	"sync"
	"time"
)

// Store holds the current alert.
type Store struct {
	mu      sync.RWMutex
	current Alert
	gen     uint64
	timer   *time.Timer

	subs   map[uint64]func(Alert)
	nextID uint64

	// afterFunc schedules toast auto-clear; replaced in tests.
	afterFunc func(time.Duration, func()) *time.Timer
}

// NewStore creates an idle store.
func NewStore() *Store {
	idle := Defaults()
	idle.Show = false
	return &Store{
		current:   idle,
		subs:      make(map[uint64]func(Alert)),
		afterFunc: time.AfterFunc,
	}
}

// Current returns the current alert.
func (s *Store) Current() Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Set replaces the current alert with one built from opts and the defaults.
// A visible toast clears itself after its CloseDelay unless replaced first.
func (s *Store) Set(opts ...Option) {
	next := Build(opts...)

	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.current = next
	if next.Show && next.Toast && next.CloseDelay > 0 {
		s.timer = s.afterFunc(next.CloseDelay, func() { s.clearGen(gen) })
	}
	s.mu.Unlock()

	s.notify(next)
}

// Clear hides the current alert. Only Show changes.
// OnClose runs if the alert was visible.
func (s *Store) Clear() {
	s.mu.Lock()
	s.clearLocked()
}

// clearGen clears only if no newer alert was set since generation gen.
func (s *Store) clearGen(gen uint64) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.clearLocked()
}

// clearLocked expects s.mu held and releases it.
func (s *Store) clearLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	wasVisible := s.current.Show
	s.current.Show = false
	cur := s.current
	s.mu.Unlock()

	if wasVisible && cur.OnClose != nil {
		cur.OnClose()
	}
	s.notify(cur)
}

// Subscribe registers fn to receive the alert after every Set or Clear.
func (s *Store) Subscribe(fn func(Alert)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(a Alert) {
	s.mu.RLock()
	subs := make([]func(Alert), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(a)
	}
}
