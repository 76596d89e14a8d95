package memcache

import (
	"sync"
	"time"
)

// Store is a small in-process key/value store with per-entry expiry. Entries
// carry an absolute deadline and, optionally, a sliding window: a read
// extends the entry's life by the sliding window, but never beyond the
// absolute deadline. Expired entries are dropped lazily on access.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

type entry struct {
	value      interface{}
	expiresAt  time.Time
	absoluteAt time.Time
	sliding    time.Duration
}

func New() *Store {
	return &Store{
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// SetNowFunc overrides the store's clock. Intended for tests.
func (s *Store) SetNowFunc(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}

// Set stores a value with an absolute time to live.
func (s *Store) Set(key string, value interface{}, ttl time.Duration) {
	s.SetWithSliding(key, value, ttl, 0)
}

// SetWithSliding stores a value with an absolute time to live and a sliding
// window. With a zero sliding window the entry simply lives until the
// absolute deadline.
func (s *Store) SetWithSliding(key string, value interface{}, absolute, sliding time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	absoluteAt := now.Add(absolute)

	expiresAt := absoluteAt
	if sliding > 0 && now.Add(sliding).Before(absoluteAt) {
		expiresAt = now.Add(sliding)
	}

	s.entries[key] = &entry{
		value:      value,
		expiresAt:  expiresAt,
		absoluteAt: absoluteAt,
		sliding:    sliding,
	}
}

func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}

	now := s.now()
	if !now.Before(e.expiresAt) {
		delete(s.entries, key)
		return nil, false
	}

	if e.sliding > 0 {
		extended := now.Add(e.sliding)
		if extended.After(e.absoluteAt) {
			extended = e.absoluteAt
		}
		e.expiresAt = extended
	}

	return e.value, true
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}
