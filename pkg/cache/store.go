package cache

import (
	"errors"
	"sync"
)

var (
	// ErrCacheMiss indicates no entry is stored for the key
	ErrCacheMiss = errors.New("cache miss")

	// ErrInvalidEntry indicates the entry cannot be stored
	ErrInvalidEntry = errors.New("invalid cache entry")
)

// Store holds revalidation entries in memory. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]*Entry),
	}
}

// Get returns the entry stored for key.
// Returns ErrCacheMiss if nothing is stored.
func (s *Store) Get(key Key) (*Entry, error) {
	s.mu.RLock()
	entry, ok := s.entries[key.String()]
	s.mu.RUnlock()

	if !ok {
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.Inc()
	return entry, nil
}

// Set stores entry under key, replacing any previous entry.
// Entries without validators are useless for revalidation and are rejected.
func (s *Store) Set(key Key, entry *Entry) error {
	if entry == nil {
		return ErrInvalidEntry
	}
	if !entry.HasValidators() {
		return ErrInvalidEntry
	}

	s.mu.Lock()
	s.entries[key.String()] = entry
	CacheEntries.Set(float64(len(s.entries)))
	s.mu.Unlock()

	return nil
}

// Delete removes the entry stored for key.
func (s *Store) Delete(key Key) {
	s.mu.Lock()
	delete(s.entries, key.String())
	CacheEntries.Set(float64(len(s.entries)))
	s.mu.Unlock()
}

// Clear removes all entries.
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]*Entry)
	CacheEntries.Set(0)
	s.mu.Unlock()
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
