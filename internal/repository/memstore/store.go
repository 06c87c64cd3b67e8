// Package memstore is a map-backed domain.KeyValueStore.
package memstore

import (
	"context"
	"sync"

	"clubroster/internal/domain"
)

// Store keeps values in memory. FailWith makes every write fail, for tests.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
	writes int
	err    error
}

// New returns an empty Store.
func New() *Store {
	return &Store{values: make(map[string]string)}
}

// FailWith makes subsequent writes return err; nil restores normal behavior.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Writes counts successful Set and SetMany calls.
func (s *Store) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.values[key] = value
	s.writes++
	return nil
}

func (s *Store) SetMany(_ context.Context, entries ...domain.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, e := range entries {
		s.values[e.Key] = e.Value
	}
	s.writes++
	return nil
}

func (s *Store) Close() error { return nil }
