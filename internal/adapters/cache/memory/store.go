// Package memory implementa airquality.Store en memoria.
package memory

import (
	"context"
	"sync"

	"asthmacare/internal/domain/airquality"
)

type Store struct {
	mu      sync.RWMutex
	entries map[string]airquality.Lookup
}

func NewStore() *Store {
	return &Store{entries: map[string]airquality.Lookup{}}
}

func (s *Store) Latest(_ context.Context, key string) (airquality.Lookup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.entries[key]
	if !ok {
		return airquality.Lookup{}, airquality.ErrNoEntry
	}
	return l, nil
}

func (s *Store) Put(_ context.Context, l airquality.Lookup) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[l.Key] = l
	return nil
}
