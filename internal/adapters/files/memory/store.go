// Package memory implementa files.Store en memoria, para desarrollo
// y tests.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"asthmacare/internal/ports/files"
)

type Store struct {
	mu      sync.RWMutex
	objects map[string]files.Object
}

func NewStore() *Store {
	return &Store{objects: map[string]files.Object{}}
}

func (s *Store) Upload(_ context.Context, obj files.Object) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Path] = obj
	return nil
}

func (s *Store) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return files.ErrNotFound
	}
	delete(s.objects, path)
	return nil
}

func (s *Store) SignedURL(_ context.Context, path string, expiry time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.objects[path]; !ok {
		return "", files.ErrNotFound
	}
	return fmt.Sprintf("memory://%s?expires_in=%d", path, int(expiry.Seconds())), nil
}

// Get existe para asserts en tests.
func (s *Store) Get(path string) (files.Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[path]
	return obj, ok
}
