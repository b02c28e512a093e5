package memory

import (
	"context"
	"sync"

	"asthmacare/internal/domain/profiles"
)

type ProfileRepository struct {
	mu      sync.RWMutex
	byOwner map[string]profiles.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{byOwner: map[string]profiles.Profile{}}
}

func (r *ProfileRepository) Create(_ context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOwner[p.OwnerUserID]; ok {
		return profiles.ErrDuplicate
	}
	r.byOwner[p.OwnerUserID] = p
	return nil
}

func (r *ProfileRepository) GetByOwner(_ context.Context, ownerUserID string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byOwner[ownerUserID]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

func (r *ProfileRepository) Update(_ context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOwner[p.OwnerUserID]; !ok {
		return profiles.ErrNotFound
	}
	r.byOwner[p.OwnerUserID] = p
	return nil
}

func (r *ProfileRepository) Delete(_ context.Context, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOwner[ownerUserID]; !ok {
		return profiles.ErrNotFound
	}
	delete(r.byOwner, ownerUserID)
	return nil
}
