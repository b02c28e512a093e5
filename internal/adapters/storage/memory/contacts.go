package memory

import (
	"context"
	"sort"
	"sync"

	"asthmacare/internal/domain/contacts"
)

type ContactRepository struct {
	mu    sync.RWMutex
	items map[string]contacts.EmergencyContact
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{items: map[string]contacts.EmergencyContact{}}
}

func (r *ContactRepository) Create(_ context.Context, c contacts.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID] = c
	return nil
}

func (r *ContactRepository) GetByID(_ context.Context, ownerUserID, id string) (contacts.EmergencyContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok || c.OwnerUserID != ownerUserID {
		return contacts.EmergencyContact{}, ErrNotFound
	}
	return c, nil
}

func (r *ContactRepository) ListByOwner(_ context.Context, ownerUserID string) ([]contacts.EmergencyContact, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []contacts.EmergencyContact
	for _, c := range r.items {
		if c.OwnerUserID == ownerUserID {
			out = append(out, c)
		}
	}
	// primario primero, después por creación
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsPrimary != out[j].IsPrimary {
			return out[i].IsPrimary
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *ContactRepository) Update(_ context.Context, c contacts.EmergencyContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.items[c.ID]
	if !ok || prev.OwnerUserID != c.OwnerUserID {
		return ErrNotFound
	}
	r.items[c.ID] = c
	return nil
}

func (r *ContactRepository) Delete(_ context.Context, ownerUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok || c.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *ContactRepository) ClearPrimary(_ context.Context, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.items {
		if c.OwnerUserID == ownerUserID && c.IsPrimary {
			c.IsPrimary = false
			r.items[id] = c
		}
	}
	return nil
}
