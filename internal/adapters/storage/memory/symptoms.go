package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"asthmacare/internal/domain/symptoms"
)

type SymptomRepository struct {
	mu    sync.RWMutex
	items map[string]symptoms.Entry
}

func NewSymptomRepository() *SymptomRepository {
	return &SymptomRepository{items: map[string]symptoms.Entry{}}
}

func (r *SymptomRepository) Create(_ context.Context, e symptoms.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[e.ID] = e
	return nil
}

func (r *SymptomRepository) GetByID(_ context.Context, ownerUserID, id string) (symptoms.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.items[id]
	if !ok || e.OwnerUserID != ownerUserID {
		return symptoms.Entry{}, ErrNotFound
	}
	return e, nil
}

func (r *SymptomRepository) ListByOwner(_ context.Context, ownerUserID string, filter symptoms.ListFilter) ([]symptoms.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []symptoms.Entry
	for _, e := range r.items {
		if e.OwnerUserID != ownerUserID {
			continue
		}
		if filter.From != nil && e.RecordedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.RecordedAt.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}

	// más recientes primero
	sort.Slice(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *SymptomRepository) UpdateNotes(_ context.Context, ownerUserID, id, notes string, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.items[id]
	if !ok || e.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	e.Notes = notes
	e.UpdatedAt = updatedAt
	r.items[id] = e
	return nil
}
