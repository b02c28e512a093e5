package memory

import (
	"context"
	"sort"
	"sync"

	"asthmacare/internal/domain/medications"
)

type MedicationRepository struct {
	mu     sync.RWMutex
	meds   map[string]medications.Medication
	events map[string]medications.Event
}

func NewMedicationRepository() *MedicationRepository {
	return &MedicationRepository{
		meds:   map[string]medications.Medication{},
		events: map[string]medications.Event{},
	}
}

func (r *MedicationRepository) Create(_ context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meds[m.ID] = m
	return nil
}

func (r *MedicationRepository) GetByID(_ context.Context, ownerUserID, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.meds[id]
	if !ok || m.OwnerUserID != ownerUserID {
		return medications.Medication{}, ErrNotFound
	}
	return m, nil
}

func (r *MedicationRepository) ListByOwner(_ context.Context, ownerUserID string) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []medications.Medication
	for _, m := range r.meds {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MedicationRepository) Update(_ context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.meds[m.ID]
	if !ok || prev.OwnerUserID != m.OwnerUserID {
		return ErrNotFound
	}
	r.meds[m.ID] = m
	return nil
}

func (r *MedicationRepository) Delete(_ context.Context, ownerUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meds[id]
	if !ok || m.OwnerUserID != ownerUserID {
		return ErrNotFound
	}
	delete(r.meds, id)
	return nil
}

func (r *MedicationRepository) CreateEvent(_ context.Context, e medications.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[e.ID] = e
	return nil
}

func (r *MedicationRepository) ListEventsByOwner(_ context.Context, ownerUserID string, filter medications.EventFilter) ([]medications.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []medications.Event
	for _, e := range r.events {
		if e.OwnerUserID != ownerUserID {
			continue
		}
		if filter.From != nil && e.TakenAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && e.TakenAt.After(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].TakenAt.After(out[j].TakenAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
