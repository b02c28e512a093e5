package memory

import (
	"context"
	"sort"
	"sync"

	"asthmacare/internal/domain/appointments"
)

type AppointmentRepository struct {
	mu    sync.RWMutex
	items map[string]appointments.Appointment
}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{items: map[string]appointments.Appointment{}}
}

func (r *AppointmentRepository) Create(_ context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[a.ID] = a
	return nil
}

func (r *AppointmentRepository) GetByID(_ context.Context, ownerUserID, id string) (appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok || a.OwnerUserID != ownerUserID {
		return appointments.Appointment{}, ErrNotFound
	}
	return a, nil
}

func (r *AppointmentRepository) ListByOwner(_ context.Context, ownerUserID string, filter appointments.ListFilter) ([]appointments.Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []appointments.Appointment
	for _, a := range r.items {
		if a.OwnerUserID != ownerUserID {
			continue
		}
		if len(filter.Statuses) > 0 && !statusIn(a.Status, filter.Statuses) {
			continue
		}
		if filter.From != nil && a.ScheduledAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && a.ScheduledAt.After(*filter.To) {
			continue
		}
		out = append(out, a)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *AppointmentRepository) Update(_ context.Context, a appointments.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev, ok := r.items[a.ID]
	if !ok || prev.OwnerUserID != a.OwnerUserID {
		return ErrNotFound
	}
	r.items[a.ID] = a
	return nil
}

func statusIn(s appointments.Status, list []appointments.Status) bool {
	for _, st := range list {
		if st == s {
			return true
		}
	}
	return false
}
