package memory

import (
	"context"
	"sort"
	"sync"

	"asthmacare/internal/domain/doctors"
)

type DoctorRepository struct {
	mu      sync.RWMutex
	byOwner map[string]doctors.DoctorProfile
}

func NewDoctorRepository() *DoctorRepository {
	return &DoctorRepository{byOwner: map[string]doctors.DoctorProfile{}}
}

func (r *DoctorRepository) Upsert(_ context.Context, d doctors.DoctorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byOwner[d.OwnerUserID] = d
	return nil
}

func (r *DoctorRepository) GetByOwner(_ context.Context, ownerUserID string) (doctors.DoctorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byOwner[ownerUserID]
	if !ok {
		return doctors.DoctorProfile{}, doctors.ErrNotFound
	}
	return d, nil
}

func (r *DoctorRepository) GetByID(_ context.Context, id string) (doctors.DoctorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.byOwner {
		if d.ID == id {
			return d, nil
		}
	}
	return doctors.DoctorProfile{}, doctors.ErrNotFound
}

func (r *DoctorRepository) List(_ context.Context, filter doctors.ListFilter) ([]doctors.DoctorProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []doctors.DoctorProfile
	for _, d := range r.byOwner {
		if filter.Specialty != "" && d.Specialty != filter.Specialty {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].FullName < out[j].FullName
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *DoctorRepository) DeleteByOwner(_ context.Context, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byOwner[ownerUserID]; !ok {
		return doctors.ErrNotFound
	}
	delete(r.byOwner, ownerUserID)
	return nil
}
