package memory

import (
	"context"
	"sort"
	"sync"

	"asthmacare/internal/domain/reports"
)

type ReportRepository struct {
	mu    sync.RWMutex
	items map[string]reports.HealthReport
}

func NewReportRepository() *ReportRepository {
	return &ReportRepository{items: map[string]reports.HealthReport{}}
}

func (r *ReportRepository) Create(_ context.Context, rep reports.HealthReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[rep.ID] = rep
	return nil
}

func (r *ReportRepository) GetByID(_ context.Context, ownerUserID, id string) (reports.HealthReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.items[id]
	if !ok || rep.OwnerUserID != ownerUserID {
		return reports.HealthReport{}, ErrNotFound
	}
	return rep, nil
}

func (r *ReportRepository) ListByOwner(_ context.Context, ownerUserID string, limit int) ([]reports.HealthReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []reports.HealthReport
	for _, rep := range r.items {
		if rep.OwnerUserID == ownerUserID {
			out = append(out, rep)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
