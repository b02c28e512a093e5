package reports

import "context"

type Repository interface {
	Create(ctx context.Context, r HealthReport) error
	GetByID(ctx context.Context, ownerUserID, id string) (HealthReport, error)
	ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]HealthReport, error)
}
