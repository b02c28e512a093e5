package appointments

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a Appointment) error
	GetByID(ctx context.Context, ownerUserID, id string) (Appointment, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Appointment, error)
	Update(ctx context.Context, a Appointment) error
}

type ListFilter struct {
	Statuses []Status
	From     *time.Time
	To       *time.Time
	Limit    int
}
