package medications

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, ownerUserID, id string) (Medication, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Medication, error)
	Update(ctx context.Context, m Medication) error
	Delete(ctx context.Context, ownerUserID, id string) error

	CreateEvent(ctx context.Context, e Event) error
	ListEventsByOwner(ctx context.Context, ownerUserID string, filter EventFilter) ([]Event, error)
}

type EventFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
