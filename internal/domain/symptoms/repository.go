package symptoms

import (
	"context"
	"time"
)

// Repository siempre recibe ownerUserID: no existe lectura sin scope
// de owner para este tipo de registro.
type Repository interface {
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, ownerUserID, id string) (Entry, error)
	ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Entry, error)
	UpdateNotes(ctx context.Context, ownerUserID, id, notes string, updatedAt time.Time) error
}

type ListFilter struct {
	From  *time.Time
	To    *time.Time
	Limit int
}
