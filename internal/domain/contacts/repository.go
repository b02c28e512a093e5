package contacts

import "context"

type Repository interface {
	Create(ctx context.Context, c EmergencyContact) error
	GetByID(ctx context.Context, ownerUserID, id string) (EmergencyContact, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]EmergencyContact, error)
	Update(ctx context.Context, c EmergencyContact) error
	Delete(ctx context.Context, ownerUserID, id string) error
	// ClearPrimary desmarca el contacto primario actual del owner, si existe.
	ClearPrimary(ctx context.Context, ownerUserID string) error
}
