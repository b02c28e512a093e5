package profiles

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("profile not found")
	ErrDuplicate = errors.New("profile already exists")
)

// Repository: un profile por owner (owner_user_id único).
type Repository interface {
	Create(ctx context.Context, p Profile) error
	GetByOwner(ctx context.Context, ownerUserID string) (Profile, error)
	Update(ctx context.Context, p Profile) error
	Delete(ctx context.Context, ownerUserID string) error
}
