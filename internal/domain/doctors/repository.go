package doctors

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("doctor profile not found")

type ListFilter struct {
	Specialty string
	Limit     int
}

type Repository interface {
	// Upsert crea el perfil si el owner no tiene uno, o lo reemplaza.
	Upsert(ctx context.Context, d DoctorProfile) error
	GetByOwner(ctx context.Context, ownerUserID string) (DoctorProfile, error)
	GetByID(ctx context.Context, id string) (DoctorProfile, error)
	List(ctx context.Context, filter ListFilter) ([]DoctorProfile, error)
	DeleteByOwner(ctx context.Context, ownerUserID string) error
}
