package doctors

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type UpsertInput struct {
	FullName   string
	Specialty  string
	ClinicName string
	Phone      string
	Email      string
	Bio        string
}

// Upsert crea o reemplaza el perfil del doctor. Conserva ID y
// CreatedAt si ya existía uno para el owner.
func (s *Service) Upsert(ctx context.Context, ownerUserID string, in UpsertInput) (DoctorProfile, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return DoctorProfile{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Specialty) == "" {
		return DoctorProfile{}, ErrInvalidInput
	}

	now := s.now()
	d := DoctorProfile{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		FullName:    strings.TrimSpace(in.FullName),
		Specialty:   strings.TrimSpace(in.Specialty),
		ClinicName:  strings.TrimSpace(in.ClinicName),
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Bio:         strings.TrimSpace(in.Bio),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if prev, err := s.repo.GetByOwner(ctx, ownerUserID); err == nil {
		d.ID = prev.ID
		d.CreatedAt = prev.CreatedAt
	} else if !errors.Is(err, ErrNotFound) {
		return DoctorProfile{}, err
	}

	if err := s.repo.Upsert(ctx, d); err != nil {
		return DoctorProfile{}, err
	}
	return d, nil
}

func (s *Service) GetByOwner(ctx context.Context, ownerUserID string) (DoctorProfile, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return DoctorProfile{}, ErrInvalidInput
	}
	return s.repo.GetByOwner(ctx, ownerUserID)
}

func (s *Service) GetByID(ctx context.Context, id string) (DoctorProfile, error) {
	if strings.TrimSpace(id) == "" {
		return DoctorProfile{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

// List devuelve el directorio, opcionalmente filtrado por especialidad.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]DoctorProfile, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	filter.Specialty = strings.TrimSpace(filter.Specialty)
	return s.repo.List(ctx, filter)
}

func (s *Service) DeleteByOwner(ctx context.Context, ownerUserID string) error {
	if strings.TrimSpace(ownerUserID) == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByOwner(ctx, ownerUserID)
}
