package contacts

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

type CreateInput struct {
	Name         string
	Phone        string
	Relationship string
	IsPrimary    bool
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (EmergencyContact, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return EmergencyContact{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		return EmergencyContact{}, ErrInvalidInput
	}

	if in.IsPrimary {
		if err := s.repo.ClearPrimary(ctx, ownerUserID); err != nil {
			return EmergencyContact{}, err
		}
	}

	now := s.now()
	c := EmergencyContact{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Relationship: strings.TrimSpace(in.Relationship),
		IsPrimary:    in.IsPrimary,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return EmergencyContact{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, ownerUserID, id string) (EmergencyContact, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return EmergencyContact{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, ownerUserID, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]EmergencyContact, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// UpdateInput usa punteros para distinguir "no enviado" de "vaciar".
type UpdateInput struct {
	Name         *string
	Phone        *string
	Relationship *string
	IsPrimary    *bool
}

func (s *Service) Update(ctx context.Context, ownerUserID, id string, in UpdateInput) (EmergencyContact, error) {
	c, err := s.GetByID(ctx, ownerUserID, id)
	if err != nil {
		return EmergencyContact{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return EmergencyContact{}, ErrInvalidInput
		}
		c.Name = strings.TrimSpace(*in.Name)
	}
	if in.Phone != nil {
		if strings.TrimSpace(*in.Phone) == "" {
			return EmergencyContact{}, ErrInvalidInput
		}
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Relationship != nil {
		c.Relationship = strings.TrimSpace(*in.Relationship)
	}
	if in.IsPrimary != nil {
		if *in.IsPrimary && !c.IsPrimary {
			if err := s.repo.ClearPrimary(ctx, ownerUserID); err != nil {
				return EmergencyContact{}, err
			}
		}
		c.IsPrimary = *in.IsPrimary
	}

	c.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, c); err != nil {
		return EmergencyContact{}, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, ownerUserID, id)
}
