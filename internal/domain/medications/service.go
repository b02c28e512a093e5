package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Dosage    string
	Frequency string
	Kind      Kind
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}

	kind := in.Kind
	if kind == "" {
		kind = KindOther
	}
	switch kind {
	case KindController, KindReliever, KindOther:
	default:
		return Medication{}, ErrInvalidInput
	}

	now := s.now()
	m := Medication{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Dosage:      strings.TrimSpace(in.Dosage),
		Frequency:   strings.TrimSpace(in.Frequency),
		Kind:        kind,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, ownerUserID, id string) (Medication, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, ownerUserID, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Medication, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	Dosage    *string
	Frequency *string
	Notes     *string
}

func (s *Service) Update(ctx context.Context, ownerUserID, id string, in UpdateInput) (Medication, error) {
	m, err := s.repo.GetByID(ctx, ownerUserID, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Medication{}, ErrInvalidInput
		}
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Dosage != nil {
		m.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Frequency != nil {
		m.Frequency = strings.TrimSpace(*in.Frequency)
	}
	if in.Notes != nil {
		m.Notes = strings.TrimSpace(*in.Notes)
	}
	m.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, ownerUserID, id)
}

type LogEventInput struct {
	MedicationID string
	Name         string
	Dosage       string
	TakenAt      time.Time
}

// LogEvent registra una toma. Si viene MedicationID y no Name,
// el nombre se resuelve desde el medicamento.
func (s *Service) LogEvent(ctx context.Context, ownerUserID string, in LogEventInput) (Event, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Event{}, ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	dosage := strings.TrimSpace(in.Dosage)

	if medID := strings.TrimSpace(in.MedicationID); medID != "" {
		m, err := s.repo.GetByID(ctx, ownerUserID, medID)
		if err != nil {
			return Event{}, err
		}
		if name == "" {
			name = m.Name
		}
		if dosage == "" {
			dosage = m.Dosage
		}
	}
	if name == "" {
		return Event{}, ErrInvalidInput
	}

	now := s.now()
	takenAt := in.TakenAt
	if takenAt.IsZero() {
		takenAt = now
	}

	e := Event{
		ID:           uuid.NewString(),
		OwnerUserID:  ownerUserID,
		MedicationID: strings.TrimSpace(in.MedicationID),
		Name:         name,
		Dosage:       dosage,
		TakenAt:      takenAt,
		CreatedAt:    now,
	}

	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return Event{}, err
	}
	return e, nil
}

func (s *Service) ListEvents(ctx context.Context, ownerUserID string, filter EventFilter) ([]Event, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListEventsByOwner(ctx, ownerUserID, filter)
}
