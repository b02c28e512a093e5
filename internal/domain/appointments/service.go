package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"asthmacare/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrBadState     = errors.New("invalid status transition")
)

// Notifier despacha avisos best-effort (en runtime, el service de
// notifications). Un fallo nunca afecta el resultado primario.
type Notifier interface {
	Notify(ctx context.Context, ownerUserID, kind, title, body string) error
}

type Service struct {
	repo     Repository
	notifier Notifier
	log      logger.Logger
	now      func() time.Time
}

func NewService(repo Repository, notifier Notifier, log logger.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

type CreateInput struct {
	DoctorID    string
	DoctorName  string
	ScheduledAt time.Time
	Reason      string
	Notes       string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Appointment, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Appointment{}, ErrInvalidInput
	}
	if in.ScheduledAt.IsZero() {
		return Appointment{}, ErrInvalidInput
	}

	now := s.now()
	a := Appointment{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		DoctorID:    strings.TrimSpace(in.DoctorID),
		DoctorName:  strings.TrimSpace(in.DoctorName),
		ScheduledAt: in.ScheduledAt,
		Reason:      strings.TrimSpace(in.Reason),
		Notes:       strings.TrimSpace(in.Notes),
		Status:      StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, ownerUserID, id string) (Appointment, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return Appointment{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, ownerUserID, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Appointment, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID, filter)
}

func (s *Service) Confirm(ctx context.Context, ownerUserID, id string) (Appointment, error) {
	return s.transition(ctx, ownerUserID, id, StatusConfirmed)
}

func (s *Service) Complete(ctx context.Context, ownerUserID, id string) (Appointment, error) {
	return s.transition(ctx, ownerUserID, id, StatusCompleted)
}

// Cancel transiciona y despacha una notificación best-effort.
func (s *Service) Cancel(ctx context.Context, ownerUserID, id string) (Appointment, error) {
	a, err := s.transition(ctx, ownerUserID, id, StatusCancelled)
	if err != nil {
		return Appointment{}, err
	}

	if s.notifier != nil {
		body := fmt.Sprintf("Your appointment on %s was cancelled.", a.ScheduledAt.Format("Jan 2 15:04"))
		if err := s.notifier.Notify(ctx, ownerUserID, "appointment_cancelled", "Appointment cancelled", body); err != nil {
			s.log.Warn("appointments: cancel notification failed", map[string]any{
				"appointment": a.ID,
				"err":         err.Error(),
			})
		}
	}

	return a, nil
}

func (s *Service) transition(ctx context.Context, ownerUserID, id string, to Status) (Appointment, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return Appointment{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, ownerUserID, id)
	if err != nil {
		return Appointment{}, err
	}

	if !canTransition(a.Status, to) {
		return Appointment{}, fmt.Errorf("%w: %s -> %s", ErrBadState, a.Status, to)
	}

	a.Status = to
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Appointment{}, err
	}
	return a, nil
}
