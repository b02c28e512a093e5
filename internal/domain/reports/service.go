package reports

import (
	"context"
	"errors"
	"strings"
	"time"

	"asthmacare/internal/domain/symptoms"
	"asthmacare/internal/platform/metrics"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// SymptomSource abstrae de dónde salen los entries a puntuar
// (en runtime, el service de symptoms).
type SymptomSource interface {
	ListByOwner(ctx context.Context, ownerUserID string, filter symptoms.ListFilter) ([]symptoms.Entry, error)
}

type Service struct {
	repo     Repository
	symptoms SymptomSource
	now      func() time.Time
}

func NewService(repo Repository, source SymptomSource) *Service {
	return &Service{
		repo:     repo,
		symptoms: source,
		now:      time.Now,
	}
}

// Current computa el assessment sin persistirlo.
func (s *Service) Current(ctx context.Context, ownerUserID string) (Assessment, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Assessment{}, ErrInvalidInput
	}

	now := s.now()
	entries, err := s.recentEntries(ctx, ownerUserID, now)
	if err != nil {
		return Assessment{}, err
	}

	a := ComputeControlScore(entries, now)
	metrics.ControlScore.Observe(float64(a.Score))
	return a, nil
}

// Generate computa y persiste un HealthReport.
func (s *Service) Generate(ctx context.Context, ownerUserID string) (HealthReport, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return HealthReport{}, ErrInvalidInput
	}

	now := s.now()
	entries, err := s.recentEntries(ctx, ownerUserID, now)
	if err != nil {
		return HealthReport{}, err
	}

	a := ComputeControlScore(entries, now)
	metrics.ControlScore.Observe(float64(a.Score))

	r := HealthReport{
		ID:              uuid.NewString(),
		OwnerUserID:     ownerUserID,
		Score:           a.Score,
		Level:           a.Level,
		Recommendations: a.Recommendations,
		GeneratedAt:     now,
		CreatedAt:       now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return HealthReport{}, err
	}
	return r, nil
}

func (s *Service) GetByID(ctx context.Context, ownerUserID, id string) (HealthReport, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(ownerUserID) == "" {
		return HealthReport{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, ownerUserID, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]HealthReport, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByOwner(ctx, ownerUserID, limit)
}

func (s *Service) recentEntries(ctx context.Context, ownerUserID string, now time.Time) ([]symptoms.Entry, error) {
	// Pedimos solo la ventana relevante; ComputeControlScore filtra igual
	// por si el source devuelve de más.
	from := now.Add(-scoringWindow)
	return s.symptoms.ListByOwner(ctx, ownerUserID, symptoms.ListFilter{
		From:  &from,
		Limit: 200,
	})
}
