package symptoms

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
	Severity        int
	RecordedAt      time.Time
	Triggers        []string
	MedicationsUsed []string
	Notes           string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Entry, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if in.Severity < 1 || in.Severity > 5 {
		return Entry{}, ErrInvalidInput
	}

	now := s.now()

	recordedAt := in.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = now
	}

	e := Entry{
		ID:              uuid.NewString(),
		OwnerUserID:     ownerUserID,
		Severity:        in.Severity,
		RecordedAt:      recordedAt,
		Triggers:        cleanList(in.Triggers),
		MedicationsUsed: cleanList(in.MedicationsUsed),
		Notes:           strings.TrimSpace(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, ownerUserID, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(ownerUserID) == "" {
		return Entry{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, ownerUserID, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, filter ListFilter) ([]Entry, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID, filter)
}

// UpdateNotes es la única mutación permitida sobre un entry ya logueado.
func (s *Service) UpdateNotes(ctx context.Context, ownerUserID, id, notes string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" || strings.TrimSpace(ownerUserID) == "" {
		return Entry{}, ErrInvalidInput
	}
	if err := s.repo.UpdateNotes(ctx, ownerUserID, id, strings.TrimSpace(notes), s.now()); err != nil {
		return Entry{}, err
	}
	return s.repo.GetByID(ctx, ownerUserID, id)
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := map[string]struct{}{}
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
