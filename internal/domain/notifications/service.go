package notifications

import (
	"context"
	"errors"
	"strings"
	"time"

	"asthmacare/internal/platform/logger"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo   Repository
	broker Broker
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, broker Broker, log logger.Logger) *Service {
	return &Service{
		repo:   repo,
		broker: broker,
		log:    log,
		now:    time.Now,
	}
}

// Notify persiste la notificación y la publica al broker. La publicación
// es best-effort: si falla, la fila ya quedó y el usuario la verá al
// listar.
func (s *Service) Notify(ctx context.Context, ownerUserID, kind, title, body string) error {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(title) == "" {
		return ErrInvalidInput
	}

	n := Notification{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Kind:        strings.TrimSpace(kind),
		Title:       strings.TrimSpace(title),
		Body:        strings.TrimSpace(body),
		CreatedAt:   s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	if s.broker != nil {
		if err := s.broker.Publish(ctx, n); err != nil {
			s.log.Warn("notifications: publish failed", map[string]any{
				"notification": n.ID,
				"err":          err.Error(),
			})
		}
	}
	return nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string, onlyUnread bool, limit int) ([]Notification, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByOwner(ctx, ownerUserID, onlyUnread, limit)
}

func (s *Service) MarkRead(ctx context.Context, ownerUserID, id string) error {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(id) == "" {
		return ErrInvalidInput
	}
	return s.repo.MarkRead(ctx, ownerUserID, id)
}

// Subscribe expone el broker para consumidores en vivo (SSE, websockets).
func (s *Service) Subscribe(ctx context.Context, ownerUserID string, fn func(Notification)) (Subscription, error) {
	if s.broker == nil {
		return nil, errors.New("notifications: no broker configured")
	}
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	return s.broker.Subscribe(ctx, ownerUserID, fn)
}
