package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"asthmacare/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo       Repository
	responder  Responder
	log        logger.Logger
	maxHistory int
	now        func() time.Time
}

func NewService(repo Repository, responder Responder, log logger.Logger, maxHistory int) *Service {
	if maxHistory <= 0 {
		maxHistory = 20
	}
	return &Service{
		repo:       repo,
		responder:  responder,
		log:        log,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// Send guarda el mensaje del usuario, consulta al responder y guarda la
// respuesta. Los fallos al persistir historial se loguean y se tragan:
// la respuesta al usuario es el resultado primario.
func (s *Service) Send(ctx context.Context, ownerUserID, content string) (Message, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	content = strings.TrimSpace(content)
	if ownerUserID == "" || content == "" {
		return Message{}, ErrInvalidInput
	}

	now := s.now()

	userMsg := Message{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Role:        RoleUser,
		Content:     content,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, userMsg); err != nil {
		s.log.Warn("chat: failed to store user message", map[string]any{
			"owner": ownerUserID,
			"err":   err.Error(),
		})
	}

	// El responder recibe historial reciente aunque el mock lo ignore;
	// un responder real puede usarlo.
	history, err := s.repo.ListByOwner(ctx, ownerUserID, s.maxHistory)
	if err != nil {
		s.log.Warn("chat: failed to load history", map[string]any{
			"owner": ownerUserID,
			"err":   err.Error(),
		})
		history = nil
	}

	reply, err := s.responder.Respond(ctx, content, history)
	if err != nil {
		return Message{}, err
	}

	assistantMsg := Message{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Role:        RoleAssistant,
		Content:     reply,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, assistantMsg); err != nil {
		s.log.Warn("chat: failed to store assistant message", map[string]any{
			"owner": ownerUserID,
			"err":   err.Error(),
		})
	}

	return assistantMsg, nil
}

func (s *Service) History(ctx context.Context, ownerUserID string, limit int) ([]Message, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListByOwner(ctx, ownerUserID, limit)
}
