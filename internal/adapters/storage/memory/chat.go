package memory

import (
	"context"
	"sort"
	"sync"

	"asthmacare/internal/domain/chat"
)

type ChatRepository struct {
	mu    sync.RWMutex
	items []chat.Message
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{}
}

func (r *ChatRepository) Create(_ context.Context, m chat.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, m)
	return nil
}

func (r *ChatRepository) ListByOwner(_ context.Context, ownerUserID string, limit int) ([]chat.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []chat.Message
	for _, m := range r.items {
		if m.OwnerUserID == ownerUserID {
			out = append(out, m)
		}
	}

	// orden cronológico; si hay límite, se queda la cola más reciente
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}
