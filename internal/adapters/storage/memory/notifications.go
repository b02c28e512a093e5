package memory

import (
	"context"
	"sort"
	"sync"

	"asthmacare/internal/domain/notifications"
)

type NotificationRepository struct {
	mu    sync.RWMutex
	items map[string]notifications.Notification
}

func NewNotificationRepository() *NotificationRepository {
	return &NotificationRepository{items: map[string]notifications.Notification{}}
}

func (r *NotificationRepository) Create(_ context.Context, n notifications.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[n.ID] = n
	return nil
}

func (r *NotificationRepository) ListByOwner(_ context.Context, ownerUserID string, onlyUnread bool, limit int) ([]notifications.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []notifications.Notification
	for _, n := range r.items {
		if n.OwnerUserID != ownerUserID {
			continue
		}
		if onlyUnread && n.Read {
			continue
		}
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, ownerUserID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.items[id]
	if !ok || n.OwnerUserID != ownerUserID {
		return notifications.ErrNotFound
	}
	n.Read = true
	r.items[id] = n
	return nil
}
