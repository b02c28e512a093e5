package notifications

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("notification not found")

type Repository interface {
	Create(ctx context.Context, n Notification) error
	ListByOwner(ctx context.Context, ownerUserID string, onlyUnread bool, limit int) ([]Notification, error)
	MarkRead(ctx context.Context, ownerUserID, id string) error
}
