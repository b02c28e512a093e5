package chat

import "context"

type Repository interface {
	Create(ctx context.Context, m Message) error
	ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]Message, error)
}
