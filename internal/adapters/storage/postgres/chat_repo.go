package postgres

import (
	"context"
	"database/sql"

	"asthmacare/internal/domain/chat"
)

type ChatRepo struct {
	db *sql.DB
}

func NewChatRepo(db *sql.DB) *ChatRepo {
	return &ChatRepo{db: db}
}

func (r *ChatRepo) Create(ctx context.Context, m chat.Message) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO chat_messages (
			id, owner_user_id, role, content, created_at
		) VALUES ($1,$2,$3,$4,$5)
	`,
		m.ID,
		m.OwnerUserID,
		string(m.Role),
		m.Content,
		m.CreatedAt,
	)
	return err
}

func (r *ChatRepo) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]chat.Message, error) {
	if limit <= 0 {
		limit = 100
	}

	// la cola más reciente, devuelta en orden cronológico
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, role, content, created_at
		FROM (
			SELECT id, owner_user_id, role, content, created_at
			FROM chat_messages
			WHERE owner_user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) tail
		ORDER BY created_at ASC
	`, ownerUserID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chat.Message
	for rows.Next() {
		var (
			m    chat.Message
			role string
		)
		if err := rows.Scan(&m.ID, &m.OwnerUserID, &role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Role = chat.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}
