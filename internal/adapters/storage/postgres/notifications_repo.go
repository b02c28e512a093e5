package postgres

import (
	"context"
	"database/sql"

	"asthmacare/internal/domain/notifications"
)

type NotificationsRepo struct {
	db *sql.DB
}

func NewNotificationsRepo(db *sql.DB) *NotificationsRepo {
	return &NotificationsRepo{db: db}
}

func (r *NotificationsRepo) Create(ctx context.Context, n notifications.Notification) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notifications (
			id, owner_user_id, kind, title, body, read, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		n.ID,
		n.OwnerUserID,
		n.Kind,
		n.Title,
		n.Body,
		n.Read,
		n.CreatedAt,
	)
	return err
}

func (r *NotificationsRepo) ListByOwner(ctx context.Context, ownerUserID string, onlyUnread bool, limit int) ([]notifications.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, owner_user_id, kind, title, body, read, created_at
		FROM notifications
		WHERE owner_user_id = $1
		  AND ($2 = FALSE OR read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3
	`, ownerUserID, onlyUnread, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []notifications.Notification
	for rows.Next() {
		var n notifications.Notification
		if err := rows.Scan(
			&n.ID,
			&n.OwnerUserID,
			&n.Kind,
			&n.Title,
			&n.Body,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *NotificationsRepo) MarkRead(ctx context.Context, ownerUserID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE notifications
		SET read = TRUE
		WHERE owner_user_id = $1 AND id = $2
	`, ownerUserID, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return notifications.ErrNotFound
	}
	return nil
}
