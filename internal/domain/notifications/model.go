package notifications

import "time"

// Notification es un aviso in-app persistido para un usuario.
type Notification struct {
	ID          string    `json:"id"`
	OwnerUserID string    `json:"owner_user_id"`
	Kind        string    `json:"kind"` // p.ej. appointment_cancelled
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}
