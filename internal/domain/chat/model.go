package chat

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	ID          string
	OwnerUserID string
	Role        Role
	Content     string
	CreatedAt   time.Time
}
