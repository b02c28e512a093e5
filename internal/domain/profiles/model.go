package profiles

import "time"

// Profile es el registro de usuario propio de la app (el identity
// provider es dueño de las credenciales, no de esto).
type Profile struct {
	ID          string
	OwnerUserID string

	FullName       string
	Email          string
	DateOfBirth    *time.Time
	AsthmaSeverity string // mild, moderate, severe (texto libre validado suave)

	// AvatarPath es el path en object storage; vacío = sin avatar.
	AvatarPath string

	CreatedAt time.Time
	UpdatedAt time.Time
}
