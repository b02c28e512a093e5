package reports

import "time"

// HealthReport es un assessment persistido en un momento dado.
type HealthReport struct {
	ID          string
	OwnerUserID string

	Score           int
	Level           ControlLevel
	Recommendations []string

	GeneratedAt time.Time
	CreatedAt   time.Time
}
