package symptoms

import "time"

// Entry es un registro de síntomas. Inmutable una vez logueado,
// salvo las notas (soft notes).
type Entry struct {
	ID          string
	OwnerUserID string

	// Severity va de 1 (leve) a 5 (severo).
	Severity int

	RecordedAt time.Time

	Triggers        []string
	MedicationsUsed []string

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}
