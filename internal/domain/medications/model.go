package medications

import "time"

// Medication es un medicamento del plan de tratamiento del usuario.
type Medication struct {
	ID          string
	OwnerUserID string

	Name      string
	Dosage    string
	Frequency string
	Kind      Kind // controller / reliever
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Kind string

const (
	KindController Kind = "controller"
	KindReliever   Kind = "reliever"
	KindOther      Kind = "other"
)

// Event es una toma registrada. Append-only: no hay update ni delete.
type Event struct {
	ID          string
	OwnerUserID string

	MedicationID string // opcional; puede referir una toma ad-hoc
	Name         string
	Dosage       string
	TakenAt      time.Time

	CreatedAt time.Time
}
