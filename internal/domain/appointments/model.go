package appointments

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Appointment es una cita del usuario con un doctor.
type Appointment struct {
	ID          string
	OwnerUserID string

	DoctorID    string // opcional: referencia a un doctor profile
	DoctorName  string
	ScheduledAt time.Time
	Reason      string
	Notes       string
	Status      Status

	CreatedAt time.Time
	UpdatedAt time.Time
}

// validTransitions: pending puede confirmarse o cancelarse;
// confirmed puede cancelarse o completarse. cancelled/completed son finales.
var validTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

func canTransition(from, to Status) bool {
	for _, s := range validTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
