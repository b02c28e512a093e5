package contacts

import "time"

// EmergencyContact es una persona a la que avisar ante una crisis.
// A lo sumo un contacto por usuario puede ser primario.
type EmergencyContact struct {
	ID          string
	OwnerUserID string

	Name         string
	Phone        string
	Relationship string
	IsPrimary    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
