package doctors

import "time"

// DoctorProfile es el perfil público de un doctor. Lo administra el
// propio doctor (un perfil por usuario) y es visible en el directorio.
type DoctorProfile struct {
	ID          string
	OwnerUserID string

	FullName   string
	Specialty  string
	ClinicName string
	Phone      string
	Email      string
	Bio        string

	CreatedAt time.Time
	UpdatedAt time.Time
}
