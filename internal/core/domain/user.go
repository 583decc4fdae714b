package domain

import "time"

// Role gates endpoint access and client routing.
type Role string

const (
	RolePatient Role = "paciente"
	RoleDoctor  Role = "medico"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID           int64     `json:"id"`
	Nombre       string    `json:"nombre"`
	Apellido     string    `json:"apellido"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Rol          Role      `json:"rol"`
	Activo       bool      `json:"activo"`
	MedicoID     *int64    `json:"medico_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
