package domain

// Doctor associates a user with a specialty.
type Doctor struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"user_id"`
	EspecialidadID int64 `json:"especialidad_id"`
}

// DoctorListing is the display view of a doctor: the owning user's name and
// email plus the specialty name.
type DoctorListing struct {
	ID           int64  `json:"id"`
	Nombre       string `json:"nombre"`
	Apellido     string `json:"apellido"`
	Email        string `json:"email"`
	Especialidad string `json:"especialidad"`
}
