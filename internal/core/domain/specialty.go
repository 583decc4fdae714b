package domain

// Specialty is a medical specialty a doctor practises.
type Specialty struct {
	ID          int64   `json:"id"`
	Nombre      string  `json:"nombre"`
	Descripcion *string `json:"descripcion"`
}
