package domain

// Schedule is a weekly working window of a doctor. Booking never reads it.
type Schedule struct {
	ID         int64  `json:"id"`
	MedicoID   int64  `json:"medico_id"`
	DiaSemana  string `json:"dia_semana"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
}
