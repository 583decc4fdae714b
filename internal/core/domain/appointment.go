package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pendiente"
	StatusConfirmed AppointmentStatus = "confirmada"
	StatusCancelled AppointmentStatus = "cancelada"
	StatusCompleted AppointmentStatus = "completada"
)

// Valid reports whether s is one of the four appointment states.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Slot is the unit of booking-conflict checking.
type Slot struct {
	MedicoID int64
	Fecha    string // YYYY-MM-DD
	Hora     string // HH:MM
}

// Appointment is a booked slot for a patient.
type Appointment struct {
	ID         int64             `json:"id"`
	PacienteID int64             `json:"paciente_id"`
	MedicoID   int64             `json:"medico_id"`
	Fecha      string            `json:"fecha"`
	Hora       string            `json:"hora"`
	Estado     AppointmentStatus `json:"estado"`
}

// Slot returns the (doctor, date, time) triple of the appointment.
func (a Appointment) Slot() Slot {
	return Slot{MedicoID: a.MedicoID, Fecha: a.Fecha, Hora: a.Hora}
}

// AppointmentView is an appointment joined with display names. Which name
// fields are filled depends on the listing: by patient carries the doctor and
// specialty, by doctor carries the patient, the admin listing carries all.
type AppointmentView struct {
	ID               int64             `json:"id"`
	Fecha            string            `json:"fecha"`
	Hora             string            `json:"hora"`
	Estado           AppointmentStatus `json:"estado"`
	PacienteNombre   string            `json:"paciente_nombre,omitempty"`
	PacienteApellido string            `json:"paciente_apellido,omitempty"`
	MedicoNombre     string            `json:"medico_nombre,omitempty"`
	MedicoApellido   string            `json:"medico_apellido,omitempty"`
	Especialidad     string            `json:"especialidad,omitempty"`
}

// StatusChange records who moved an appointment into a state and when.
type StatusChange struct {
	EventID   string            `json:"event_id" bson:"event_id"`
	CitaID    int64             `json:"cita_id" bson:"cita_id"`
	Estado    AppointmentStatus `json:"estado" bson:"estado"`
	ActorID   int64             `json:"actor_id" bson:"actor_id"`
	ActorRol  Role              `json:"actor_rol" bson:"actor_rol"`
	Timestamp time.Time         `json:"timestamp" bson:"timestamp"`
}
