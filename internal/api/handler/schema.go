package handler

import "github.com/botica/citas-api/internal/core/domain"

// messageResponse is the envelope for errors and bare confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Users / auth ---

type registerRequest struct {
	Nombre   string `json:"nombre"   validate:"required"`
	Apellido string `json:"apellido" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	Rol      string `json:"rol"      validate:"omitempty,oneof=paciente medico admin"`
}

type registerResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

// --- Catalog ---

type createSpecialtyRequest struct {
	Nombre      string  `json:"nombre"      validate:"required"`
	Descripcion *string `json:"descripcion"`
}

type specialtyResponse struct {
	Message      string            `json:"message"`
	Especialidad *domain.Specialty `json:"especialidad"`
}

type createDoctorRequest struct {
	UserID         int64 `json:"user_id"         validate:"required,gt=0"`
	EspecialidadID int64 `json:"especialidad_id" validate:"required,gt=0"`
}

type doctorResponse struct {
	Message string         `json:"message"`
	Medico  *domain.Doctor `json:"medico"`
}

type createScheduleRequest struct {
	MedicoID   int64  `json:"medico_id"   validate:"required,gt=0"`
	DiaSemana  string `json:"dia_semana"  validate:"required"`
	HoraInicio string `json:"hora_inicio" validate:"required"`
	HoraFin    string `json:"hora_fin"    validate:"required"`
}

type scheduleResponse struct {
	Message string           `json:"message"`
	Horario *domain.Schedule `json:"horario"`
}

// --- Appointments ---

type createAppointmentRequest struct {
	MedicoID int64  `json:"medico_id" validate:"required,gt=0"`
	Fecha    string `json:"fecha"     validate:"required,datetime=2006-01-02"`
	Hora     string `json:"hora"      validate:"required"`
}

type appointmentResponse struct {
	Message string              `json:"message"`
	Cita    *domain.Appointment `json:"cita"`
}

type updateStatusRequest struct {
	Estado string `json:"estado"`
}

type statusResult struct {
	ID     int64                    `json:"id"`
	Estado domain.AppointmentStatus `json:"estado"`
}

type updateStatusResponse struct {
	Message string       `json:"message"`
	Result  statusResult `json:"result"`
}
