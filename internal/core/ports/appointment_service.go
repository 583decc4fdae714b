package ports

import (
	"context"

	"github.com/botica/citas-api/internal/core/domain"
)

// CreateAppointmentInput carries a booking request. PacienteID comes from the
// caller's token, never from the request body.
type CreateAppointmentInput struct {
	PacienteID int64
	MedicoID   int64
	Fecha      string
	Hora       string
	// IdempotencyKey, when set, makes retries of the same request return the
	// appointment created by the first attempt.
	IdempotencyKey string
}

// Actor identifies who performs a write, for the audit trail.
type Actor struct {
	UserID int64
	Rol    domain.Role
}

// AppointmentService defines use-case operations for appointments.
type AppointmentService interface {
	Create(ctx context.Context, in CreateAppointmentInput) (*domain.Appointment, error)
	Get(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, pacienteID int64) ([]domain.AppointmentView, error)
	ListByDoctor(ctx context.Context, medicoID int64) ([]domain.AppointmentView, error)
	ListAll(ctx context.Context) ([]domain.AppointmentView, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, actor Actor) error
	History(ctx context.Context, id int64) ([]domain.StatusChange, error)
}
