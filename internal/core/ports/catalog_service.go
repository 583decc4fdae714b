package ports

import (
	"context"

	"github.com/botica/citas-api/internal/core/domain"
)

type SpecialtyService interface {
	Create(ctx context.Context, nombre string, descripcion *string) (*domain.Specialty, error)
	List(ctx context.Context) ([]domain.Specialty, error)
}

type DoctorService interface {
	Create(ctx context.Context, userID, especialidadID int64) (*domain.Doctor, error)
	List(ctx context.Context) ([]domain.DoctorListing, error)
	ListBySpecialty(ctx context.Context, especialidadID int64) ([]domain.DoctorListing, error)
}

// CreateScheduleInput carries a weekly working window.
type CreateScheduleInput struct {
	MedicoID   int64
	DiaSemana  string
	HoraInicio string
	HoraFin    string
}

type ScheduleService interface {
	Create(ctx context.Context, in CreateScheduleInput) (*domain.Schedule, error)
	ListByDoctor(ctx context.Context, medicoID int64) ([]domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
}
