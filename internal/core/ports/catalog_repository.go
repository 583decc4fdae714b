package ports

import (
	"context"

	"github.com/botica/citas-api/internal/core/domain"
)

// SpecialtyRepository persists specialties.
type SpecialtyRepository interface {
	Create(ctx context.Context, s *domain.Specialty) (*domain.Specialty, error)
	List(ctx context.Context) ([]domain.Specialty, error)
}

// DoctorRepository persists doctor records and their display listings.
type DoctorRepository interface {
	// Create associates a user with a specialty. A user already linked to a
	// doctor record yields domain.ErrDoctorExists.
	Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error)
	// FindIDByUser returns the doctor id owned by userID, or
	// domain.ErrDoctorNotFound.
	FindIDByUser(ctx context.Context, userID int64) (int64, error)
	List(ctx context.Context) ([]domain.DoctorListing, error)
	ListBySpecialty(ctx context.Context, especialidadID int64) ([]domain.DoctorListing, error)
}

// ScheduleRepository persists doctor schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error)
	ListByDoctor(ctx context.Context, medicoID int64) ([]domain.Schedule, error)
	Delete(ctx context.Context, id int64) error
}
