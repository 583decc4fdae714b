package ports

import (
	"context"

	"github.com/botica/citas-api/internal/core/domain"
)

// AppointmentRepository handles appointment persistence.
type AppointmentRepository interface {
	// CreateIfFree checks that no non-cancelled appointment holds the same
	// slot and inserts a in the same transaction. A taken slot yields
	// domain.ErrSlotTaken.
	CreateIfFree(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
	FindByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, pacienteID int64) ([]domain.AppointmentView, error)
	ListByDoctor(ctx context.Context, medicoID int64) ([]domain.AppointmentView, error)
	ListAll(ctx context.Context) ([]domain.AppointmentView, error)
	// UpdateStatus overwrites the status of id. It does not check that the
	// row exists.
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
}

// AuditRepository keeps the status history of appointments.
type AuditRepository interface {
	Record(ctx context.Context, change domain.StatusChange) error
	History(ctx context.Context, citaID int64) ([]domain.StatusChange, error)
}

// IdempotencyStore remembers which appointment an Idempotency-Key produced.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (citaID int64, found bool, err error)
	Remember(ctx context.Context, key string, citaID int64) error
}
