package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/botica/citas-api/internal/core/domain"
	"github.com/botica/citas-api/internal/core/ports"
)

const (
	dateLayout = "2006-01-02"
	hourLayout = "15:04"
)

type AppointmentService struct {
	repo   ports.AppointmentRepository
	audit  ports.AuditRepository
	idem   ports.IdempotencyStore
	logger zerolog.Logger
	now    func() time.Time
}

// NewAppointmentService wires the booking use cases. audit and idem may be
// nil when Mongo or Redis are not configured.
func NewAppointmentService(repo ports.AppointmentRepository, audit ports.AuditRepository, idem ports.IdempotencyStore, logger zerolog.Logger) *AppointmentService {
	if audit == nil {
		audit = noopAudit{}
	}
	if idem == nil {
		idem = noopIdempotency{}
	}
	return &AppointmentService{
		repo:   repo,
		audit:  audit,
		idem:   idem,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Create books a pending appointment. A non-cancelled appointment on the same
// slot yields domain.ErrSlotTaken. When an idempotency key already produced
// an appointment for this patient, that appointment is returned instead.
func (s *AppointmentService) Create(ctx context.Context, in ports.CreateAppointmentInput) (*domain.Appointment, error) {
	if in.PacienteID <= 0 || in.MedicoID <= 0 || in.Fecha == "" || in.Hora == "" {
		return nil, fmt.Errorf("%w: medico_id, fecha y hora son obligatorios", domain.ErrValidation)
	}
	if _, err := time.Parse(dateLayout, in.Fecha); err != nil {
		return nil, fmt.Errorf("%w: fecha debe tener formato YYYY-MM-DD", domain.ErrValidation)
	}
	hora, err := parseHour(in.Hora)
	if err != nil {
		return nil, err
	}

	var idemKey string
	if in.IdempotencyKey != "" {
		idemKey = fmt.Sprintf("%d:%s", in.PacienteID, in.IdempotencyKey)
		id, found, err := s.idem.Lookup(ctx, idemKey)
		if err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("idempotency lookup failed")
		}
		if found {
			existing, err := s.repo.FindByID(ctx, id)
			if err == nil {
				s.logger.Info().Str("idempotency_key", in.IdempotencyKey).Int64("cita_id", existing.ID).Msg("idempotent replay")
				return existing, nil
			}
			s.logger.Warn().Err(err).Int64("cita_id", id).Msg("remembered appointment not found")
		}
	}

	created, err := s.repo.CreateIfFree(ctx, &domain.Appointment{
		PacienteID: in.PacienteID,
		MedicoID:   in.MedicoID,
		Fecha:      in.Fecha,
		Hora:       hora.Format(hourLayout),
		Estado:     domain.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	if idemKey != "" {
		if err := s.idem.Remember(ctx, idemKey, created.ID); err != nil {
			s.logger.Warn().Err(err).Str("idempotency_key", in.IdempotencyKey).Msg("failed to remember idempotency key")
		}
	}
	s.record(ctx, created.ID, created.Estado, ports.Actor{UserID: in.PacienteID, Rol: domain.RolePatient})

	s.logger.Info().
		Int64("cita_id", created.ID).
		Int64("medico_id", created.MedicoID).
		Str("fecha", created.Fecha).
		Str("hora", created.Hora).
		Msg("appointment booked")
	return created, nil
}

func (s *AppointmentService) Get(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *AppointmentService) ListByPatient(ctx context.Context, pacienteID int64) ([]domain.AppointmentView, error) {
	return s.repo.ListByPatient(ctx, pacienteID)
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, medicoID int64) ([]domain.AppointmentView, error) {
	return s.repo.ListByDoctor(ctx, medicoID)
}

func (s *AppointmentService) ListAll(ctx context.Context) ([]domain.AppointmentView, error) {
	return s.repo.ListAll(ctx)
}

// UpdateStatus overwrites the status of an appointment. Any valid status may
// follow any other; every change lands in the audit trail.
func (s *AppointmentService) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, actor ports.Actor) error {
	if !status.Valid() {
		return domain.ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.record(ctx, id, status, actor)
	s.logger.Info().Int64("cita_id", id).Str("estado", string(status)).Int64("actor_id", actor.UserID).Msg("appointment status updated")
	return nil
}

func (s *AppointmentService) History(ctx context.Context, id int64) ([]domain.StatusChange, error) {
	return s.audit.History(ctx, id)
}

// record writes to the audit trail. Failures are logged, never returned: the
// appointment write already committed.
func (s *AppointmentService) record(ctx context.Context, citaID int64, status domain.AppointmentStatus, actor ports.Actor) {
	err := s.audit.Record(ctx, domain.StatusChange{
		CitaID:    citaID,
		Estado:    status,
		ActorID:   actor.UserID,
		ActorRol:  actor.Rol,
		Timestamp: s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("cita_id", citaID).Msg("failed to record status change")
	}
}

// parseHour accepts HH:MM and HH:MM:00. Slots are minute-grained, so a
// non-zero seconds part is rejected rather than truncated.
func parseHour(v string) (time.Time, error) {
	if t, err := time.Parse(hourLayout, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("15:04:05", v); err == nil && t.Second() == 0 {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: hora %q debe tener formato HH:MM", domain.ErrValidation, v)
}

type noopAudit struct{}

func (noopAudit) Record(context.Context, domain.StatusChange) error { return nil }

func (noopAudit) History(context.Context, int64) ([]domain.StatusChange, error) {
	return []domain.StatusChange{}, nil
}

type noopIdempotency struct{}

func (noopIdempotency) Lookup(context.Context, string) (int64, bool, error) { return 0, false, nil }

func (noopIdempotency) Remember(context.Context, string, int64) error { return nil }
