package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/botica/citas-api/internal/core/domain"
	"github.com/botica/citas-api/internal/core/ports"
)

type SpecialtyService struct {
	repo ports.SpecialtyRepository
}

func NewSpecialtyService(repo ports.SpecialtyRepository) *SpecialtyService {
	return &SpecialtyService{repo: repo}
}

func (s *SpecialtyService) Create(ctx context.Context, nombre string, descripcion *string) (*domain.Specialty, error) {
	nombre = strings.TrimSpace(nombre)
	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre es obligatorio", domain.ErrValidation)
	}
	if descripcion != nil && strings.TrimSpace(*descripcion) == "" {
		descripcion = nil
	}
	return s.repo.Create(ctx, &domain.Specialty{Nombre: nombre, Descripcion: descripcion})
}

func (s *SpecialtyService) List(ctx context.Context) ([]domain.Specialty, error) {
	return s.repo.List(ctx)
}

// DoctorService links users to specialties.
type DoctorService struct {
	repo   ports.DoctorRepository
	logger zerolog.Logger
}

func NewDoctorService(repo ports.DoctorRepository, logger zerolog.Logger) *DoctorService {
	return &DoctorService{repo: repo, logger: logger}
}

func (s *DoctorService) Create(ctx context.Context, userID, especialidadID int64) (*domain.Doctor, error) {
	if userID <= 0 || especialidadID <= 0 {
		return nil, fmt.Errorf("%w: user_id y especialidad_id son obligatorios", domain.ErrValidation)
	}
	d, err := s.repo.Create(ctx, &domain.Doctor{UserID: userID, EspecialidadID: especialidadID})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("medico_id", d.ID).Int64("user_id", userID).Msg("doctor registered")
	return d, nil
}

func (s *DoctorService) List(ctx context.Context) ([]domain.DoctorListing, error) {
	return s.repo.List(ctx)
}

func (s *DoctorService) ListBySpecialty(ctx context.Context, especialidadID int64) ([]domain.DoctorListing, error) {
	return s.repo.ListBySpecialty(ctx, especialidadID)
}

// ScheduleService manages weekly doctor schedules. Booking never consults
// them.
type ScheduleService struct {
	repo ports.ScheduleRepository
}

func NewScheduleService(repo ports.ScheduleRepository) *ScheduleService {
	return &ScheduleService{repo: repo}
}

func (s *ScheduleService) Create(ctx context.Context, in ports.CreateScheduleInput) (*domain.Schedule, error) {
	in.DiaSemana = strings.ToLower(strings.TrimSpace(in.DiaSemana))
	if in.MedicoID <= 0 || in.DiaSemana == "" || in.HoraInicio == "" || in.HoraFin == "" {
		return nil, fmt.Errorf("%w: medico_id, dia_semana, hora_inicio y hora_fin son obligatorios", domain.ErrValidation)
	}
	inicio, err := parseHour(in.HoraInicio)
	if err != nil {
		return nil, err
	}
	fin, err := parseHour(in.HoraFin)
	if err != nil {
		return nil, err
	}
	if !fin.After(inicio) {
		return nil, fmt.Errorf("%w: hora_fin debe ser posterior a hora_inicio", domain.ErrValidation)
	}
	return s.repo.Create(ctx, &domain.Schedule{
		MedicoID:   in.MedicoID,
		DiaSemana:  in.DiaSemana,
		HoraInicio: inicio.Format(hourLayout),
		HoraFin:    fin.Format(hourLayout),
	})
}

func (s *ScheduleService) ListByDoctor(ctx context.Context, medicoID int64) ([]domain.Schedule, error) {
	return s.repo.ListByDoctor(ctx, medicoID)
}

func (s *ScheduleService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
