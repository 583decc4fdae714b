package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/botica/citas-api/internal/core/domain"
	"github.com/botica/citas-api/internal/core/ports"
)

type SpecialtyRepository struct {
	pool *pgxpool.Pool
}

func NewSpecialtyRepository(pool *pgxpool.Pool) ports.SpecialtyRepository {
	return &SpecialtyRepository{pool: pool}
}

func (r *SpecialtyRepository) Create(ctx context.Context, s *domain.Specialty) (*domain.Specialty, error) {
	out := *s
	err := r.pool.QueryRow(ctx,
		`INSERT INTO especialidades (nombre, descripcion) VALUES ($1,$2) RETURNING id`,
		s.Nombre, s.Descripcion,
	).Scan(&out.ID)
	if err != nil {
		return nil, fmt.Errorf("insert specialty: %w", err)
	}
	return &out, nil
}

func (r *SpecialtyRepository) List(ctx context.Context) ([]domain.Specialty, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, nombre, descripcion FROM especialidades ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list specialties: %w", err)
	}
	defer rows.Close()

	out := []domain.Specialty{}
	for rows.Next() {
		var s domain.Specialty
		if err := rows.Scan(&s.ID, &s.Nombre, &s.Descripcion); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DoctorRepository implements ports.DoctorRepository on the medicos table.
type DoctorRepository struct {
	pool *pgxpool.Pool
}

func NewDoctorRepository(pool *pgxpool.Pool) ports.DoctorRepository {
	return &DoctorRepository{pool: pool}
}

func (r *DoctorRepository) Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	out := *d
	err := r.pool.QueryRow(ctx,
		`INSERT INTO medicos (user_id, especialidad_id) VALUES ($1,$2) RETURNING id`,
		d.UserID, d.EspecialidadID,
	).Scan(&out.ID)
	if err != nil {
		switch code, constraint := pgError(err); {
		case code == uniqueViolation:
			return nil, domain.ErrDoctorExists
		case code == foreignKeyViolation && constraint == "medicos_user_id_fkey":
			return nil, domain.ErrUserNotFound
		case code == foreignKeyViolation:
			return nil, domain.ErrSpecialtyNotFound
		}
		return nil, fmt.Errorf("insert doctor: %w", err)
	}
	return &out, nil
}

func (r *DoctorRepository) FindIDByUser(ctx context.Context, userID int64) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `SELECT id FROM medicos WHERE user_id = $1`, userID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrDoctorNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find doctor: %w", err)
	}
	return id, nil
}

const doctorListingQuery = `
	SELECT m.id, u.nombre, u.apellido, u.email, e.nombre
	FROM medicos m
	JOIN users u ON u.id = m.user_id
	JOIN especialidades e ON e.id = m.especialidad_id`

func (r *DoctorRepository) List(ctx context.Context) ([]domain.DoctorListing, error) {
	return r.listings(ctx, doctorListingQuery+` ORDER BY m.id`)
}

func (r *DoctorRepository) ListBySpecialty(ctx context.Context, especialidadID int64) ([]domain.DoctorListing, error) {
	return r.listings(ctx, doctorListingQuery+` WHERE m.especialidad_id = $1 ORDER BY m.id`, especialidadID)
}

func (r *DoctorRepository) listings(ctx context.Context, q string, args ...any) ([]domain.DoctorListing, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer rows.Close()

	out := []domain.DoctorListing{}
	for rows.Next() {
		var d domain.DoctorListing
		if err := rows.Scan(&d.ID, &d.Nombre, &d.Apellido, &d.Email, &d.Especialidad); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) ports.ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func (r *ScheduleRepository) Create(ctx context.Context, s *domain.Schedule) (*domain.Schedule, error) {
	out := *s
	err := r.pool.QueryRow(ctx,
		`INSERT INTO horarios (medico_id, dia_semana, hora_inicio, hora_fin)
		 VALUES ($1,$2,$3::time,$4::time) RETURNING id`,
		s.MedicoID, s.DiaSemana, s.HoraInicio, s.HoraFin,
	).Scan(&out.ID)
	if err != nil {
		if code, _ := pgError(err); code == foreignKeyViolation {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("insert schedule: %w", err)
	}
	return &out, nil
}

func (r *ScheduleRepository) ListByDoctor(ctx context.Context, medicoID int64) ([]domain.Schedule, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, medico_id, dia_semana, to_char(hora_inicio, 'HH24:MI'), to_char(hora_fin, 'HH24:MI')
		 FROM horarios WHERE medico_id = $1 ORDER BY id`, medicoID)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	out := []domain.Schedule{}
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.MedicoID, &s.DiaSemana, &s.HoraInicio, &s.HoraFin); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM horarios WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrScheduleNotFound
	}
	return nil
}
