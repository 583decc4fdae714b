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

// AppointmentRepository implements ports.AppointmentRepository on the citas
// table.
type AppointmentRepository struct {
	pool *pgxpool.Pool
}

func NewAppointmentRepository(pool *pgxpool.Pool) ports.AppointmentRepository {
	return &AppointmentRepository{pool: pool}
}

// CreateIfFree runs the slot check and the insert in one transaction. Two
// racing bookings can both pass the check; the partial unique index
// citas_slot_activa rejects the second insert.
func (r *AppointmentRepository) CreateIfFree(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var taken bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM citas
			WHERE medico_id = $1 AND fecha = $2::date AND hora = $3::time
			  AND estado <> 'cancelada')`,
		a.MedicoID, a.Fecha, a.Hora,
	).Scan(&taken)
	if err != nil {
		return nil, fmt.Errorf("check slot: %w", err)
	}
	if taken {
		return nil, domain.ErrSlotTaken
	}

	out := *a
	err = tx.QueryRow(ctx,
		`INSERT INTO citas (paciente_id, medico_id, fecha, hora, estado)
		 VALUES ($1,$2,$3::date,$4::time,$5)
		 RETURNING id`,
		a.PacienteID, a.MedicoID, a.Fecha, a.Hora, string(a.Estado),
	).Scan(&out.ID)
	if err != nil {
		switch code, constraint := pgError(err); {
		case code == uniqueViolation:
			return nil, domain.ErrSlotTaken
		case code == foreignKeyViolation && constraint == "citas_paciente_id_fkey":
			return nil, domain.ErrUserNotFound
		case code == foreignKeyViolation:
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		if code, _ := pgError(err); code == uniqueViolation {
			return nil, domain.ErrSlotTaken
		}
		return nil, fmt.Errorf("commit: %w", err)
	}
	return &out, nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	a := &domain.Appointment{}
	var estado string
	err := r.pool.QueryRow(ctx,
		`SELECT id, paciente_id, medico_id, to_char(fecha, 'YYYY-MM-DD'), to_char(hora, 'HH24:MI'), estado
		 FROM citas WHERE id = $1`, id,
	).Scan(&a.ID, &a.PacienteID, &a.MedicoID, &a.Fecha, &a.Hora, &estado)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	a.Estado = domain.AppointmentStatus(estado)
	return a, nil
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, pacienteID int64) ([]domain.AppointmentView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, to_char(c.fecha, 'YYYY-MM-DD'), to_char(c.hora, 'HH24:MI'), c.estado,
		        u.nombre, u.apellido, e.nombre
		 FROM citas c
		 JOIN medicos m ON m.id = c.medico_id
		 JOIN users u ON u.id = m.user_id
		 JOIN especialidades e ON e.id = m.especialidad_id
		 WHERE c.paciente_id = $1
		 ORDER BY c.fecha, c.hora`, pacienteID)
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	return collectViews(rows, func(v *domain.AppointmentView) []any {
		return []any{&v.MedicoNombre, &v.MedicoApellido, &v.Especialidad}
	})
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, medicoID int64) ([]domain.AppointmentView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, to_char(c.fecha, 'YYYY-MM-DD'), to_char(c.hora, 'HH24:MI'), c.estado,
		        p.nombre, p.apellido
		 FROM citas c
		 JOIN users p ON p.id = c.paciente_id
		 WHERE c.medico_id = $1
		 ORDER BY c.fecha, c.hora`, medicoID)
	if err != nil {
		return nil, fmt.Errorf("list doctor appointments: %w", err)
	}
	return collectViews(rows, func(v *domain.AppointmentView) []any {
		return []any{&v.PacienteNombre, &v.PacienteApellido}
	})
}

func (r *AppointmentRepository) ListAll(ctx context.Context) ([]domain.AppointmentView, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, to_char(c.fecha, 'YYYY-MM-DD'), to_char(c.hora, 'HH24:MI'), c.estado,
		        p.nombre, p.apellido, u.nombre, u.apellido, e.nombre
		 FROM citas c
		 JOIN users p ON p.id = c.paciente_id
		 JOIN medicos m ON m.id = c.medico_id
		 JOIN users u ON u.id = m.user_id
		 JOIN especialidades e ON e.id = m.especialidad_id
		 ORDER BY c.fecha, c.hora`)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return collectViews(rows, func(v *domain.AppointmentView) []any {
		return []any{&v.PacienteNombre, &v.PacienteApellido, &v.MedicoNombre, &v.MedicoApellido, &v.Especialidad}
	})
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	_, err := r.pool.Exec(ctx, `UPDATE citas SET estado = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		if code, _ := pgError(err); code == uniqueViolation {
			// reviving a cancelled appointment whose slot was rebooked
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("update appointment status: %w", err)
	}
	return nil
}

// collectViews scans the four common columns followed by the listing
// specific name columns returned by extra.
func collectViews(rows pgx.Rows, extra func(*domain.AppointmentView) []any) ([]domain.AppointmentView, error) {
	defer rows.Close()

	out := []domain.AppointmentView{}
	for rows.Next() {
		var v domain.AppointmentView
		var estado string
		dest := append([]any{&v.ID, &v.Fecha, &v.Hora, &estado}, extra(&v)...)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		v.Estado = domain.AppointmentStatus(estado)
		out = append(out, v)
	}
	return out, rows.Err()
}
