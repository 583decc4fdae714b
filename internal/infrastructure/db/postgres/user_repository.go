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

// UserRepository implements ports.UserRepository on the users table.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) ports.UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	out := *u
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (nombre, apellido, email, password_hash, rol, activo)
		 VALUES ($1,$2,$3,$4,$5,$6)
		 RETURNING id, created_at`,
		u.Nombre, u.Apellido, u.Email, u.PasswordHash, string(u.Rol), u.Activo,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		if code, _ := pgError(err); code == uniqueViolation {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	var rol string
	err := r.pool.QueryRow(ctx,
		`SELECT id, nombre, apellido, email, password_hash, rol, activo, created_at
		 FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Email, &u.PasswordHash, &rol, &u.Activo, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	u.Rol = domain.Role(rol)
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, nombre, apellido, email, rol, activo, created_at
		 FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var u domain.User
		var rol string
		if err := rows.Scan(&u.ID, &u.Nombre, &u.Apellido, &u.Email, &rol, &u.Activo, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Rol = domain.Role(rol)
		users = append(users, u)
	}
	return users, rows.Err()
}
