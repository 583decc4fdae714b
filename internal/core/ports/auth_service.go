package ports

import (
	"context"

	"github.com/botica/citas-api/internal/core/domain"
)

// RegisterInput carries the fields of a new account. An empty Rol means
// patient.
type RegisterInput struct {
	Nombre   string
	Apellido string
	Email    string
	Password string
	Rol      domain.Role
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login returns a signed token and the user without its password hash.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type UserService interface {
	List(ctx context.Context) ([]domain.User, error)
}
