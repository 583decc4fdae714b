package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/botica/citas-api/internal/auth"
	"github.com/botica/citas-api/internal/core/domain"
	"github.com/botica/citas-api/internal/core/ports"
)

const defaultTokenTTL = 2 * time.Hour

// bcrypt rejects longer inputs with ErrPasswordTooLong.
const maxPasswordBytes = 72

// AuthService implements registration and login.
type AuthService struct {
	users         ports.UserRepository
	doctors       ports.DoctorRepository
	jwtSecret     string
	tokenTTL      time.Duration
	signupAnyRole bool
	logger        zerolog.Logger
}

// AuthOption tunes an AuthService.
type AuthOption func(*AuthService)

// WithSignupAnyRole controls whether /users/register honours rol=medico and
// rol=admin. It defaults to true.
func WithSignupAnyRole(allow bool) AuthOption {
	return func(s *AuthService) { s.signupAnyRole = allow }
}

func NewAuthService(users ports.UserRepository, doctors ports.DoctorRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger, opts ...AuthOption) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	s := &AuthService{
		users:         users,
		doctors:       doctors,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		signupAnyRole: true,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellido = strings.TrimSpace(in.Apellido)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Nombre == "" || in.Apellido == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: nombre, apellido, email y password son obligatorios", domain.ErrValidation)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, fmt.Errorf("%w: password admite como máximo %d bytes", domain.ErrValidation, maxPasswordBytes)
	}
	if in.Rol == "" {
		in.Rol = domain.RolePatient
	}
	if !in.Rol.Valid() {
		return nil, fmt.Errorf("%w: rol %q no existe", domain.ErrValidation, in.Rol)
	}
	// Open signup lets anyone pick medico or admin. Deployments that do not
	// want that set SIGNUP_ANY_ROLE=false and create staff accounts by hand.
	if in.Rol != domain.RolePatient && !s.signupAnyRole {
		return nil, fmt.Errorf("%w: el registro público solo admite el rol %s", domain.ErrValidation, domain.RolePatient)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Nombre:       in.Nombre,
		Apellido:     in.Apellido,
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          in.Rol,
		Activo:       true,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Str("rol", string(created.Rol)).Msg("user registered")
	out := *created
	out.PasswordHash = ""
	return &out, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}
	if !user.Activo {
		return "", nil, domain.ErrInvalidCredentials
	}

	var medicoID *int64
	if user.Rol == domain.RoleDoctor {
		id, err := s.doctors.FindIDByUser(ctx, user.ID)
		switch {
		case errors.Is(err, domain.ErrDoctorNotFound):
			s.logger.Warn().Int64("user_id", user.ID).Msg("doctor user has no doctor record")
		case err != nil:
			return "", nil, err
		default:
			medicoID = &id
		}
	}

	token, err := auth.Issue(user, medicoID, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", nil, err
	}

	out := *user
	out.PasswordHash = ""
	out.MedicoID = medicoID
	return token, &out, nil
}

// UserService lists accounts for administrators.
type UserService struct {
	users ports.UserRepository
}

func NewUserService(users ports.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}
