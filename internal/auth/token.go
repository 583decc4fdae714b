// Package auth issues and verifies the HS256 access tokens handed out at
// login.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/botica/citas-api/internal/core/domain"
)

var ErrBadToken = errors.New("invalid token")

// Claims is the token payload. MedicoID is null for everyone except doctors
// that own a doctor record.
type Claims struct {
	ID       int64       `json:"id"`
	Nombre   string      `json:"nombre"`
	Apellido string      `json:"apellido"`
	Email    string      `json:"email"`
	Rol      domain.Role `json:"rol"`
	MedicoID *int64      `json:"medico_id"`
	jwt.RegisteredClaims
}

// Issue signs a token for user that expires after ttl.
func Issue(user *domain.User, medicoID *int64, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	c := Claims{
		ID:       user.ID,
		Nombre:   user.Nombre,
		Apellido: user.Apellido,
		Email:    user.Email,
		Rol:      user.Rol,
		MedicoID: medicoID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// Parse verifies signature and expiry of raw and returns its claims.
func Parse(raw, secret string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		// block alg confusion
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return nil, ErrBadToken
	}
	return c, nil
}
