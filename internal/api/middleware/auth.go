package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/botica/citas-api/internal/auth"
)

// ClaimsKey is the context key under which Auth stores *auth.Claims.
const ClaimsKey = "claims"

// Auth validates the bearer token and injects its claims into the context.
// A missing header is 401; a token that fails verification is 403.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Token no proporcionado")
			}

			claims, err := auth.Parse(strings.TrimSpace(parts[1]), jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Token inválido")
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

// ClaimsFrom returns the claims stored by Auth, if any.
func ClaimsFrom(c echo.Context) (*auth.Claims, bool) {
	claims, ok := c.Get(ClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
