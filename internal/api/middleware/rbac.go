package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botica/citas-api/internal/core/domain"
)

// RBAC enforces role-based access control. It must run after Auth.
func RBAC(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "No autenticado")
			}
			if _, ok := allowed[claims.Rol]; !ok {
				return echo.NewHTTPError(http.StatusForbidden, "No autorizado")
			}
			return next(c)
		}
	}
}
