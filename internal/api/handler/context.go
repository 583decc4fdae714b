package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/botica/citas-api/internal/api/middleware"
	"github.com/botica/citas-api/internal/auth"
	"github.com/botica/citas-api/internal/core/ports"
)

// ctxClaims returns the claims injected by the Auth middleware. Their absence
// means the route was mounted without Auth and is treated as unauthenticated.
func ctxClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "No autenticado")
	}
	return claims, nil
}

func actorOf(claims *auth.Claims) ports.Actor {
	return ports.Actor{UserID: claims.ID, Rol: claims.Rol}
}
