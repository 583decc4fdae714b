package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/botica/citas-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, validationDetail(err)
	case errors.Is(err, domain.ErrSlotTaken):
		return http.StatusBadRequest, "Ese horario ya está reservado con el médico"
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, "Estado inválido"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Credenciales inválidas"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuario no encontrado"
	case errors.Is(err, domain.ErrSpecialtyNotFound):
		return http.StatusNotFound, "Especialidad no encontrada"
	case errors.Is(err, domain.ErrDoctorNotFound):
		return http.StatusNotFound, "Médico no encontrado"
	case errors.Is(err, domain.ErrScheduleNotFound):
		return http.StatusNotFound, "Horario no encontrado"
	case errors.Is(err, domain.ErrAppointmentNotFound):
		return http.StatusNotFound, "Cita no encontrada"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "El email ya está registrado"
	case errors.Is(err, domain.ErrDoctorExists):
		return http.StatusConflict, "El usuario ya está registrado como médico"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Error interno del servidor"
}

// validationDetail drops the sentinel prefix from a wrapped validation error.
func validationDetail(err error) string {
	detail := strings.TrimPrefix(err.Error(), domain.ErrValidation.Error()+": ")
	if detail == domain.ErrValidation.Error() {
		return "Datos inválidos"
	}
	return detail
}
