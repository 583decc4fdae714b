package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/botica/citas-api/internal/api/metrics"
	"github.com/botica/citas-api/internal/core/domain"
	"github.com/botica/citas-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry POST /citas safely.
const HeaderIdempotencyKey = "Idempotency-Key"

// AppointmentHandler handles HTTP requests for appointments.
type AppointmentHandler struct {
	service ports.AppointmentService
}

func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Create books an appointment for the calling patient.
//
// @Summary      Book appointment
// @Tags         citas
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string                    false  "Retry key"
// @Param        body             body      createAppointmentRequest  true   "Slot"
// @Success      201              {object}  appointmentResponse
// @Failure      400              {object}  messageResponse
// @Failure      401              {object}  messageResponse
// @Failure      403              {object}  messageResponse
// @Failure      404              {object}  messageResponse
// @Security     BearerAuth
// @Router       /citas [post]
func (h *AppointmentHandler) Create(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cita, err := h.service.Create(c.Request().Context(), ports.CreateAppointmentInput{
		PacienteID:     claims.ID,
		MedicoID:       req.MedicoID,
		Fecha:          req.Fecha,
		Hora:           req.Hora,
		IdempotencyKey: strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey)),
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			metrics.AppointmentConflictsTotal.Inc()
		}
		return err
	}
	metrics.AppointmentsBookedTotal.Inc()

	return c.JSON(http.StatusCreated, appointmentResponse{Message: "Cita registrada", Cita: cita})
}

// ListMine returns the calling patient's appointments.
//
// @Summary      List my appointments
// @Tags         citas
// @Produce      json
// @Success      200  {array}   domain.AppointmentView
// @Failure      401  {object}  messageResponse
// @Security     BearerAuth
// @Router       /citas/paciente [get]
func (h *AppointmentHandler) ListMine(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	list, err := h.service.ListByPatient(c.Request().Context(), claims.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ListByDoctor returns the appointments of a doctor.
//
// @Summary      List appointments of a doctor
// @Tags         citas
// @Produce      json
// @Param        id   path      int  true  "Doctor id"
// @Success      200  {array}   domain.AppointmentView
// @Failure      400  {object}  messageResponse
// @Security     BearerAuth
// @Router       /citas/medico/{id} [get]
func (h *AppointmentHandler) ListByDoctor(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.service.ListByDoctor(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ListAll returns every appointment.
//
// @Summary      List all appointments
// @Tags         citas
// @Produce      json
// @Success      200  {array}  domain.AppointmentView
// @Security     BearerAuth
// @Router       /citas [get]
func (h *AppointmentHandler) ListAll(c echo.Context) error {
	list, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// UpdateStatus overwrites the status of an appointment.
//
// @Summary      Update appointment status
// @Tags         citas
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Appointment id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  updateStatusResponse
// @Failure      400   {object}  messageResponse
// @Security     BearerAuth
// @Router       /citas/{id}/estado [put]
func (h *AppointmentHandler) UpdateStatus(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la solicitud inválido")
	}
	estado := domain.AppointmentStatus(req.Estado)
	if !estado.Valid() {
		return domain.ErrInvalidStatus
	}

	if err := h.service.UpdateStatus(c.Request().Context(), id, estado, actorOf(claims)); err != nil {
		return err
	}
	metrics.AppointmentStatusChangesTotal.WithLabelValues(string(estado)).Inc()

	return c.JSON(http.StatusOK, updateStatusResponse{
		Message: "Estado actualizado",
		Result:  statusResult{ID: id, Estado: estado},
	})
}

// History returns the audit trail of an appointment, oldest first.
//
// @Summary      Appointment status history
// @Tags         citas
// @Produce      json
// @Param        id   path      int  true  "Appointment id"
// @Success      200  {array}   domain.StatusChange
// @Security     BearerAuth
// @Router       /citas/{id}/historial [get]
func (h *AppointmentHandler) History(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	history, err := h.service.History(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}
