package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/botica/citas-api/internal/core/domain"
	"github.com/botica/citas-api/internal/core/ports"
)

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s debe ser un entero positivo", domain.ErrValidation, name)
	}
	return id, nil
}

type SpecialtyHandler struct {
	service ports.SpecialtyService
}

func NewSpecialtyHandler(service ports.SpecialtyService) *SpecialtyHandler {
	return &SpecialtyHandler{service: service}
}

// Create registers a specialty.
//
// @Summary      Create specialty
// @Tags         especialidades
// @Accept       json
// @Produce      json
// @Param        body  body      createSpecialtyRequest  true  "Specialty"
// @Success      201   {object}  specialtyResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Security     BearerAuth
// @Router       /especialidades [post]
func (h *SpecialtyHandler) Create(c echo.Context) error {
	var req createSpecialtyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Create(c.Request().Context(), req.Nombre, req.Descripcion)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, specialtyResponse{Message: "Especialidad creada", Especialidad: s})
}

// List returns every specialty.
//
// @Summary      List specialties
// @Tags         especialidades
// @Produce      json
// @Success      200  {array}  domain.Specialty
// @Router       /especialidades [get]
func (h *SpecialtyHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

type DoctorHandler struct {
	service ports.DoctorService
}

func NewDoctorHandler(service ports.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// Create links a user to a specialty as a doctor.
//
// @Summary      Register doctor
// @Tags         medicos
// @Accept       json
// @Produce      json
// @Param        body  body      createDoctorRequest  true  "Doctor"
// @Success      201   {object}  doctorResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Security     BearerAuth
// @Router       /medicos [post]
func (h *DoctorHandler) Create(c echo.Context) error {
	var req createDoctorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	d, err := h.service.Create(c.Request().Context(), req.UserID, req.EspecialidadID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doctorResponse{Message: "Médico registrado", Medico: d})
}

// List returns every doctor with name and specialty.
//
// @Summary      List doctors
// @Tags         medicos
// @Produce      json
// @Success      200  {array}  domain.DoctorListing
// @Router       /medicos [get]
func (h *DoctorHandler) List(c echo.Context) error {
	list, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// ListBySpecialty returns the doctors of one specialty.
//
// @Summary      List doctors by specialty
// @Tags         medicos
// @Produce      json
// @Param        id   path      int  true  "Specialty id"
// @Success      200  {array}   domain.DoctorListing
// @Failure      400  {object}  messageResponse
// @Router       /medicos/especialidad/{id} [get]
func (h *DoctorHandler) ListBySpecialty(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	list, err := h.service.ListBySpecialty(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

type ScheduleHandler struct {
	service ports.ScheduleService
}

func NewScheduleHandler(service ports.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Create registers a weekly working window for a doctor.
//
// @Summary      Create schedule
// @Tags         horarios
// @Accept       json
// @Produce      json
// @Param        body  body      createScheduleRequest  true  "Schedule"
// @Success      201   {object}  scheduleResponse
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Security     BearerAuth
// @Router       /horarios [post]
func (h *ScheduleHandler) Create(c echo.Context) error {
	var req createScheduleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cuerpo de la solicitud inválido")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	s, err := h.service.Create(c.Request().Context(), ports.CreateScheduleInput{
		MedicoID:   req.MedicoID,
		DiaSemana:  req.DiaSemana,
		HoraInicio: req.HoraInicio,
		HoraFin:    req.HoraFin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, scheduleResponse{Message: "Horario registrado", Horario: s})
}

// ListByDoctor returns the schedules of a doctor.
//
// @Summary      List schedules of a doctor
// @Tags         horarios
// @Produce      json
// @Param        id   path      int  true  "Doctor id"
// @Success      200  {array}   domain.Schedule
// @Router       /horarios/medico/{id} [get]
func (h *ScheduleHandler) ListByDoctor(c echo.Context) error {
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

// Delete removes a schedule.
//
// @Summary      Delete schedule
// @Tags         horarios
// @Produce      json
// @Param        id   path      int  true  "Schedule id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Security     BearerAuth
// @Router       /horarios/{id} [delete]
func (h *ScheduleHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Horario eliminado"})
}
