package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/botica/citas-api/docs"
	"github.com/botica/citas-api/internal/api/handler"
	"github.com/botica/citas-api/internal/api/middleware"
	"github.com/botica/citas-api/internal/core/domain"
	"github.com/botica/citas-api/internal/core/ports"
	"github.com/botica/citas-api/internal/infrastructure/http/handlers"
)

// Deps carries everything the router needs. RateLimiter and Readiness may be
// nil.
type Deps struct {
	Logger      zerolog.Logger
	JWTSecret   string
	CORSOrigins []string
	RateLimiter *middleware.RateLimiter
	Readiness   map[string]handlers.Check

	Auth         ports.AuthService
	Users        ports.UserService
	Specialties  ports.SpecialtyService
	Doctors      ports.DoctorService
	Schedules    ports.ScheduleService
	Appointments ports.AppointmentService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// request metrics go to a per-router registry so routers can be built
	// more than once per process
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: corsOrigins(d.CORSOrigins),
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			handler.HeaderIdempotencyKey,
		},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "citas",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(renderErrors)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	userHandler := handler.NewUserHandler(d.Users)
	specialtyHandler := handler.NewSpecialtyHandler(d.Specialties)
	doctorHandler := handler.NewDoctorHandler(d.Doctors)
	scheduleHandler := handler.NewScheduleHandler(d.Schedules)
	appointmentHandler := handler.NewAppointmentHandler(d.Appointments)

	authMW := middleware.Auth(d.JWTSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)
	staffOnly := middleware.RBAC(domain.RoleDoctor, domain.RoleAdmin)
	patientOnly := middleware.RBAC(domain.RolePatient)

	var limited []echo.MiddlewareFunc
	if d.RateLimiter != nil {
		limited = append(limited, middleware.RateLimit(d.RateLimiter))
	}

	api := e.Group("/api")

	// --- Users / auth ---
	api.POST("/users/register", authHandler.Register, limited...)
	api.GET("/users", userHandler.List, authMW, adminOnly)
	api.POST("/auth/login", authHandler.Login, limited...)

	// --- Catalog ---
	api.GET("/especialidades", specialtyHandler.List)
	api.POST("/especialidades", specialtyHandler.Create, authMW, adminOnly)
	api.GET("/medicos", doctorHandler.List)
	api.POST("/medicos", doctorHandler.Create, authMW, adminOnly)
	api.GET("/medicos/especialidad/:id", doctorHandler.ListBySpecialty)
	api.POST("/horarios", scheduleHandler.Create, authMW, staffOnly)
	api.GET("/horarios/medico/:id", scheduleHandler.ListByDoctor)
	api.DELETE("/horarios/:id", scheduleHandler.Delete, authMW, staffOnly)

	// --- Appointments ---
	api.POST("/citas", appointmentHandler.Create, authMW, patientOnly)
	api.GET("/citas", appointmentHandler.ListAll, authMW, adminOnly)
	api.GET("/citas/paciente", appointmentHandler.ListMine, authMW, patientOnly)
	api.GET("/citas/medico/:id", appointmentHandler.ListByDoctor, authMW, staffOnly)
	api.PUT("/citas/:id/estado", appointmentHandler.UpdateStatus, authMW, staffOnly)
	api.GET("/citas/:id/historial", appointmentHandler.History, authMW, staffOnly)

	// --- Operational (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Readiness, d.Logger)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error()
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// renderErrors hands route errors to the HTTP error handler so the logger and
// the request metrics above it see the final status code.
func renderErrors(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := next(c); err != nil {
			c.Error(err)
		}
		return nil
	}
}

func corsOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
