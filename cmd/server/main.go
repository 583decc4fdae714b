// @title           Citas API
// @version         1.0
// @description     Medical appointment booking: patients, doctors, specialties, schedules and appointments.
// @BasePath        /api
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/botica/citas-api/internal/api"
	"github.com/botica/citas-api/internal/api/middleware"
	"github.com/botica/citas-api/internal/core/ports"
	"github.com/botica/citas-api/internal/core/service"
	"github.com/botica/citas-api/internal/infrastructure/config"
	mongodb "github.com/botica/citas-api/internal/infrastructure/db/mongo"
	"github.com/botica/citas-api/internal/infrastructure/db/postgres"
	redisdb "github.com/botica/citas-api/internal/infrastructure/db/redis"
	"github.com/botica/citas-api/internal/infrastructure/http/handlers"
	"github.com/botica/citas-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := logger.Init(logger.Options{Service: "citas-api"})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "citas-api",
	})

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxConns: cfg.Postgres.MaxConns})
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connect")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("postgres migrate")
	}
	log.Info().Msg("connected to postgres")

	readiness := map[string]handlers.Check{"postgres": handlers.PostgresCheck(pool)}

	var audit ports.AuditRepository
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongo connect")
		}
		defer func() {
			if err := mongodb.Disconnect(client); err != nil {
				log.Warn().Err(err).Msg("mongo disconnect")
			}
		}()
		audit = mongodb.NewAuditRepository(db)
		readiness["mongo"] = handlers.MongoCheck(client)
		log.Info().Str("database", cfg.Mongo.Database).Msg("audit trail enabled")
	} else {
		log.Warn().Msg("MONGO_URI not set, audit trail disabled")
	}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connect")
		}
		defer client.Close()
		idem = redisdb.NewIdempotencyStore(client, cfg.Redis.IdempotencyTTL)
		readiness["redis"] = handlers.RedisCheck(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("idempotency keys enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, Idempotency-Key ignored")
	}

	if cfg.SignupAnyRole {
		log.Warn().Msg("SIGNUP_ANY_ROLE is on: public registration can create admin accounts")
	}

	users := postgres.NewUserRepository(pool)
	doctors := postgres.NewDoctorRepository(pool)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	defer limiter.Close()

	e := api.NewRouter(api.Deps{
		Logger:       log,
		JWTSecret:    cfg.JWTSecret,
		CORSOrigins:  cfg.CORSOrigins,
		RateLimiter:  limiter,
		Readiness:    readiness,
		Auth:         service.NewAuthService(users, doctors, cfg.JWTSecret, cfg.TokenTTL, log, service.WithSignupAnyRole(cfg.SignupAnyRole)),
		Users:        service.NewUserService(users),
		Specialties:  service.NewSpecialtyService(postgres.NewSpecialtyRepository(pool)),
		Doctors:      service.NewDoctorService(doctors, log),
		Schedules:    service.NewScheduleService(postgres.NewScheduleRepository(pool)),
		Appointments: service.NewAppointmentService(postgres.NewAppointmentRepository(pool), audit, idem, log),
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}
