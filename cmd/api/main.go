package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/club-service/internal/api/http"
	"github.com/spec-kit/club-service/internal/api/http/handlers"
	"github.com/spec-kit/club-service/internal/auth"
	"github.com/spec-kit/club-service/internal/config"
	"github.com/spec-kit/club-service/internal/events"
	"github.com/spec-kit/club-service/internal/observability"
	"github.com/spec-kit/club-service/internal/persistence"
	"github.com/spec-kit/club-service/internal/repository"
	"github.com/spec-kit/club-service/internal/service"
	"github.com/spec-kit/club-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	clubRepo := repository.NewClubRepository(pool)
	eventRepo := repository.NewEventRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartAuditWorker(dispatcher, logger)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:   userRepo,
		ClubRepo:   clubRepo,
		Dispatcher: dispatcher,
	})
	eventService := service.NewEventService(service.EventDependencies{
		EventRepo:  eventRepo,
		ClubRepo:   clubRepo,
		Dispatcher: dispatcher,
		Cache:      redis.ClientHandle(),
		CacheTTL:   cfg.Cache.ListingTTL(),
	})
	clubService := service.NewClubService(service.ClubDependencies{
		ClubRepo:         clubRepo,
		EventRepo:        eventRepo,
		RegistrationRepo: registrationRepo,
		UserRepo:         userRepo,
		Cache:            redis.ClientHandle(),
		CacheTTL:         cfg.Cache.ListingTTL(),
	})
	registrationService := service.NewRegistrationService(service.RegistrationDependencies{
		RegistrationRepo: registrationRepo,
		EventRepo:        eventRepo,
		UserRepo:         userRepo,
		Dispatcher:       dispatcher,
	})
	userService := service.NewUserService(userRepo, clubRepo)

	policy := auth.DefaultPolicyTable()
	resolver := auth.NewResolver(authService.TokenManager(), policy)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:     handlers.NewAuthHandler(authService),
		Events:   handlers.NewEventsHandler(eventService),
		Clubs:    handlers.NewClubsHandler(clubService),
		Admin:    handlers.NewAdminHandler(clubService, eventService, userService),
		Faculty:  handlers.NewFacultyHandler(eventService, registrationService),
		Student:  handlers.NewStudentHandler(registrationService),
		Resolver: resolver,
		Policy:   policy,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
