package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/org-access-service/internal/api/http"
	"github.com/spec-kit/org-access-service/internal/api/http/handlers"
	"github.com/spec-kit/org-access-service/internal/auth"
	"github.com/spec-kit/org-access-service/internal/config"
	"github.com/spec-kit/org-access-service/internal/events"
	"github.com/spec-kit/org-access-service/internal/observability"
	"github.com/spec-kit/org-access-service/internal/persistence"
	"github.com/spec-kit/org-access-service/internal/repository"
	"github.com/spec-kit/org-access-service/internal/service"
	"github.com/spec-kit/org-access-service/internal/worker"
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

	dispatcher := events.NewInMemoryDispatcher(logger)
	metrics := observability.NewMetrics()

	pool := pg.PoolHandle()
	staffRepo := repository.NewStaffRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)
	sessions := repository.NewSessionStore(redis.Client)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		StaffRepo:         staffRepo,
		SessionStore:      sessions,
		PasswordResetRepo: resetRepo,
		Dispatcher:        dispatcher,
	})
	orgService := service.NewOrgService(staffRepo)
	staffService := service.NewStaffService(*cfg, staffRepo, dispatcher)

	resolver := auth.NewSessionResolver(authService.TokenManager(), sessions, staffRepo, dispatcher)
	authMiddleware := auth.NewMiddleware(resolver, logger)

	audit := worker.NewAuditWorker(dispatcher, logger)
	audit.Start()
	defer audit.Stop()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Access:         handlers.NewAccessHandler(cfg.Gate.SignInPath, metrics),
		Org:            handlers.NewOrgHandler(orgService),
		Staff:          handlers.NewStaffHandler(staffService),
		AuthMiddleware: authMiddleware,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Gate:           cfg.Gate,
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
