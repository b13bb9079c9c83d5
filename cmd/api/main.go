package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/guard-service/internal/api/http"
	"github.com/spec-kit/guard-service/internal/api/http/handlers"
	"github.com/spec-kit/guard-service/internal/audit"
	"github.com/spec-kit/guard-service/internal/auth"
	"github.com/spec-kit/guard-service/internal/config"
	"github.com/spec-kit/guard-service/internal/identity"
	"github.com/spec-kit/guard-service/internal/observability"
	"github.com/spec-kit/guard-service/internal/persistence"
	"github.com/spec-kit/guard-service/internal/repository"
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

	var users repository.UserRepository
	if pool := pg.PoolHandle(); pool != nil {
		users = repository.NewUserRepository(pool)
	} else {
		logger.Warn("using in-memory user store; users do not survive restarts")
		users = repository.NewMemoryUserRepository()
	}

	metrics := observability.NewMetrics()

	var trail audit.Trail = audit.NewNopTrail()
	if redis.Client != nil {
		trail = audit.NewRedisTrail(redis.Client, cfg.Auth.AuditStream)
	}

	verifier := identity.NewClerkVerifier(identity.ClerkConfig{
		SecretKey: cfg.Auth.ClerkSecretKey,
		JWKSURL:   cfg.Auth.ClerkJWKSURL,
	})

	devAuthEnabled := cfg.DevAuthEnabled()
	if devAuthEnabled {
		logger.Warn("development authentication enabled", zap.String("env", cfg.App.Env))
	}

	factory := auth.NewStrategyFactory(
		auth.NewJWTStrategy(cfg.Auth.ClerkSecretKey, verifier, users),
		auth.NewEmailStrategy(users),
		auth.NewDevelopmentStrategy(devAuthEnabled, users),
	)
	authService := auth.NewService(factory, logger, metrics, trail)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Profile:     handlers.NewProfileHandler(),
		Admin:       handlers.NewAdminHandler(authService, metrics),
		Client:      handlers.NewClientHandler(),
		AuthService: authService,
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
