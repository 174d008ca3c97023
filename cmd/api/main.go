package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/fixworks/repairdesk/internal/api/http"
	"github.com/fixworks/repairdesk/internal/api/http/handlers"
	"github.com/fixworks/repairdesk/internal/auth"
	"github.com/fixworks/repairdesk/internal/config"
	"github.com/fixworks/repairdesk/internal/events"
	"github.com/fixworks/repairdesk/internal/observability"
	"github.com/fixworks/repairdesk/internal/persistence"
	"github.com/fixworks/repairdesk/internal/repository"
	"github.com/fixworks/repairdesk/internal/service"
	"github.com/fixworks/repairdesk/internal/worker"
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

	var (
		ticketRepo  repository.TicketRepository
		roleRepo    repository.RoleRepository
		accountRepo repository.AccountRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		ticketRepo = repository.NewPgTicketRepository(pool)
		roleRepo = repository.NewPgRoleRepository(pool)
		accountRepo = repository.NewPgAccountRepository(pool)
	} else {
		ticketRepo = repository.NewMemoryTicketRepository()
		roleRepo = repository.NewMemoryRoleRepository()
		accountRepo = repository.NewMemoryAccountRepository()
	}

	dispatcher := events.NewInMemoryDispatcher()
	var stream *events.StreamPublisher
	if redis.Client != nil {
		stream = events.NewStreamPublisher(redis.Client, cfg.Redis.ActivityStream)
	}
	activityService := service.NewActivityService(dispatcher, stream, logger)
	worker.StartActivityWorker(activityService)

	roleService, err := service.NewRoleService(ctx, roleRepo, dispatcher, cfg.Policy)
	if err != nil {
		logger.Fatal("failed to seed roles", zap.Error(err))
	}
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		Roles:      roleService,
		Dispatcher: dispatcher,
	}, cfg.Policy)
	identityService := service.NewIdentityService(cfg.Auth, accountRepo)
	authMiddleware := auth.NewMiddleware(identityService.TokenManager())

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	checks := map[string]handlers.ReadinessCheck{}
	if pool := pg.PoolHandle(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if redis.Client != nil {
		checks["redis"] = redis.Ping
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(checks),
		Identity:       handlers.NewIdentityHandler(identityService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		AdminTickets:   handlers.NewAdminTicketsHandler(ticketService),
		Roles:          handlers.NewRolesHandler(roleService),
		AuthMiddleware: authMiddleware,
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
