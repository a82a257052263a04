package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/maintenance-service/internal/api/http"
	"github.com/spec-kit/maintenance-service/internal/api/http/handlers"
	"github.com/spec-kit/maintenance-service/internal/auth"
	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/events"
	"github.com/spec-kit/maintenance-service/internal/notify"
	"github.com/spec-kit/maintenance-service/internal/observability"
	"github.com/spec-kit/maintenance-service/internal/persistence"
	"github.com/spec-kit/maintenance-service/internal/repository"
	"github.com/spec-kit/maintenance-service/internal/service"
	"github.com/spec-kit/maintenance-service/internal/sla"
	"github.com/spec-kit/maintenance-service/internal/upload"
	"github.com/spec-kit/maintenance-service/internal/worker"
)

const metricsNamespace = "maintenance"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	metrics := observability.NewMetrics(metricsNamespace)

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.Pool
	ticketRepo := repository.NewTicketRepository(pool)
	eventRepo := repository.NewTicketEventRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	repairTypeRepo := repository.NewRepairTypeRepository(pool)
	surveyRepo := repository.NewSurveyRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	monitorState := repository.NewMonitorStateRepository(redis.Client, cfg.App.Name+":sla")

	dispatcher := events.NewInMemoryDispatcher()
	policy := sla.NewPolicy(cfg.SLA.WarnWindow())
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo: userRepo,
		RoleRepo: roleRepo,
		Tokens:   tokens,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: ticketRepo,
		EventRepo:  eventRepo,
		Dispatcher: dispatcher,
		Policy:     policy,
		Logger:     logger.Named("tickets"),
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	attachmentService := service.NewAttachmentService(attachmentRepo)
	monitor := service.NewSLAMonitor(service.SLAMonitorDependencies{
		TicketRepo: ticketRepo,
		EventRepo:  eventRepo,
		StateRepo:  monitorState,
		Dispatcher: dispatcher,
		Recorder:   metrics,
		Policy:     policy,
		LockTTL:    cfg.SLA.LockTTL(),
		Logger:     logger,
	})

	mailer := notify.NewMailer(cfg.Mail, logger)
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, userService, mailer, logger.Named("notifications"), cfg.Mail))

	var slaWorker *worker.SLAWorker
	if cfg.SLA.MonitorEnabled {
		slaWorker = worker.NewSLAWorker(monitor, cfg.SLA.Schedule, cfg.SLA.LockTTL(), logger)
		if err := slaWorker.Start(ctx); err != nil {
			logger.Fatal("failed to start SLA monitor", zap.Error(err))
		}
	}

	app := httptransport.NewApp(*cfg, logger, metrics)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:           handlers.NewAuthHandler(authService, cfg.Auth.CookieName, cfg.App.Env == "production"),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		TicketEvents:   handlers.NewTicketEventsHandler(service.NewTicketEventService(eventRepo, ticketRepo)),
		Users:          handlers.NewUsersHandler(userService),
		Roles:          handlers.NewRolesHandler(service.NewRoleService(roleRepo)),
		Locations:      handlers.NewLocationsHandler(service.NewLocationService(locationRepo)),
		RepairTypes:    handlers.NewRepairTypesHandler(service.NewRepairTypeService(repairTypeRepo)),
		Surveys:        handlers.NewSurveysHandler(service.NewSurveyService(surveyRepo)),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService),
		Uploads:        handlers.NewUploadHandler(upload.NewStore(cfg.Upload.Dir, cfg.Upload.MaxBytes), attachmentService, logger),
		SLAMonitor:     handlers.NewSLAMonitorHandler(monitor),
		AuthMiddleware: auth.NewAuthMiddleware(tokens, cfg.Auth.CookieName),
		Metrics:        metrics,
		UploadDir:      cfg.Upload.Dir,
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if slaWorker != nil {
		slaWorker.Stop()
	}
	if err := app.Shutdown(); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
