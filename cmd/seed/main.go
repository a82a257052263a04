package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/maintenance-service/internal/config"
	"github.com/spec-kit/maintenance-service/internal/domain"
	"github.com/spec-kit/maintenance-service/internal/observability"
	"github.com/spec-kit/maintenance-service/internal/persistence"
	"github.com/spec-kit/maintenance-service/internal/repository"
	"github.com/spec-kit/maintenance-service/internal/seed"
	"github.com/spec-kit/maintenance-service/internal/service"
	apperrors "github.com/spec-kit/maintenance-service/pkg/util"
)

// seed runs the fixture file (first argument, else SEED_FILE) and then creates the
// SEED_ADMIN_EMAIL account when it does not exist yet.
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

	ctx := context.Background()
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

	path := cfg.Seed.File
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	runner := seed.NewRunner(pg.Pool, logger.Named("seed"), nil)
	if _, err := runner.RunFile(ctx, path); err != nil {
		logger.Fatal("seeding failed", zap.String("file", path), zap.Error(err))
	}

	if cfg.Seed.AdminEmail == "" {
		return
	}
	if err := ensureAdmin(ctx, cfg, pg, logger); err != nil {
		logger.Fatal("failed to create admin account", zap.Error(err))
	}
}

func ensureAdmin(ctx context.Context, cfg *config.Config, pg *persistence.Postgres, logger *zap.Logger) error {
	users := repository.NewUserRepository(pg.Pool)
	if _, err := users.GetByEmail(ctx, cfg.Seed.AdminEmail); err == nil {
		logger.Info("admin account already exists", zap.String("email", cfg.Seed.AdminEmail))
		return nil
	} else if !apperrors.IsNotFound(err) {
		return err
	}

	role, err := repository.NewRoleRepository(pg.Pool).GetByName(ctx, domain.RoleAdmin)
	if err != nil {
		return err
	}
	admin, err := service.NewUserService(users, cfg.Auth.BcryptCost).Create(ctx, &domain.User{
		Email:    cfg.Seed.AdminEmail,
		Name:     cfg.Seed.AdminName,
		Password: cfg.Seed.AdminPassword,
		RoleID:   &role.ID,
	})
	if err != nil {
		return err
	}
	logger.Info("admin account created", zap.String("id", admin.ID), zap.String("email", admin.Email))
	return nil
}
