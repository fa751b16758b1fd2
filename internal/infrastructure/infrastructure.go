// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, persistence, locks, generation) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/slide-lab/internal/config"
	"github.com/JaimeStill/slide-lab/internal/gateway"
	"github.com/JaimeStill/slide-lab/internal/generator"
	"github.com/JaimeStill/slide-lab/internal/locks"
	"github.com/JaimeStill/slide-lab/pkg/database"
	"github.com/JaimeStill/slide-lab/pkg/lifecycle"
	"github.com/JaimeStill/slide-lab/pkg/logging"
)

// Infrastructure holds the core systems required by all domain modules.
// Database is nil unless the postgres gateway is selected.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Gateway   gateway.Gateway
	Locks     locks.Locker
	Generator generator.Client

	autoMigrate bool
	redis       *locks.Redis
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := logging.New(&cfg.Logging)

	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
	}

	switch cfg.Gateway.Backend {
	case config.GatewayPostgres:
		db, err := database.New(&cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("database init failed: %w", err)
		}
		infra.Database = db
		infra.Gateway = gateway.NewPostgres(db.Connection(), logger, cfg.API.Pagination)
		infra.autoMigrate = cfg.Database.AutoMigrate
	default:
		infra.Gateway = gateway.NewMemory(logger, cfg.API.Pagination)
	}

	var locker locks.Locker
	switch cfg.Locks.Backend {
	case config.LocksRedis:
		r, err := locks.NewRedis(
			cfg.Locks.RedisURL,
			cfg.Locks.Prefix,
			cfg.Locks.TTLDuration(),
			cfg.Locks.RetryIntervalDuration(),
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("locks init failed: %w", err)
		}
		infra.redis = r
		locker = r
	default:
		locker = locks.NewMemory()
	}
	infra.Locks = locks.WithWait(locker, cfg.Locks.WaitTimeoutDuration())

	gen, err := generator.New(lc.Context(), &cfg.Generator, logger)
	if err != nil {
		return nil, fmt.Errorf("generator init failed: %w", err)
	}
	infra.Generator = gen

	logger.Info(
		"infrastructure configured",
		"gateway", cfg.Gateway.Backend,
		"locks", cfg.Locks.Backend,
		"generator", cfg.Generator.Provider,
	)

	return infra, nil
}

// Start initializes all infrastructure systems and registers them with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if i.Database != nil {
		if err := i.Database.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("database start failed: %w", err)
		}
		if i.autoMigrate {
			if err := i.Database.Migrate(gateway.Migrations, gateway.MigrationsDir); err != nil {
				return fmt.Errorf("database migrate failed: %w", err)
			}
		}
	}
	if i.redis != nil {
		if err := i.redis.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("locks start failed: %w", err)
		}
	}
	return nil
}
