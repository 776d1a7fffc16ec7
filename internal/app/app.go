package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/terrarisk/workshop-server/internal/config"
	"github.com/terrarisk/workshop-server/internal/httpapi"
	"github.com/terrarisk/workshop-server/internal/repository"
	"github.com/terrarisk/workshop-server/internal/service"
	"github.com/terrarisk/workshop-server/pkg/cache"
	dbbuilder "github.com/terrarisk/workshop-server/pkg/database"
	"github.com/terrarisk/workshop-server/pkg/httpserver"
)

type App struct {
	logger     *zap.Logger
	dbPool     *sql.DB
	cache      *cache.Cache
	httpServer *httpserver.Server
}

func NewApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	dbPool, err := dbbuilder.New(
		dbbuilder.WithDriver(cfg.DBDriver),
		dbbuilder.WithDataSource(cfg.DBPath),
	)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	logger.Info("Database pool initialized", zap.String("path", cfg.DBPath))

	if err := repository.Migrate(ctx, dbPool); err != nil {
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	cacheClient, err := cache.New(ctx,
		cache.WithAddress(cfg.RedisAddr),
	)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}
	logger.Info("Cache client initialized", zap.String("addr", cfg.RedisAddr))

	groupRepo := repository.NewGroupRepository(dbPool)
	workshopRepo := repository.NewWorkshopRepository(dbPool)

	groupService := service.NewGroupService(groupRepo, logger)
	workshopService := service.NewWorkshopService(groupRepo, workshopRepo, logger)

	handlers := httpapi.NewHTTPHandlers(groupService, workshopService, cacheClient, logger, cfg.CacheTTL)

	httpServer, err := httpserver.New(handlers.Router(cfg.CORSAllowedOrigins),
		httpserver.WithPort(cfg.HTTPPort),
		httpserver.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP server: %w", err)
	}

	return &App{
		logger:     logger,
		dbPool:     dbPool,
		cache:      cacheClient,
		httpServer: httpServer,
	}, nil
}

// Run starts the application and blocks until a shutdown signal is received.
func (a *App) Run() error {
	a.logger.Info("application starting")

	a.httpServer.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	a.logger.Info("application shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error("http server shutdown error", zap.Error(err))
	}

	if err := a.cache.Close(); err != nil {
		a.logger.Error("cache shutdown error", zap.Error(err))
	}
	if err := a.dbPool.Close(); err != nil {
		a.logger.Error("database shutdown error", zap.Error(err))
	}

	a.logger.Info("graceful shutdown completed")
	_ = a.logger.Sync()
	return nil
}
