package app

import (
	"context"
	"fmt"

	"go-nexushr/internal/bootstrap"
	"go-nexushr/internal/realtime"
	"go-nexushr/internal/shared/audit"
	"go-nexushr/internal/shared/config"
	"go-nexushr/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// App is the wired API process. Close releases background consumers and
// connections in reverse start order.
type App struct {
	Router *gin.Engine
	Audit  audit.Logger

	hub     *realtime.Hub
	cancel  context.CancelFunc
	closers []func()
}

func BuildApp(cfg *config.Config, logger *zap.Logger) (*App, error) {
	log := logger.Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		Router: bootstrap.NewRouter(cfg.App.AllowedOrigins, cfg.IsProduction(), logger),
		Audit:  audit.NewStdoutLogger(logger),
		cancel: cancel,
	}
	a.closers = append(a.closers,
		func() { _ = sqlDB.Close() },
		func() { _ = redisClient.Close() },
	)

	hub, closers, err := registerModules(ctx, a.Router, modules{
		cfg:    cfg,
		db:     sqlDB,
		gormDB: gormDB,
		rdb:    redisClient,
		audit:  a.Audit,
		logger: logger,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	a.hub = hub
	a.closers = append(a.closers, closers...)

	log.Info("application wired", zap.String("env", cfg.App.Env))
	return a, nil
}

// StopStreams ends the change feed and every open SSE stream so the HTTP
// server can drain.
func (a *App) StopStreams() {
	a.cancel()
	if a.hub != nil {
		a.hub.Close()
	}
}

func (a *App) Close() {
	a.cancel()
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
