package app

import (
	"context"
	"database/sql"
	"time"

	"go-nexushr/internal/auth"
	"go-nexushr/internal/dashboard"
	"go-nexushr/internal/employee"
	"go-nexushr/internal/events"
	"go-nexushr/internal/export"
	"go-nexushr/internal/messaging/kafka"
	"go-nexushr/internal/messaging/kafka/consumer"
	"go-nexushr/internal/middleware"
	"go-nexushr/internal/rbac"
	"go-nexushr/internal/rbac/infra"
	"go-nexushr/internal/realtime"
	"go-nexushr/internal/roster"
	"go-nexushr/internal/shared/audit"
	"go-nexushr/internal/shared/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	hubBuffer    = 64
	sseHeartbeat = 25 * time.Second
)

type modules struct {
	cfg    *config.Config
	db     *sql.DB
	gormDB *gorm.DB
	rdb    *redis.Client
	audit  audit.Logger
	logger *zap.Logger
}

// registerModules wires every feature onto /api/v1 and starts the change
// feed goroutines. The returned closers stop what it started.
func registerModules(ctx context.Context, router *gin.Engine, m modules) (*realtime.Hub, []func(), error) {
	log := m.logger.Named("app.registry")
	var closers []func()

	// --- Repositories ---
	authRepo := auth.NewRepository(m.gormDB)
	employeeRepo := employee.NewRepository(m.gormDB)
	outboxRepo := kafka.NewOutboxRepository(m.db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(nil)
	if err != nil {
		return nil, nil, err
	}
	rbacService := rbac.NewService(enforcer, m.logger)

	// --- Services ---
	authService := auth.NewService(authRepo, m.rdb, auth.TokenConfig{
		Secret:              m.cfg.Auth.JWTSecret,
		AccessTTL:           m.cfg.Auth.AccessTTL,
		RecoveryTTL:         m.cfg.Auth.RecoveryTTL,
		ExposeRecoveryToken: !m.cfg.IsProduction(),
	}, m.logger)

	employeeOpts := []employee.ServiceOption{
		employee.WithOutbox(outboxRepo),
		employee.WithCache(m.rdb),
		employee.WithAudit(m.audit),
		employee.WithLogger(m.logger),
	}
	if m.cfg.App.EnforceCatalog {
		employeeOpts = append(employeeOpts, employee.WithCatalog(employee.DefaultCatalog))
	}
	employeeService := employee.NewService(m.db, employeeRepo, employeeOpts...)

	hub := realtime.NewHub(hubBuffer, m.logger)
	closers = append(closers, hub.Close)

	teamRoster := roster.New(employeeService, m.logger)
	dashboardService := dashboard.NewService(teamRoster, m.logger)
	exportService := export.NewService(teamRoster, employeeService, m.logger)

	// --- Change feed ---
	changes, unsubscribe := hub.Subscribe()
	closers = append(closers, unsubscribe)
	go teamRoster.Watch(ctx, changes)

	if m.cfg.Kafka.Broker != "" {
		reader := kafkago.NewReader(kafkago.ReaderConfig{
			Brokers:     []string{m.cfg.Kafka.Broker},
			Topic:       events.EmployeeChangesTopic,
			GroupID:     m.cfg.Kafka.GroupID,
			StartOffset: kafkago.LastOffset,
		})
		closers = append(closers, func() { _ = reader.Close() })

		go consumer.ConsumeEmployeeChanges(ctx, reader, func(_ context.Context, ev events.EmployeeChangedEvent) {
			hub.Broadcast(ev)
		}, m.logger)
	} else {
		log.Warn("KAFKA_BROKER not set, realtime change feed disabled")
	}

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, m.cfg.IsProduction(), m.logger)
	employeeHandler := employee.NewHandler(employeeService, m.logger)
	rosterHandler := roster.NewHandler(teamRoster, m.logger)
	dashboardHandler := dashboard.NewHandler(dashboardService, m.logger)
	exportHandler := export.NewHandler(exportService, m.logger)
	realtimeHandler := realtime.NewHandler(hub, sseHeartbeat, m.logger)
	rbacHandler := rbac.NewHandler(rbacService, m.logger)

	authMiddleware := middleware.AuthMiddleware(m.cfg.Auth.JWTSecret)
	idempotency := middleware.Idempotency(m.rdb)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, authMiddleware)
		rbac.RegisterRoutes(api, rbacHandler, authMiddleware)
		realtime.RegisterRoutes(api, realtimeHandler, rbacService, authMiddleware)
		employee.RegisterRoutes(api, employeeHandler, rbacService, authMiddleware, idempotency)
		roster.RegisterRoutes(api, rosterHandler, rbacService, authMiddleware)
		dashboard.RegisterRoutes(api, dashboardHandler, rbacService, authMiddleware)
		export.RegisterRoutes(api, exportHandler, rbacService, authMiddleware)
	}

	return hub, closers, nil
}
