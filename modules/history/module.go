package history

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/scicalc-demo/domain/history"
	"github.com/example/scicalc-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Module records calculator computations in SQLite.
type Module struct {
	db     *gorm.DB
	repo   *Repository
	dbPath string
	debug  bool
	logger types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventConsumerModule   = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a history module storing entries at dbPath.
// debug enables GORM SQL logging.
func NewModule(dbPath string, debug bool, logger types.Logger) *Module {
	return &Module{
		dbPath: dbPath,
		debug:  debug,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "history"
}

// RegisterEventConsumers subscribes to completed calculations.
func (m *Module) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(
		registry, events.CalculationCompletedV1, m.handleCalculationCompleted, m,
	); err != nil {
		return fmt.Errorf("failed to register CalculationCompleted consumer: %w", err)
	}

	m.logger.Info("Registered event consumers", "events", "CalculationCompleted")
	return nil
}

// RegisterServices registers request-reply services in the service container.
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "list-history", json.Unmarshal, json.Marshal, m.listHistory,
	); err != nil {
		return fmt.Errorf("failed to register list-history service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "clear-history", json.Unmarshal, json.Marshal, m.clearHistory,
	); err != nil {
		return fmt.Errorf("failed to register clear-history service: %w", err)
	}

	m.logger.Info("Registered services", "services", "list-history, clear-history")
	return nil
}

// Start opens the database and runs migrations.
func (m *Module) Start(_ context.Context) error {
	logLevel := logger.Silent
	if m.debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Entry{}, &domain.DeletedSession{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	m.db = db
	m.repo = NewRepository(db)

	m.logger.Info("History module started", "path", m.dbPath)
	return nil
}

// Stop closes the database connection.
func (m *Module) Stop(_ context.Context) error {
	if m.db == nil {
		return nil
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	m.logger.Info("History module stopped")
	return nil
}

// Health pings the database.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get sql.DB: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"driver": "sqlite",
			"path":   m.dbPath,
		},
	}
}
