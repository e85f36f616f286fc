package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/scicalc-demo/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/redis/go-redis/v9"
)

// Store backends selectable through Config.Store.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds calculator module configuration.
type Config struct {
	Store      string
	RedisAddr  string
	SessionTTL time.Duration
}

// DefaultConfig returns an in-memory configuration with a 24 hour session TTL.
func DefaultConfig() Config {
	return Config{
		Store:      StoreMemory,
		RedisAddr:  "localhost:6379",
		SessionTTL: 24 * time.Hour,
	}
}

// Module owns calculator sessions and exposes them as request-reply services.
type Module struct {
	cfg      Config
	store    SessionStore
	service  *Service
	eventBus mono.EventBus
	logger   types.Logger
}

// Compile-time interface checks
var (
	_ mono.Module                = (*Module)(nil)
	_ mono.ServiceProviderModule = (*Module)(nil)
	_ mono.EventEmitterModule    = (*Module)(nil)
	_ mono.HealthCheckableModule = (*Module)(nil)
)

// NewModule creates a calculator module.
func NewModule(cfg Config, logger types.Logger) *Module {
	return &Module{
		cfg:    cfg,
		logger: logger,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "calculator"
}

// SetEventBus receives the EventBus from the framework.
func (m *Module) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

// EmitEvents declares the events this module can emit.
func (m *Module) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.CalculationCompletedV1.ToBase(),
	}
}

// RegisterServices registers request-reply services in the service container.
// Names are prefixed by the framework, e.g. "services.calculator.press-keys".
func (m *Module) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-session", json.Unmarshal, json.Marshal, m.createSession,
	); err != nil {
		return fmt.Errorf("failed to register create-session service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-session", json.Unmarshal, json.Marshal, m.getSession,
	); err != nil {
		return fmt.Errorf("failed to register get-session service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "press-keys", json.Unmarshal, json.Marshal, m.pressKeys,
	); err != nil {
		return fmt.Errorf("failed to register press-keys service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "delete-session", json.Unmarshal, json.Marshal, m.deleteSession,
	); err != nil {
		return fmt.Errorf("failed to register delete-session service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "keypad", json.Unmarshal, json.Marshal, m.keypad,
	); err != nil {
		return fmt.Errorf("failed to register keypad service: %w", err)
	}

	m.logger.Info("Registered services",
		"services", "create-session, get-session, press-keys, delete-session, keypad")
	return nil
}

// Start opens the session store and creates the service.
func (m *Module) Start(ctx context.Context) error {
	store, err := m.openStore(ctx)
	if err != nil {
		return err
	}
	m.store = store

	if m.eventBus == nil {
		m.logger.Warn("EventBus not set, calculation events will not be published")
	}
	m.service = NewService(store, m.publish, m.logger)

	m.logger.Info("Calculator module started",
		"store", m.cfg.Store,
		"sessionTTL", m.cfg.SessionTTL.String())
	return nil
}

// Stop closes the session store.
func (m *Module) Stop(_ context.Context) error {
	if m.store != nil {
		if err := m.store.Close(); err != nil {
			return fmt.Errorf("failed to close session store: %w", err)
		}
	}
	m.logger.Info("Calculator module stopped")
	return nil
}

// Health reports whether the session store is reachable.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.store == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "session store not initialized",
		}
	}

	if err := m.store.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("session store ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"store": m.cfg.Store,
			"ttl":   m.cfg.SessionTTL.String(),
		},
	}
}

// Service returns the calculator service instance.
func (m *Module) Service() *Service {
	return m.service
}

func (m *Module) openStore(ctx context.Context) (SessionStore, error) {
	switch m.cfg.Store {
	case "", StoreMemory:
		return NewMemoryStore(m.cfg.SessionTTL), nil
	case StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         m.cfg.RedisAddr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", m.cfg.RedisAddr, err)
		}
		m.logger.Info("Connected to Redis", "addr", m.cfg.RedisAddr)
		return NewRedisStore(client, DefaultRedisPrefix, m.cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", m.cfg.Store)
	}
}

func (m *Module) publish(event events.CalculationCompletedEvent) error {
	if m.eventBus == nil {
		return nil
	}
	return events.CalculationCompletedV1.Publish(m.eventBus, event, nil)
}
