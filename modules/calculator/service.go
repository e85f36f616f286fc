package calculator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	engine "github.com/example/scicalc-demo/domain/calculator"
	"github.com/example/scicalc-demo/events"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
)

// MaxKeysPerPress bounds the number of tokens accepted in one press-keys call.
const MaxKeysPerPress = 256

const lockStripes = 64

// PublishFunc delivers a CalculationCompleted event.
type PublishFunc func(event events.CalculationCompletedEvent) error

// Service runs calculator sessions on top of a SessionStore.
// Presses on the same session are applied one request at a time.
type Service struct {
	store   SessionStore
	publish PublishFunc
	logger  types.Logger
	now     func() time.Time
	locks   [lockStripes]sync.Mutex
}

// NewService creates a session service. publish may be nil.
func NewService(store SessionStore, publish PublishFunc, logger types.Logger) *Service {
	return &Service{
		store:   store,
		publish: publish,
		logger:  logger,
		now:     time.Now,
	}
}

// CreateSession starts a new session in the initial state.
func (s *Service) CreateSession(ctx context.Context) (*Session, error) {
	now := s.now()
	session := &Session{
		ID:        uuid.New().String(),
		State:     engine.Initial(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Info("Session created", "session", session.ID)
	return session, nil
}

// GetSession loads a session.
func (s *Service) GetSession(ctx context.Context, id string) (*Session, error) {
	if err := validateSessionID(id); err != nil {
		return nil, err
	}
	return s.store.Load(ctx, id)
}

// PressKeys applies keys to a session in order and saves the final state.
// It returns the updated session and every computation the keys produced.
func (s *Service) PressKeys(ctx context.Context, id string, keys []string) (*Session, []Computation, error) {
	if err := validateSessionID(id); err != nil {
		return nil, nil, err
	}
	if len(keys) == 0 {
		return nil, nil, ErrNoKeys
	}
	if len(keys) > MaxKeysPerPress {
		return nil, nil, fmt.Errorf("%w: %d exceeds limit of %d", ErrTooManyKeys, len(keys), MaxKeysPerPress)
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	state := session.State
	computations := make([]Computation, 0)
	for _, key := range keys {
		expression, described := engine.Describe(state, key)
		state = engine.Transition(state, key)
		if described {
			computations = append(computations, Computation{
				Token:      key,
				Expression: expression,
				Result:     state.Display,
				Failed:     state.IsError(),
			})
		}
	}

	session.State = state
	session.UpdatedAt = s.now()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to save session: %w", err)
	}

	s.logger.Debug("Keys pressed",
		"session", id,
		"keys", len(keys),
		"display", state.Display)

	for _, c := range computations {
		s.emit(session.ID, c, session.UpdatedAt)
	}

	return session, computations, nil
}

// DeleteSession removes a session.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	if err := validateSessionID(id); err != nil {
		return err
	}

	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Session deleted", "session", id)
	return nil
}

// emit publishes a computation; failures are logged and otherwise ignored.
func (s *Service) emit(sessionID string, c Computation, at time.Time) {
	if s.publish == nil {
		return
	}

	event := events.CalculationCompletedEvent{
		SessionID:  sessionID,
		Token:      c.Token,
		Expression: c.Expression,
		Result:     c.Result,
		Failed:     c.Failed,
		OccurredAt: at,
	}
	if err := s.publish(event); err != nil {
		s.logger.Warn("Failed to publish CalculationCompleted event",
			"session", sessionID,
			"expression", c.Expression,
			"error", err)
	}
}

func (s *Service) lockFor(id string) *sync.Mutex {
	return &s.locks[xxhash.Sum64String(id)%lockStripes]
}

func validateSessionID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return nil
}
