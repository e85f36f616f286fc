package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/example/scicalc-demo/events"
	"github.com/go-monolith/mono/pkg/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockLogger implements types.Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)          {}
func (m *mockLogger) Info(msg string, args ...any)           {}
func (m *mockLogger) Warn(msg string, args ...any)           {}
func (m *mockLogger) Error(msg string, args ...any)          {}
func (m *mockLogger) With(args ...any) types.Logger          { return m }
func (m *mockLogger) WithError(err error) types.Logger       { return m }
func (m *mockLogger) WithModule(module string) types.Logger { return m }

// eventRecorder captures published events.
type eventRecorder struct {
	mu     sync.Mutex
	events []events.CalculationCompletedEvent
	err    error
}

func (r *eventRecorder) publish(event events.CalculationCompletedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return r.err
}

func newTestService(t *testing.T) (*Service, *eventRecorder) {
	t.Helper()
	rec := &eventRecorder{}
	return NewService(NewMemoryStore(0), rec.publish, &mockLogger{}), rec
}

func TestService_CreateSession(t *testing.T) {
	svc, _ := newTestService(t)

	session, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	_, err = uuid.Parse(session.ID)
	assert.NoError(t, err)
	assert.Equal(t, "0", session.State.Display)
	assert.Equal(t, session.CreatedAt, session.UpdatedAt)
}

func TestService_PressKeys(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	updated, computations, err := svc.PressKeys(ctx, session.ID, strings.Split("1 2 + 3 =", " "))
	require.NoError(t, err)
	assert.Equal(t, "15", updated.State.Display)
	require.Len(t, computations, 1)
	assert.Equal(t, Computation{Token: "=", Expression: "12 + 3", Result: "15"}, computations[0])

	// State persists between presses.
	updated, computations, err = svc.PressKeys(ctx, session.ID, []string{"√"})
	require.NoError(t, err)
	assert.Equal(t, "3.8729833462", updated.State.Display)
	require.Len(t, computations, 1)
	assert.Equal(t, "√(15)", computations[0].Expression)

	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.State, loaded.State)

	require.Len(t, rec.events, 2)
	assert.Equal(t, session.ID, rec.events[0].SessionID)
	assert.Equal(t, "12 + 3", rec.events[0].Expression)
	assert.Equal(t, "√", rec.events[1].Token)
}

func TestService_PressKeys_ErrorComputation(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	updated, computations, err := svc.PressKeys(ctx, session.ID, []string{"5", "÷", "0", "="})
	require.NoError(t, err)
	assert.Equal(t, "Error", updated.State.Display)
	require.Len(t, computations, 1)
	assert.True(t, computations[0].Failed)
	assert.Equal(t, "Error", computations[0].Result)

	require.Len(t, rec.events, 1)
	assert.True(t, rec.events[0].Failed)
}

func TestService_PressKeys_NoComputation(t *testing.T) {
	svc, rec := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	updated, computations, err := svc.PressKeys(ctx, session.ID, []string{"4", "2", "=", "bogus"})
	require.NoError(t, err)
	assert.Equal(t, "42", updated.State.Display)
	assert.NotNil(t, computations)
	assert.Empty(t, computations)
	assert.Empty(t, rec.events)
}

func TestService_PressKeys_OverflowedMemory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	keys := strings.Split("1 0 ^ 3 0 8 = M+ M+", " ")
	updated, _, err := svc.PressKeys(ctx, session.ID, keys)
	require.NoError(t, err)
	require.True(t, math.IsInf(updated.State.Memory, 1))

	data, err := json.Marshal(PressKeysResponse{Session: toSessionResponse(updated)})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"memory":"+Inf"`)

	// The session keeps working after the overflow.
	updated, _, err = svc.PressKeys(ctx, session.ID, []string{"MR"})
	require.NoError(t, err)
	assert.Equal(t, "Error", updated.State.Display)

	updated, _, err = svc.PressKeys(ctx, session.ID, []string{"MC", "MR"})
	require.NoError(t, err)
	assert.Equal(t, "0", updated.State.Display)
}

func TestService_PressKeys_PublishFailureIgnored(t *testing.T) {
	svc, rec := newTestService(t)
	rec.err = errors.New("bus down")
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	updated, _, err := svc.PressKeys(ctx, session.ID, []string{"2", "^", "8", "="})
	require.NoError(t, err)
	assert.Equal(t, "256", updated.State.Display)
}

func TestService_PressKeys_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      string
		keys    []string
		wantErr error
	}{
		{name: "invalid id", id: "not-a-uuid", keys: []string{"1"}, wantErr: ErrInvalidSessionID},
		{name: "unknown session", id: uuid.New().String(), keys: []string{"1"}, wantErr: ErrSessionNotFound},
		{name: "no keys", id: session.ID, keys: nil, wantErr: ErrNoKeys},
		{name: "too many keys", id: session.ID, keys: make([]string, MaxKeysPerPress+1), wantErr: ErrTooManyKeys},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.PressKeys(ctx, tt.id, tt.keys)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_PressKeys_Concurrent(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, _, err = svc.PressKeys(ctx, session.ID, []string{"1"})
	require.NoError(t, err)

	const presses = 50
	var wg sync.WaitGroup
	for i := 0; i < presses; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, err := svc.PressKeys(ctx, session.ID, []string{"1"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	loaded, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, loaded.State.Display, presses+1)
}

func TestService_DeleteSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSession(ctx, session.ID))
	assert.ErrorIs(t, svc.DeleteSession(ctx, session.ID), ErrSessionNotFound)

	_, err = svc.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.DeleteSession(ctx, "nope"), ErrInvalidSessionID)
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		msg  string
		want error
	}{
		{"get-session service call failed: session not found", ErrSessionNotFound},
		{"invalid session id: \"x\"", ErrInvalidSessionID},
		{"no keys pressed", ErrNoKeys},
		{"too many keys: 300 exceeds limit of 256", ErrTooManyKeys},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.ErrorIs(t, mapServiceError(errors.New(tt.msg)), tt.want)
		})
	}

	other := errors.New("timeout")
	assert.Equal(t, other, mapServiceError(other))
	assert.NoError(t, mapServiceError(nil))
}
