package calculator

import (
	"context"
	"time"

	engine "github.com/example/scicalc-demo/domain/calculator"
)

// CalculatorPort is the interface other modules use to drive calculator sessions.
type CalculatorPort interface {
	CreateSession(ctx context.Context) (*SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*SessionResponse, error)
	PressKeys(ctx context.Context, sessionID string, keys []string) (*PressKeysResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Keypad(ctx context.Context, scientific bool) (*KeypadResponse, error)
}

// CreateSessionRequest is the request for creating a session.
type CreateSessionRequest struct{}

// GetSessionRequest is the request for loading a session.
type GetSessionRequest struct {
	SessionID string `json:"session_id"`
}

// SessionResponse describes a session and its current calculator state.
type SessionResponse struct {
	ID        string          `json:"id"`
	State     engine.Snapshot `json:"state"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// PressKeysRequest feeds a sequence of tokens into a session.
type PressKeysRequest struct {
	SessionID string   `json:"session_id"`
	Keys      []string `json:"keys"`
}

// Computation is one evaluated operation produced while pressing keys.
type Computation struct {
	Token      string `json:"token"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
	Failed     bool   `json:"failed"`
}

// PressKeysResponse is the session after all keys were applied.
type PressKeysResponse struct {
	Session      SessionResponse `json:"session"`
	Computations []Computation   `json:"computations"`
}

// DeleteSessionRequest is the request for deleting a session.
type DeleteSessionRequest struct {
	SessionID string `json:"session_id"`
}

// DeleteSessionResponse is the response for deleting a session.
type DeleteSessionResponse struct {
	Deleted bool `json:"deleted"`
}

// KeypadRequest asks for the keypad layout of a mode.
type KeypadRequest struct {
	Scientific bool `json:"scientific"`
}

// KeypadResponse lists the keypad rows and every recognised token.
type KeypadResponse struct {
	Scientific bool       `json:"scientific"`
	Rows       [][]string `json:"rows"`
	Tokens     []string   `json:"tokens"`
}

func toSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		ID:        s.ID,
		State:     s.State.Snapshot(),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
