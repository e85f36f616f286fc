package api

import (
	"time"

	engine "github.com/example/scicalc-demo/domain/calculator"
	"github.com/example/scicalc-demo/modules/calculator"
	"github.com/example/scicalc-demo/modules/history"
)

// PressKeysRequest is the HTTP request for pressing keys.
type PressKeysRequest struct {
	Keys []string `json:"keys"`
}

// SessionView is the HTTP representation of a calculator session.
type SessionView struct {
	ID                string         `json:"id"`
	Display           string         `json:"display"`
	FirstOperand      *engine.Number `json:"first_operand,omitempty"`
	Operator          string         `json:"operator,omitempty"`
	WaitingForOperand bool           `json:"waiting_for_operand"`
	Scientific        bool           `json:"scientific"`
	Memory            engine.Number  `json:"memory"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// PressKeysResponse is the HTTP response for pressing keys.
type PressKeysResponse struct {
	Session      SessionView              `json:"session"`
	Computations []calculator.Computation `json:"computations"`
}

// DeleteSessionResponse is the HTTP response for deleting a session.
type DeleteSessionResponse struct {
	ID             string `json:"id"`
	Deleted        bool   `json:"deleted"`
	HistoryDeleted int64  `json:"history_deleted"`
}

// HistoryResponse is the HTTP response for a session's history.
type HistoryResponse struct {
	SessionID string                  `json:"session_id"`
	Entries   []history.EntryResponse `json:"entries"`
	Total     int64                   `json:"total"`
}

// ClearHistoryResponse is the HTTP response for clearing a session's history.
type ClearHistoryResponse struct {
	SessionID string `json:"session_id"`
	Deleted   int64  `json:"deleted"`
}

// KeypadResponse is the HTTP response for the keypad layout.
type KeypadResponse struct {
	Scientific bool       `json:"scientific"`
	Rows       [][]string `json:"rows"`
	Tokens     []string   `json:"tokens"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func toSessionView(s *calculator.SessionResponse) SessionView {
	return SessionView{
		ID:                s.ID,
		Display:           s.State.Display,
		FirstOperand:      s.State.FirstOperand,
		Operator:          s.State.Operator,
		WaitingForOperand: s.State.WaitingForOperand,
		Scientific:        s.State.Scientific,
		Memory:            s.State.Memory,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}
