package history

import (
	"context"
	"time"

	domain "github.com/example/scicalc-demo/domain/history"
)

// List limits.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// HistoryPort is the interface other modules use to read and clear history.
type HistoryPort interface {
	ListHistory(ctx context.Context, sessionID string, limit int) (*ListHistoryResponse, error)
	ClearHistory(ctx context.Context, sessionID string) (*ClearHistoryResponse, error)
	ForgetSession(ctx context.Context, sessionID string) (*ClearHistoryResponse, error)
}

// ListHistoryRequest asks for the newest entries of a session.
// A zero Limit means DefaultLimit.
type ListHistoryRequest struct {
	SessionID string `json:"session_id"`
	Limit     int    `json:"limit,omitempty"`
}

// EntryResponse is one history entry.
type EntryResponse struct {
	ID         string    `json:"id"`
	Token      string    `json:"token"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Failed     bool      `json:"failed"`
	CreatedAt  time.Time `json:"created_at"`
}

// ListHistoryResponse is the response for listing history.
type ListHistoryResponse struct {
	SessionID string          `json:"session_id"`
	Entries   []EntryResponse `json:"entries"`
	Total     int64           `json:"total"`
}

// ClearHistoryRequest is the request for clearing a session's history.
// SessionDeleted also closes the session: computations for it that are
// delivered afterwards are dropped instead of recorded.
type ClearHistoryRequest struct {
	SessionID      string `json:"session_id"`
	SessionDeleted bool   `json:"session_deleted,omitempty"`
}

// ClearHistoryResponse reports how many entries were removed.
type ClearHistoryResponse struct {
	SessionID string `json:"session_id"`
	Deleted   int64  `json:"deleted"`
}

func toEntryResponse(e *domain.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		Token:      e.Token,
		Expression: e.Expression,
		Result:     e.Result,
		Failed:     e.Failed,
		CreatedAt:  e.CreatedAt,
	}
}
