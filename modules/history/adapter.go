package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// historyAdapter implements HistoryPort over the history service container.
type historyAdapter struct {
	container mono.ServiceContainer
}

// NewHistoryAdapter creates a new adapter for history services.
func NewHistoryAdapter(container mono.ServiceContainer) HistoryPort {
	if container == nil {
		panic("history adapter requires non-nil ServiceContainer")
	}
	return &historyAdapter{container: container}
}

// ListHistory lists a session's entries via the list-history service.
func (a *historyAdapter) ListHistory(ctx context.Context, sessionID string, limit int) (*ListHistoryResponse, error) {
	req := ListHistoryRequest{SessionID: sessionID, Limit: limit}
	var resp ListHistoryResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-history",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(fmt.Errorf("list-history service call failed: %w", err))
	}
	return &resp, nil
}

// ClearHistory removes a session's entries via the clear-history service.
func (a *historyAdapter) ClearHistory(ctx context.Context, sessionID string) (*ClearHistoryResponse, error) {
	return a.clear(ctx, ClearHistoryRequest{SessionID: sessionID})
}

// ForgetSession removes a deleted session's entries and closes its history.
func (a *historyAdapter) ForgetSession(ctx context.Context, sessionID string) (*ClearHistoryResponse, error) {
	return a.clear(ctx, ClearHistoryRequest{SessionID: sessionID, SessionDeleted: true})
}

func (a *historyAdapter) clear(ctx context.Context, req ClearHistoryRequest) (*ClearHistoryResponse, error) {
	var resp ClearHistoryResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"clear-history",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(fmt.Errorf("clear-history service call failed: %w", err))
	}
	return &resp, nil
}

// mapServiceError maps error messages from the service back to sentinel errors.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, ErrInvalidLimit.Error()) {
		return fmt.Errorf("%w: %v", ErrInvalidLimit, err)
	}
	if strings.Contains(errMsg, ErrMissingSessionID.Error()) {
		return fmt.Errorf("%w: %v", ErrMissingSessionID, err)
	}

	return err
}
