package history

import (
	"context"
	"fmt"
	"time"

	domain "github.com/example/scicalc-demo/domain/history"
	"github.com/example/scicalc-demo/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
)

// handleCalculationCompleted stores one history entry per completed calculation.
func (m *Module) handleCalculationCompleted(_ context.Context, event events.CalculationCompletedEvent, _ *mono.Msg) error {
	createdAt := event.OccurredAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	entry := &domain.Entry{
		ID:         uuid.New().String(),
		SessionID:  event.SessionID,
		Token:      event.Token,
		Expression: event.Expression,
		Result:     event.Result,
		Failed:     event.Failed,
		CreatedAt:  createdAt,
	}

	recorded, err := m.repo.Create(entry)
	if err != nil {
		m.logger.Error("Failed to record calculation",
			"session", event.SessionID,
			"expression", event.Expression,
			"error", err)
		return err
	}
	if !recorded {
		m.logger.Debug("Dropped calculation for deleted session",
			"session", event.SessionID,
			"expression", event.Expression)
		return nil
	}

	m.logger.Debug("Calculation recorded",
		"session", event.SessionID,
		"expression", event.Expression,
		"result", event.Result)
	return nil
}

// listHistory handles the list-history service request.
func (m *Module) listHistory(_ context.Context, req ListHistoryRequest, _ *mono.Msg) (ListHistoryResponse, error) {
	if req.SessionID == "" {
		return ListHistoryResponse{}, ErrMissingSessionID
	}

	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return ListHistoryResponse{}, fmt.Errorf("%w: %d not in 1..%d", ErrInvalidLimit, req.Limit, MaxLimit)
	}

	entries, err := m.repo.ListBySession(req.SessionID, limit)
	if err != nil {
		return ListHistoryResponse{}, err
	}

	total, err := m.repo.CountBySession(req.SessionID)
	if err != nil {
		return ListHistoryResponse{}, err
	}

	response := ListHistoryResponse{
		SessionID: req.SessionID,
		Entries:   make([]EntryResponse, 0, len(entries)),
		Total:     total,
	}
	for _, entry := range entries {
		response.Entries = append(response.Entries, toEntryResponse(entry))
	}

	return response, nil
}

// clearHistory handles the clear-history service request.
func (m *Module) clearHistory(_ context.Context, req ClearHistoryRequest, _ *mono.Msg) (ClearHistoryResponse, error) {
	if req.SessionID == "" {
		return ClearHistoryResponse{}, ErrMissingSessionID
	}

	deleted, err := m.repo.DeleteBySession(req.SessionID, req.SessionDeleted)
	if err != nil {
		return ClearHistoryResponse{}, err
	}

	m.logger.Info("History cleared",
		"session", req.SessionID,
		"deleted", deleted,
		"sessionDeleted", req.SessionDeleted)
	return ClearHistoryResponse{SessionID: req.SessionID, Deleted: deleted}, nil
}
