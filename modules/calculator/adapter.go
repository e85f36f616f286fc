package calculator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// calculatorAdapter implements CalculatorPort over the calculator service container.
type calculatorAdapter struct {
	container mono.ServiceContainer
}

// NewCalculatorAdapter creates a new adapter for calculator services.
func NewCalculatorAdapter(container mono.ServiceContainer) CalculatorPort {
	if container == nil {
		panic("calculator adapter requires non-nil ServiceContainer")
	}
	return &calculatorAdapter{container: container}
}

// CreateSession starts a session via the create-session service.
func (a *calculatorAdapter) CreateSession(ctx context.Context) (*SessionResponse, error) {
	req := CreateSessionRequest{}
	var resp SessionResponse
	if err := a.call(ctx, "create-session", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSession loads a session via the get-session service.
func (a *calculatorAdapter) GetSession(ctx context.Context, sessionID string) (*SessionResponse, error) {
	req := GetSessionRequest{SessionID: sessionID}
	var resp SessionResponse
	if err := a.call(ctx, "get-session", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PressKeys feeds keys to a session via the press-keys service.
func (a *calculatorAdapter) PressKeys(ctx context.Context, sessionID string, keys []string) (*PressKeysResponse, error) {
	req := PressKeysRequest{SessionID: sessionID, Keys: keys}
	var resp PressKeysResponse
	if err := a.call(ctx, "press-keys", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteSession removes a session via the delete-session service.
func (a *calculatorAdapter) DeleteSession(ctx context.Context, sessionID string) error {
	req := DeleteSessionRequest{SessionID: sessionID}
	var resp DeleteSessionResponse
	if err := a.call(ctx, "delete-session", &req, &resp); err != nil {
		return err
	}
	if !resp.Deleted {
		return fmt.Errorf("session not deleted: %s", sessionID)
	}
	return nil
}

// Keypad fetches the keypad layout via the keypad service.
func (a *calculatorAdapter) Keypad(ctx context.Context, scientific bool) (*KeypadResponse, error) {
	req := KeypadRequest{Scientific: scientific}
	var resp KeypadResponse
	if err := a.call(ctx, "keypad", &req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *calculatorAdapter) call(ctx context.Context, service string, req, resp any) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return mapServiceError(fmt.Errorf("%s service call failed: %w", service, err))
	}
	return nil
}

// mapServiceError maps error messages from the service back to sentinel errors.
// Errors lose their type crossing the service boundary.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errMsg, ErrSessionNotFound.Error()):
		return fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	case strings.Contains(errMsg, ErrInvalidSessionID.Error()):
		return fmt.Errorf("%w: %v", ErrInvalidSessionID, err)
	case strings.Contains(errMsg, ErrNoKeys.Error()):
		return fmt.Errorf("%w: %v", ErrNoKeys, err)
	case strings.Contains(errMsg, ErrTooManyKeys.Error()):
		return fmt.Errorf("%w: %v", ErrTooManyKeys, err)
	}

	return err
}
