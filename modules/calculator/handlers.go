package calculator

import (
	"context"

	engine "github.com/example/scicalc-demo/domain/calculator"
	"github.com/go-monolith/mono"
)

// createSession handles the create-session service request.
func (m *Module) createSession(ctx context.Context, _ CreateSessionRequest, _ *mono.Msg) (SessionResponse, error) {
	session, err := m.service.CreateSession(ctx)
	if err != nil {
		return SessionResponse{}, err
	}
	return toSessionResponse(session), nil
}

// getSession handles the get-session service request.
func (m *Module) getSession(ctx context.Context, req GetSessionRequest, _ *mono.Msg) (SessionResponse, error) {
	session, err := m.service.GetSession(ctx, req.SessionID)
	if err != nil {
		return SessionResponse{}, err
	}
	return toSessionResponse(session), nil
}

// pressKeys handles the press-keys service request.
func (m *Module) pressKeys(ctx context.Context, req PressKeysRequest, _ *mono.Msg) (PressKeysResponse, error) {
	session, computations, err := m.service.PressKeys(ctx, req.SessionID, req.Keys)
	if err != nil {
		return PressKeysResponse{}, err
	}
	return PressKeysResponse{
		Session:      toSessionResponse(session),
		Computations: computations,
	}, nil
}

// deleteSession handles the delete-session service request.
func (m *Module) deleteSession(ctx context.Context, req DeleteSessionRequest, _ *mono.Msg) (DeleteSessionResponse, error) {
	if err := m.service.DeleteSession(ctx, req.SessionID); err != nil {
		return DeleteSessionResponse{Deleted: false}, err
	}
	return DeleteSessionResponse{Deleted: true}, nil
}

// keypad handles the keypad service request.
func (m *Module) keypad(_ context.Context, req KeypadRequest, _ *mono.Msg) (KeypadResponse, error) {
	return KeypadResponse{
		Scientific: req.Scientific,
		Rows:       engine.Keypad(req.Scientific),
		Tokens:     engine.Tokens(),
	}, nil
}
