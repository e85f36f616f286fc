package api

import (
	"errors"
	"log"
	"strconv"

	"github.com/example/scicalc-demo/modules/calculator"
	"github.com/example/scicalc-demo/modules/history"
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/health", m.healthHandler)

	api := app.Group("/api/v1")
	api.Get("/keypad", m.keypad)

	sessions := api.Group("/sessions")
	sessions.Post("/", m.createSession)
	sessions.Get("/:id", m.getSession)
	sessions.Delete("/:id", m.deleteSession)
	sessions.Post("/:id/keys", m.pressKeys)
	sessions.Get("/:id/history", m.listHistory)
	sessions.Delete("/:id/history", m.clearHistory)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.port,
		},
	})
}

// createSession handles POST /api/v1/sessions.
func (m *APIModule) createSession(c *fiber.Ctx) error {
	resp, err := m.calculator.CreateSession(c.UserContext())
	if err != nil {
		return writeError(c, "create_failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSessionView(resp))
}

// getSession handles GET /api/v1/sessions/:id.
func (m *APIModule) getSession(c *fiber.Ctx) error {
	resp, err := m.calculator.GetSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, "get_failed", err)
	}
	return c.JSON(toSessionView(resp))
}

// pressKeys handles POST /api/v1/sessions/:id/keys.
func (m *APIModule) pressKeys(c *fiber.Ctx) error {
	var req PressKeysRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if len(req.Keys) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: "At least one key is required",
		})
	}

	resp, err := m.calculator.PressKeys(c.UserContext(), c.Params("id"), req.Keys)
	if err != nil {
		return writeError(c, "press_failed", err)
	}

	return c.JSON(PressKeysResponse{
		Session:      toSessionView(&resp.Session),
		Computations: resp.Computations,
	})
}

// deleteSession handles DELETE /api/v1/sessions/:id.
// The session's history is removed along with it, and computations still in
// flight for the session are dropped by the history module.
func (m *APIModule) deleteSession(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if err := m.calculator.DeleteSession(c.UserContext(), sessionID); err != nil {
		return writeError(c, "delete_failed", err)
	}

	resp := DeleteSessionResponse{ID: sessionID, Deleted: true}
	cleared, err := m.history.ForgetSession(c.UserContext(), sessionID)
	if err != nil {
		log.Printf("[api] Warning: failed to clear history for session %s: %v", sessionID, err)
	} else {
		resp.HistoryDeleted = cleared.Deleted
	}

	return c.JSON(resp)
}

// listHistory handles GET /api/v1/sessions/:id/history.
func (m *APIModule) listHistory(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > history.MaxLimit {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error:   "validation_error",
				Message: "limit must be an integer between 1 and " + strconv.Itoa(history.MaxLimit),
			})
		}
		limit = n
	}

	sessionID := c.Params("id")
	if _, err := m.calculator.GetSession(c.UserContext(), sessionID); err != nil {
		return writeError(c, "history_failed", err)
	}

	resp, err := m.history.ListHistory(c.UserContext(), sessionID, limit)
	if err != nil {
		return writeError(c, "history_failed", err)
	}

	return c.JSON(HistoryResponse{
		SessionID: resp.SessionID,
		Entries:   resp.Entries,
		Total:     resp.Total,
	})
}

// clearHistory handles DELETE /api/v1/sessions/:id/history.
// The session stays usable and keeps recording new computations.
func (m *APIModule) clearHistory(c *fiber.Ctx) error {
	sessionID := c.Params("id")
	if _, err := m.calculator.GetSession(c.UserContext(), sessionID); err != nil {
		return writeError(c, "clear_failed", err)
	}

	resp, err := m.history.ClearHistory(c.UserContext(), sessionID)
	if err != nil {
		return writeError(c, "clear_failed", err)
	}

	return c.JSON(ClearHistoryResponse{
		SessionID: resp.SessionID,
		Deleted:   resp.Deleted,
	})
}

// keypad handles GET /api/v1/keypad?scientific=true.
func (m *APIModule) keypad(c *fiber.Ctx) error {
	resp, err := m.calculator.Keypad(c.UserContext(), c.QueryBool("scientific"))
	if err != nil {
		return writeError(c, "keypad_failed", err)
	}
	return c.JSON(KeypadResponse{
		Scientific: resp.Scientific,
		Rows:       resp.Rows,
		Tokens:     resp.Tokens,
	})
}

// writeError maps service errors to HTTP status codes.
func writeError(c *fiber.Ctx, code string, err error) error {
	switch {
	case errors.Is(err, calculator.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "Session not found",
		})
	case errors.Is(err, calculator.ErrInvalidSessionID),
		errors.Is(err, calculator.ErrNoKeys),
		errors.Is(err, calculator.ErrTooManyKeys),
		errors.Is(err, history.ErrInvalidLimit),
		errors.Is(err, history.ErrMissingSessionID):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "validation_error",
			Message: err.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error:   code,
		Message: err.Error(),
	})
}
