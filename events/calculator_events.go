package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// CalculationCompletedEvent is emitted when a keypress evaluated an
// operation in a calculator session, successfully or not.
type CalculationCompletedEvent struct {
	SessionID  string    `json:"session_id"`
	Token      string    `json:"token"`
	Expression string    `json:"expression"`
	Result     string    `json:"result"`
	Failed     bool      `json:"failed"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CalculationCompletedV1 is the typed event definition for completed calculations.
// Subject: events.calculator.v1.calculation-completed
var CalculationCompletedV1 = helper.EventDefinition[CalculationCompletedEvent](
	"calculator", "CalculationCompleted", "v1",
)
