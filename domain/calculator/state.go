package calculator

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ErrorDisplay is shown after a failed computation.
const ErrorDisplay = "Error"

// Operand is an optional number, unset when Valid is false.
type Operand struct {
	Value float64
	Valid bool
}

// Some returns a set Operand.
func Some(v float64) Operand {
	return Operand{Value: v, Valid: true}
}

// State is the complete calculator state. It is a value: Transition
// returns a new State and never modifies the one it was given.
type State struct {
	Display           string
	FirstOperand      Operand
	Operator          Operation
	WaitingForOperand bool
	Scientific        bool
	Memory            float64
}

// Initial returns the state of a freshly switched-on calculator.
func Initial() State {
	return State{Display: "0"}
}

// errorState is the result of a failed computation. Memory and
// scientific mode are discarded along with everything else.
func errorState() State {
	return State{Display: ErrorDisplay}
}

// IsError reports whether the display shows a computation error.
func (s State) IsError() bool {
	return s.Display == ErrorDisplay
}

// Number is a float64 whose JSON form also covers ±Inf and NaN.
// Finite values encode as JSON numbers, the others as the strings
// "+Inf", "-Inf" and "NaN".
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return json.Marshal(f)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*n = Number(f)
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("invalid number %s: %w", data, err)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", text, err)
	}
	*n = Number(f)
	return nil
}

// Snapshot is the serializable form of State.
// Every State, including one whose memory overflowed to ±Inf, has one.
type Snapshot struct {
	Display           string  `json:"display"`
	FirstOperand      *Number `json:"first_operand,omitempty"`
	Operator          string  `json:"operator,omitempty"`
	WaitingForOperand bool    `json:"waiting_for_operand"`
	Scientific        bool    `json:"scientific"`
	Memory            Number  `json:"memory"`
}

// Snapshot converts s to its serializable form.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Display:           s.Display,
		WaitingForOperand: s.WaitingForOperand,
		Scientific:        s.Scientific,
		Memory:            Number(s.Memory),
	}
	if s.FirstOperand.Valid {
		v := Number(s.FirstOperand.Value)
		snap.FirstOperand = &v
	}
	if s.Operator != nil {
		snap.Operator = s.Operator.Symbol()
	}
	return snap
}

// Restore rebuilds a State from a snapshot.
func Restore(snap Snapshot) (State, error) {
	s := State{
		Display:           snap.Display,
		WaitingForOperand: snap.WaitingForOperand,
		Scientific:        snap.Scientific,
		Memory:            float64(snap.Memory),
	}
	if s.Display == "" {
		s.Display = "0"
	}
	if snap.FirstOperand != nil {
		s.FirstOperand = Some(float64(*snap.FirstOperand))
	}
	if snap.Operator != "" {
		op, ok := LookupOperation(snap.Operator)
		if !ok {
			return State{}, fmt.Errorf("%w: %q", ErrUnknownOperation, snap.Operator)
		}
		s.Operator = op
	}
	return s, nil
}
