// Package calculator implements the scientific calculator state machine:
// a closed set of operations and the keypress transition function.
package calculator

import "strings"

// Transition returns the state that follows s when token is pressed.
// It never fails: computation errors show up as the "Error" display and
// tokens that cannot apply return s unchanged.
func Transition(s State, token string) State {
	switch Classify(token) {
	case KindClear:
		return Initial()
	case KindBackspace:
		return backspace(s)
	case KindEquals:
		return equals(s)
	case KindScientific:
		s.Scientific = !s.Scientific
		return s
	case KindMemory:
		return memory(s, token)
	case KindBinary:
		op, _ := LookupOperation(token)
		return selectBinary(s, op.(BinaryOp))
	case KindUnary:
		op, _ := LookupOperation(token)
		return applyUnary(s, op.(UnaryOp))
	case KindConstant:
		op, _ := LookupOperation(token)
		return selectConstant(s, op.(ConstantOp))
	case KindDecimal:
		return decimal(s)
	case KindDigit:
		return digit(s, token)
	default:
		return s
	}
}

// Apply feeds tokens to Transition in order.
func Apply(s State, tokens ...string) State {
	for _, token := range tokens {
		s = Transition(s, token)
	}
	return s
}

func backspace(s State) State {
	if s.IsError() || len(s.Display) <= 1 {
		s.Display = "0"
		return s
	}
	s.Display = s.Display[:len(s.Display)-1]
	if s.Display == "-" {
		s.Display = "0"
	}
	return s
}

func equals(s State) State {
	switch op := s.Operator.(type) {
	case ConstantOp:
		s.Display = FormatNumber(op.Value())
		s.WaitingForOperand = true
		return s
	case BinaryOp:
		if !s.FirstOperand.Valid {
			return s
		}
		second, ok := parseDisplay(s.Display)
		if !ok {
			return s
		}
		result, err := op.Apply(s.FirstOperand.Value, second)
		if err != nil {
			return errorState()
		}
		return State{
			Display:           FormatNumber(result),
			WaitingForOperand: true,
			Scientific:        s.Scientific,
			Memory:            s.Memory,
		}
	default:
		return s
	}
}

func memory(s State, token string) State {
	switch token {
	case KeyMemoryAdd, KeyMemorySubtract:
		v, ok := parseDisplay(s.Display)
		if !ok {
			return s
		}
		if token == KeyMemorySubtract {
			v = -v
		}
		s.Memory += v
	case KeyMemoryRecall:
		s.Display = FormatNumber(s.Memory)
		s.WaitingForOperand = true
	case KeyMemoryClear:
		s.Memory = 0
	}
	return s
}

func selectBinary(s State, op BinaryOp) State {
	v, ok := parseDisplay(s.Display)
	if !ok {
		return s
	}
	s.FirstOperand = Some(v)
	s.Operator = op
	s.WaitingForOperand = true
	return s
}

func applyUnary(s State, op UnaryOp) State {
	v, ok := parseDisplay(s.Display)
	if !ok {
		return s
	}
	result, err := op.Apply(v)
	if err != nil {
		return errorState()
	}
	return State{
		Display:           FormatNumber(result),
		WaitingForOperand: true,
		Scientific:        s.Scientific,
		Memory:            s.Memory,
	}
}

func selectConstant(s State, op ConstantOp) State {
	s.Display = FormatNumber(op.Value())
	s.Operator = op
	s.WaitingForOperand = true
	return s
}

func decimal(s State) State {
	switch {
	case s.WaitingForOperand || s.IsError():
		s.Display = "0."
		s.WaitingForOperand = false
	case !strings.Contains(s.Display, KeyDecimal):
		s.Display += KeyDecimal
	}
	return s
}

func digit(s State, d string) State {
	switch {
	case s.WaitingForOperand || s.IsError():
		s.Display = d
		s.WaitingForOperand = false
	case s.Display == "0":
		s.Display = d
	default:
		s.Display += d
	}
	return s
}
