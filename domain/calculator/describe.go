package calculator

import "fmt"

// Describe renders the computation that pressing token in state before
// performs, such as "7 + 3" or "sin(0.5)". It reports false when the
// token does not compute anything.
func Describe(before State, token string) (string, bool) {
	switch Classify(token) {
	case KindEquals:
		op, ok := before.Operator.(BinaryOp)
		if !ok || !before.FirstOperand.Valid {
			return "", false
		}
		second, ok := parseDisplay(before.Display)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("%s %s %s", FormatNumber(before.FirstOperand.Value), op, FormatNumber(second)), true
	case KindUnary:
		x, ok := parseDisplay(before.Display)
		if !ok {
			return "", false
		}
		op, _ := LookupOperation(token)
		if op == Factorial {
			return FormatNumber(x) + "!", true
		}
		return fmt.Sprintf("%s(%s)", op.Symbol(), FormatNumber(x)), true
	default:
		return "", false
	}
}
