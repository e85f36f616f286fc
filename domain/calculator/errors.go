package calculator

import "errors"

// Evaluation errors returned by the operation library.
var (
	// ErrDivisionByZero is returned when the right operand of a division is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDomain is returned for mathematically undefined inputs such as
	// the square root of a negative number.
	ErrDomain = errors.New("domain error")

	// ErrArity is returned when an operation receives the wrong number of operands.
	ErrArity = errors.New("operand count does not match arity")

	// ErrUnknownOperation is returned when a symbol does not name an operation.
	ErrUnknownOperation = errors.New("unknown operation")
)
