package calculator

import (
	"fmt"
	"math"
)

// Arity is the number of operands an operation consumes.
type Arity int

const (
	Nullary Arity = 0
	Unary   Arity = 1
	Binary  Arity = 2
)

// Operation is one of the calculator's operations. The set is closed:
// every implementation is a BinaryOp, UnaryOp or ConstantOp.
type Operation interface {
	// Symbol returns the key token that selects the operation.
	Symbol() string
	Arity() Arity
	// Evaluate applies the operation to exactly Arity() operands.
	Evaluate(operands ...float64) (float64, error)

	operation()
}

// BinaryOp takes a left and a right operand.
type BinaryOp uint8

const (
	Add BinaryOp = iota + 1
	Subtract
	Multiply
	Divide
	Power
)

// UnaryOp is applied immediately to the displayed value.
type UnaryOp uint8

const (
	SquareRoot UnaryOp = iota + 1
	Sin
	Cos
	Tan
	Logarithm
	NaturalLog
	Factorial
)

// ConstantOp evaluates to a fixed value.
type ConstantOp uint8

const (
	Pi ConstantOp = iota + 1
	E
)

// maxFactorial is the largest n whose factorial is finite in float64.
const maxFactorial = 170

var binarySymbols = map[BinaryOp]string{
	Add:      "+",
	Subtract: "-",
	Multiply: "×",
	Divide:   "÷",
	Power:    "^",
}

var unarySymbols = map[UnaryOp]string{
	SquareRoot: "√",
	Sin:        "sin",
	Cos:        "cos",
	Tan:        "tan",
	Logarithm:  "log",
	NaturalLog: "ln",
	Factorial:  "!",
}

var constantSymbols = map[ConstantOp]string{
	Pi: "π",
	E:  "e",
}

// operations indexes every variant by its key symbol.
var operations = func() map[string]Operation {
	ops := make(map[string]Operation, len(binarySymbols)+len(unarySymbols)+len(constantSymbols))
	for op, sym := range binarySymbols {
		ops[sym] = op
	}
	for op, sym := range unarySymbols {
		ops[sym] = op
	}
	for op, sym := range constantSymbols {
		ops[sym] = op
	}
	return ops
}()

// LookupOperation returns the operation selected by the given key symbol.
func LookupOperation(symbol string) (Operation, bool) {
	op, ok := operations[symbol]
	return op, ok
}

// Evaluate applies op to operands. It is equivalent to op.Evaluate.
func Evaluate(op Operation, operands []float64) (float64, error) {
	if op == nil {
		return 0, ErrUnknownOperation
	}
	return op.Evaluate(operands...)
}

func (BinaryOp) operation()   {}
func (UnaryOp) operation()    {}
func (ConstantOp) operation() {}

func (op BinaryOp) Symbol() string { return binarySymbols[op] }
func (op BinaryOp) Arity() Arity   { return Binary }
func (op BinaryOp) String() string { return op.Symbol() }

func (op BinaryOp) Evaluate(operands ...float64) (float64, error) {
	if len(operands) != 2 {
		return 0, fmt.Errorf("%w: %s takes 2 operands, got %d", ErrArity, op, len(operands))
	}
	return op.Apply(operands[0], operands[1])
}

// Apply computes a op b.
func (op BinaryOp) Apply(a, b float64) (float64, error) {
	switch op {
	case Add:
		return a + b, nil
	case Subtract:
		return a - b, nil
	case Multiply:
		return a * b, nil
	case Divide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	case Power:
		return math.Pow(a, b), nil
	default:
		return 0, ErrUnknownOperation
	}
}

func (op UnaryOp) Symbol() string { return unarySymbols[op] }
func (op UnaryOp) Arity() Arity   { return Unary }
func (op UnaryOp) String() string { return op.Symbol() }

func (op UnaryOp) Evaluate(operands ...float64) (float64, error) {
	if len(operands) != 1 {
		return 0, fmt.Errorf("%w: %s takes 1 operand, got %d", ErrArity, op, len(operands))
	}
	return op.Apply(operands[0])
}

// Apply computes op(x).
func (op UnaryOp) Apply(x float64) (float64, error) {
	switch op {
	case SquareRoot:
		if x < 0 {
			return 0, fmt.Errorf("%w: square root of negative number", ErrDomain)
		}
		return math.Sqrt(x), nil
	case Sin:
		return math.Sin(x), nil
	case Cos:
		return math.Cos(x), nil
	case Tan:
		return math.Tan(x), nil
	case Logarithm:
		if x <= 0 {
			return 0, fmt.Errorf("%w: logarithm of non-positive number", ErrDomain)
		}
		return math.Log10(x), nil
	case NaturalLog:
		if x <= 0 {
			return 0, fmt.Errorf("%w: logarithm of non-positive number", ErrDomain)
		}
		return math.Log(x), nil
	case Factorial:
		return factorial(x)
	default:
		return 0, ErrUnknownOperation
	}
}

func factorial(x float64) (float64, error) {
	if x < 0 || x != math.Trunc(x) || math.IsInf(x, 0) {
		return 0, fmt.Errorf("%w: factorial needs a non-negative integer", ErrDomain)
	}
	if x > maxFactorial {
		return math.Inf(1), nil
	}
	result := 1.0
	for i := 2.0; i <= x; i++ {
		result *= i
	}
	return result, nil
}

func (op ConstantOp) Symbol() string { return constantSymbols[op] }
func (op ConstantOp) Arity() Arity   { return Nullary }
func (op ConstantOp) String() string { return op.Symbol() }

// Evaluate ignores its operands and returns the constant.
func (op ConstantOp) Evaluate(_ ...float64) (float64, error) {
	return op.Value(), nil
}

// Value returns the constant.
func (op ConstantOp) Value() float64 {
	switch op {
	case Pi:
		return math.Pi
	case E:
		return math.E
	default:
		return math.NaN()
	}
}
