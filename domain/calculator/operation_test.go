package calculator

import (
	"errors"
	"math"
	"testing"
)

func TestBinaryOp_Apply(t *testing.T) {
	tests := []struct {
		name      string
		op        BinaryOp
		a         float64
		b         float64
		want      float64
		wantError error
	}{
		{name: "add", op: Add, a: 10, b: 5, want: 15},
		{name: "add negative numbers", op: Add, a: -10, b: -5, want: -15},
		{name: "subtract", op: Subtract, a: 100, b: 42, want: 58},
		{name: "subtract resulting in negative", op: Subtract, a: 5, b: 10, want: -5},
		{name: "multiply", op: Multiply, a: 7, b: 8, want: 56},
		{name: "multiply by zero", op: Multiply, a: 100, b: 0, want: 0},
		{name: "divide", op: Divide, a: 100, b: 4, want: 25},
		{name: "divide by zero", op: Divide, a: 10, b: 0, wantError: ErrDivisionByZero},
		{name: "divide zero by zero", op: Divide, a: 0, b: 0, wantError: ErrDivisionByZero},
		{name: "power", op: Power, a: 2, b: 10, want: 1024},
		{name: "power of zero", op: Power, a: 0, b: 5, want: 0},
		{name: "fractional exponent", op: Power, a: 9, b: 0.5, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.Apply(tt.a, tt.b)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("Apply() error = %v, wantError = %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBinaryOp_PowerUndefinedIsAResult(t *testing.T) {
	got, err := Power.Apply(-8, 1.0/3)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	if !math.IsNaN(got) {
		t.Errorf("Apply() = %v, want NaN", got)
	}

	got, err = Power.Apply(10, 400)
	if err != nil {
		t.Fatalf("Apply() unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("Apply() = %v, want +Inf", got)
	}
}

func TestUnaryOp_Apply(t *testing.T) {
	tests := []struct {
		name      string
		op        UnaryOp
		x         float64
		want      float64
		wantError error
	}{
		{name: "sqrt positive", op: SquareRoot, x: 144, want: 12},
		{name: "sqrt of zero", op: SquareRoot, x: 0, want: 0},
		{name: "sqrt negative", op: SquareRoot, x: -16, wantError: ErrDomain},
		{name: "sin of zero", op: Sin, x: 0, want: 0},
		{name: "cos of zero", op: Cos, x: 0, want: 1},
		{name: "tan of zero", op: Tan, x: 0, want: 0},
		{name: "log of 1", op: Logarithm, x: 1, want: 0},
		{name: "log of zero", op: Logarithm, x: 0, wantError: ErrDomain},
		{name: "log of negative", op: Logarithm, x: -1, wantError: ErrDomain},
		{name: "ln of 1", op: NaturalLog, x: 1, want: 0},
		{name: "ln of zero", op: NaturalLog, x: 0, wantError: ErrDomain},
		{name: "factorial of zero", op: Factorial, x: 0, want: 1},
		{name: "factorial of 5", op: Factorial, x: 5, want: 120},
		{name: "factorial of 10", op: Factorial, x: 10, want: 3628800},
		{name: "factorial of negative", op: Factorial, x: -1, wantError: ErrDomain},
		{name: "factorial of fraction", op: Factorial, x: 2.5, wantError: ErrDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.Apply(tt.x)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("Apply() error = %v, wantError = %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Apply() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Apply() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFactorialOverflow(t *testing.T) {
	got, err := Factorial.Apply(170)
	if err != nil {
		t.Fatalf("Apply(170) unexpected error: %v", err)
	}
	if math.IsInf(got, 0) {
		t.Errorf("Apply(170) = %v, want finite", got)
	}

	got, err = Factorial.Apply(171)
	if err != nil {
		t.Fatalf("Apply(171) unexpected error: %v", err)
	}
	if !math.IsInf(got, 1) {
		t.Errorf("Apply(171) = %v, want +Inf", got)
	}
}

func TestConstantOp_Value(t *testing.T) {
	if Pi.Value() != math.Pi {
		t.Errorf("Pi.Value() = %v, want %v", Pi.Value(), math.Pi)
	}
	if E.Value() != math.E {
		t.Errorf("E.Value() = %v, want %v", E.Value(), math.E)
	}

	got, err := Pi.Evaluate(42)
	if err != nil {
		t.Fatalf("Evaluate() unexpected error: %v", err)
	}
	if got != math.Pi {
		t.Errorf("Evaluate() = %v, want operand ignored", got)
	}
}

func TestEvaluate_Arity(t *testing.T) {
	tests := []struct {
		name      string
		op        Operation
		operands  []float64
		want      float64
		wantError error
	}{
		{name: "binary with two operands", op: Subtract, operands: []float64{9, 4}, want: 5},
		{name: "binary with one operand", op: Add, operands: []float64{1}, wantError: ErrArity},
		{name: "unary with one operand", op: SquareRoot, operands: []float64{81}, want: 9},
		{name: "unary with two operands", op: Sin, operands: []float64{1, 2}, wantError: ErrArity},
		{name: "constant without operands", op: E, want: math.E},
		{name: "nil operation", op: nil, wantError: ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.op, tt.operands)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("Evaluate() error = %v, wantError = %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Evaluate() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Evaluate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLookupOperation(t *testing.T) {
	tests := []struct {
		symbol    string
		want      Operation
		wantArity Arity
	}{
		{"+", Add, Binary},
		{"-", Subtract, Binary},
		{"×", Multiply, Binary},
		{"÷", Divide, Binary},
		{"^", Power, Binary},
		{"√", SquareRoot, Unary},
		{"sin", Sin, Unary},
		{"cos", Cos, Unary},
		{"tan", Tan, Unary},
		{"log", Logarithm, Unary},
		{"ln", NaturalLog, Unary},
		{"!", Factorial, Unary},
		{"π", Pi, Nullary},
		{"e", E, Nullary},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, ok := LookupOperation(tt.symbol)
			if !ok {
				t.Fatalf("LookupOperation(%q) not found", tt.symbol)
			}
			if got != tt.want {
				t.Errorf("LookupOperation(%q) = %v, want %v", tt.symbol, got, tt.want)
			}
			if got.Arity() != tt.wantArity {
				t.Errorf("Arity() = %v, want %v", got.Arity(), tt.wantArity)
			}
			if got.Symbol() != tt.symbol {
				t.Errorf("Symbol() = %q, want %q", got.Symbol(), tt.symbol)
			}
		})
	}

	if _, ok := LookupOperation("mod"); ok {
		t.Error("LookupOperation(\"mod\") found, want not found")
	}
}
