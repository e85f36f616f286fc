package calculator

// Control and memory key tokens.
const (
	KeyClear      = "C"
	KeyBackspace  = "<"
	KeyEquals     = "="
	KeyScientific = "SCI"
	KeyDecimal    = "."

	KeyMemoryAdd      = "M+"
	KeyMemorySubtract = "M-"
	KeyMemoryRecall   = "MR"
	KeyMemoryClear    = "MC"
)

// Kind is the category a token falls into.
type Kind int

const (
	KindUnknown Kind = iota
	KindClear
	KindBackspace
	KindEquals
	KindScientific
	KindMemory
	KindBinary
	KindUnary
	KindConstant
	KindDecimal
	KindDigit
)

var kindNames = [...]string{
	KindUnknown:    "unknown",
	KindClear:      "clear",
	KindBackspace:  "backspace",
	KindEquals:     "equals",
	KindScientific: "scientific",
	KindMemory:     "memory",
	KindBinary:     "binary",
	KindUnary:      "unary",
	KindConstant:   "constant",
	KindDecimal:    "decimal",
	KindDigit:      "digit",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// Classify returns the category of token.
func Classify(token string) Kind {
	switch token {
	case KeyClear:
		return KindClear
	case KeyBackspace:
		return KindBackspace
	case KeyEquals:
		return KindEquals
	case KeyScientific:
		return KindScientific
	case KeyMemoryAdd, KeyMemorySubtract, KeyMemoryRecall, KeyMemoryClear:
		return KindMemory
	case KeyDecimal:
		return KindDecimal
	}
	if isDigit(token) {
		return KindDigit
	}
	if op, ok := LookupOperation(token); ok {
		switch op.(type) {
		case BinaryOp:
			return KindBinary
		case UnaryOp:
			return KindUnary
		case ConstantOp:
			return KindConstant
		}
	}
	return KindUnknown
}

func isDigit(token string) bool {
	return len(token) == 1 && token[0] >= '0' && token[0] <= '9'
}

var basicKeypad = [][]string{
	{KeyClear, KeyBackspace, KeyScientific, "÷"},
	{"7", "8", "9", "×"},
	{"4", "5", "6", "-"},
	{"1", "2", "3", "+"},
	{"0", KeyDecimal, KeyEquals},
}

var scientificKeypad = [][]string{
	{KeyMemoryClear, KeyMemoryRecall, KeyMemoryAdd, KeyMemorySubtract},
	{"sin", "cos", "tan", "^"},
	{"log", "ln", "√", "!"},
	{"π", "e"},
}

// Keypad returns the key rows shown by a renderer. Scientific mode adds
// the extended rows above the basic keyboard.
func Keypad(scientific bool) [][]string {
	var rows [][]string
	if scientific {
		rows = append(rows, copyRows(scientificKeypad)...)
	}
	return append(rows, copyRows(basicKeypad)...)
}

// Tokens returns every token Transition understands.
func Tokens() []string {
	var tokens []string
	for _, row := range Keypad(true) {
		tokens = append(tokens, row...)
	}
	return tokens
}

func copyRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out
}
