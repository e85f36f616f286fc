package calculator

import (
	"math"
	"strconv"
	"strings"
)

const (
	// integralLimit bounds the magnitude printed as a plain integer.
	integralLimit  = 1e10
	fractionDigits = 10
)

// FormatNumber renders a computed value for the display.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrorDisplay
	}
	if v == math.Trunc(v) && math.Abs(v) < integralLimit {
		return strconv.FormatInt(int64(v), 10)
	}

	s := strconv.FormatFloat(v, 'f', fractionDigits, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// parseDisplay reads the display as a number.
func parseDisplay(display string) (float64, bool) {
	if display == ErrorDisplay {
		return 0, false
	}
	v, err := strconv.ParseFloat(display, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
