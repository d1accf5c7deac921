package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Text forms of the non-finite results division by zero can produce.
const (
	TextInfinity    = "Infinity"
	TextNegInfinity = "-Infinity"
	TextNaN         = "NaN"
)

// FormatNumber renders v the way a browser prints a number: shortest
// round-trip digits, plain decimal notation for 1e-6 <= |v| < 1e21 and
// exponent notation outside that range.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return TextNaN
	case math.IsInf(v, 1):
		return TextInfinity
	case math.IsInf(v, -1):
		return TextNegInfinity
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	// strconv pads the exponent to two digits ("1e-07"); drop the padding.
	s := strconv.FormatFloat(v, 'e', -1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	sign := exp[:1]
	digits := strings.TrimLeft(exp[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mant + "e" + sign + digits
}

// parseNumber reads display text. The engine only builds text ParseFloat
// accepts, including "Infinity" and "NaN"; anything else reads as NaN.
func parseNumber(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out-of-range input still returns ±Inf alongside ErrRange.
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}

// isPlainNumeral reports whether s is an optionally signed run of digits
// with at most one decimal point, i.e. text the keypad could have typed.
func isPlainNumeral(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}
