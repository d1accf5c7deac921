package calculator

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKey is returned when text does not name a keypad key.
var ErrUnknownKey = errors.New("unknown key")

// Digit is a single decimal digit 0-9.
type Digit uint8

// KeyKind identifies which keypad action a Key triggers.
type KeyKind uint8

const (
	KeyDigit KeyKind = iota + 1
	KeyDecimal
	KeyOperator
	KeyEquals
	KeyClear
	KeyDelete
)

func (k KeyKind) String() string {
	switch k {
	case KeyDigit:
		return "digit"
	case KeyDecimal:
		return "decimal"
	case KeyOperator:
		return "operator"
	case KeyEquals:
		return "equals"
	case KeyClear:
		return "clear"
	case KeyDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Key is one keypad button press.
type Key struct {
	Kind     KeyKind
	Digit    Digit    // set for KeyDigit
	Operator Operator // set for KeyOperator
}

var (
	DecimalKey = Key{Kind: KeyDecimal}
	EqualsKey  = Key{Kind: KeyEquals}
	ClearKey   = Key{Kind: KeyClear}
	DeleteKey  = Key{Kind: KeyDelete}
)

func DigitKey(d Digit) Key { return Key{Kind: KeyDigit, Digit: d} }
func OperatorKey(op Operator) Key { return Key{Kind: KeyOperator, Operator: op} }

// String returns the canonical text for k, which ParseKey accepts.
func (k Key) String() string {
	switch k.Kind {
	case KeyDigit:
		return string(rune('0' + k.Digit))
	case KeyDecimal:
		return "."
	case KeyOperator:
		return k.Operator.Symbol()
	case KeyEquals:
		return "="
	case KeyClear:
		return "C"
	case KeyDelete:
		return "DEL"
	default:
		return ""
	}
}

// ParseKey maps button text to a Key. Besides the keypad labels it accepts
// ASCII stand-ins (*, /, DEL) and operation names (add, equals, clear).
func ParseKey(s string) (Key, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return DigitKey(Digit(t[0] - '0')), nil
	}

	switch t {
	case ".", ",", "decimal", "point":
		return DecimalKey, nil
	case "=", "equals", "enter":
		return EqualsKey, nil
	case "c", "ac", "clear":
		return ClearKey, nil
	case "⌫", "del", "delete", "backspace", "bs":
		return DeleteKey, nil
	}

	if op, err := ParseOperator(t); err == nil {
		return OperatorKey(op), nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, s)
}

// ParseKeys splits s on whitespace. Each field is either a single key name
// ("clear", "DEL", "×") or a run of one-character keys ("12.5*3=").
func ParseKeys(s string) ([]Key, error) {
	var keys []Key
	for _, field := range strings.Fields(s) {
		if k, err := ParseKey(field); err == nil {
			keys = append(keys, k)
			continue
		}
		for _, r := range field {
			k, err := ParseKey(string(r))
			if err != nil {
				return nil, fmt.Errorf("%w in %q", err, field)
			}
			keys = append(keys, k)
		}
	}
	return keys, nil
}
