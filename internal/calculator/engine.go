package calculator

import "strings"

// pending is a left operand waiting for its right-hand side. An Engine with
// no pending operation holds a nil *pending.
type pending struct {
	operand  float64
	operator Operator
}

// Engine accumulates keypad input and evaluates binary operations strictly
// left to right. It is not safe for concurrent use; give every engine a
// single owner. Create engines with NewEngine.
type Engine struct {
	display string
	history string
	fresh   bool // next digit starts a new number
	pending *pending
}

func NewEngine() *Engine {
	e := &Engine{}
	e.Clear()
	return e
}

// Display returns the current numeral, never empty.
func (e *Engine) Display() string { return e.display }

// History returns the trace of the current operation chain.
func (e *Engine) History() string { return e.history }

// Snapshot returns the state a presentation layer renders.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Display:       e.display,
		History:       e.history,
		AwaitingInput: e.fresh,
	}
	if e.pending != nil {
		s.Operand = FormatNumber(e.pending.operand)
		s.Operator = e.pending.operator.Symbol()
	}
	return s
}

// Press applies a single key.
func (e *Engine) Press(k Key) {
	switch k.Kind {
	case KeyDigit:
		e.InputDigit(k.Digit)
	case KeyDecimal:
		e.InputDecimalPoint()
	case KeyOperator:
		e.ApplyOperator(k.Operator)
	case KeyEquals:
		e.Equals()
	case KeyClear:
		e.Clear()
	case KeyDelete:
		e.DeleteLast()
	}
}

// startsFresh reports whether typing replaces the display rather than
// extending it. Computed text such as "Infinity" is never extended.
func (e *Engine) startsFresh() bool {
	return e.fresh || !isPlainNumeral(e.display)
}

// InputDigit appends d, replacing a lone leading zero. Values above 9 are
// ignored.
func (e *Engine) InputDigit(d Digit) {
	if d > 9 {
		return
	}
	s := string(rune('0' + d))

	switch {
	case e.startsFresh():
		e.display = s
		e.fresh = false
	case e.display == "0":
		e.display = s
	default:
		e.display += s
	}
}

// InputDecimalPoint adds a decimal point; a second one is ignored.
func (e *Engine) InputDecimalPoint() {
	switch {
	case e.startsFresh():
		e.display = "0."
		e.fresh = false
	case !strings.Contains(e.display, "."):
		e.display += "."
	}
}

// DeleteLast drops the last character. Anything that would leave an empty
// or non-numeric display ("-", or a truncated "Infinity") becomes "0".
func (e *Engine) DeleteLast() {
	if len(e.display) <= 1 || !isPlainNumeral(e.display) {
		e.display = "0"
		return
	}

	next := e.display[:len(e.display)-1]
	if !isPlainNumeral(next) {
		next = "0"
	}
	e.display = next
}

// Clear restores the initial state.
func (e *Engine) Clear() {
	e.display = "0"
	e.history = ""
	e.fresh = false
	e.pending = nil
}

// ApplyOperator makes op pending. If an operation is already pending it is
// evaluated first with the displayed value as its right operand, and the
// result becomes the new left operand. OpNone is ignored.
func (e *Engine) ApplyOperator(op Operator) {
	if op == OpNone {
		return
	}
	v := parseNumber(e.display)

	if e.pending == nil {
		e.pending = &pending{operand: v}
		e.history = FormatNumber(v) + " " + op.Symbol()
	} else {
		result := Evaluate(e.pending.operand, v, e.pending.operator)
		e.display = FormatNumber(result)
		e.pending.operand = result
		e.history += " " + FormatNumber(v) + " = " + e.display + " " + op.Symbol()
	}

	e.pending.operator = op
	e.fresh = true
}

// Equals evaluates the pending operation and returns the engine to idle,
// keeping the result on display. Without a pending operation it does
// nothing.
func (e *Engine) Equals() {
	if e.pending == nil {
		return
	}
	v := parseNumber(e.display)
	result := Evaluate(e.pending.operand, v, e.pending.operator)

	e.display = FormatNumber(result)
	e.history += " " + FormatNumber(v) + " = " + e.display
	e.pending = nil
	e.fresh = true
}
