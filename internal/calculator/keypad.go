package calculator

// Button is one cell of the keypad grid. Span is the number of columns the
// button covers.
type Button struct {
	Label string `json:"label"`
	Key   string `json:"key"`
	Span  int    `json:"span"`
}

// KeypadColumns is the width of the keypad grid.
const KeypadColumns = 4

// Keypad lists the buttons row by row. Every Key value parses with ParseKey.
var Keypad = [][]Button{
	{{"C", "C", 2}, {"⌫", "DEL", 1}, {"÷", "/", 1}},
	{{"7", "7", 1}, {"8", "8", 1}, {"9", "9", 1}, {"×", "*", 1}},
	{{"4", "4", 1}, {"5", "5", 1}, {"6", "6", 1}, {"-", "-", 1}},
	{{"1", "1", 1}, {"2", "2", 1}, {"3", "3", 1}, {"+", "+", 1}},
	{{"0", "0", 2}, {".", ".", 1}, {"=", "=", 1}},
}
