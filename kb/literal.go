package kb

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdrpinto/pathfinder/maze"
)

// Proposition is a symbol attached to a maze cell, such as "P" at (1,1) for
// "there is a pit at (1,1)".
type Proposition struct {
	Symbol string
	At     maze.State
}

func (p Proposition) String() string {
	return fmt.Sprintf("%s@%d,%d", p.Symbol, p.At.Col, p.At.Row)
}

func compareProposition(a, b Proposition) int {
	if c := strings.Compare(a.Symbol, b.Symbol); c != 0 {
		return c
	}
	if c := cmp.Compare(a.At.Col, b.At.Col); c != 0 {
		return c
	}
	return cmp.Compare(a.At.Row, b.At.Row)
}

// Literal is a proposition or its negation.
type Literal struct {
	Prop     Proposition
	Positive bool
}

// Lit is shorthand for a literal on symbol at (col,row).
func Lit(symbol string, col, row int, positive bool) Literal {
	return Literal{Prop: Proposition{Symbol: symbol, At: maze.State{Col: col, Row: row}}, Positive: positive}
}

// Negate returns the complementary literal.
func (l Literal) Negate() Literal { return Literal{Prop: l.Prop, Positive: !l.Positive} }

func (l Literal) String() string {
	if l.Positive {
		return l.Prop.String()
	}
	return "!" + l.Prop.String()
}

func compareLiteral(a, b Literal) int {
	if c := compareProposition(a.Prop, b.Prop); c != 0 {
		return c
	}
	switch {
	case a.Positive == b.Positive:
		return 0
	case !a.Positive:
		return -1
	}
	return 1
}

// ParseLiteral reads a literal written as SYMBOL@COL,ROW with an optional
// negation prefix of "!", "~" or "¬". The location may be wrapped in
// parentheses and defaults to (0,0) when omitted.
func ParseLiteral(text string) (Literal, error) {
	input := text
	text = strings.TrimSpace(text)
	positive := true
	for _, prefix := range []string{"!", "~", "¬"} {
		if rest, ok := strings.CutPrefix(text, prefix); ok {
			positive = false
			text = strings.TrimSpace(rest)
			break
		}
	}

	symbol, location, hasLocation := strings.Cut(text, "@")
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Literal{}, syntaxError(input, "missing symbol")
	}
	if strings.ContainsAny(symbol, " \t!~|,()@") || strings.Contains(symbol, "¬") || strings.Contains(symbol, "∨") {
		return Literal{}, syntaxError(input, "symbol %q contains a reserved character", symbol)
	}

	var at maze.State
	if hasLocation {
		location = strings.TrimSpace(location)
		location = strings.TrimSuffix(strings.TrimPrefix(location, "("), ")")
		colText, rowText, ok := strings.Cut(location, ",")
		if !ok {
			return Literal{}, syntaxError(input, "location %q is not COL,ROW", location)
		}
		col, err := strconv.Atoi(strings.TrimSpace(colText))
		if err != nil {
			return Literal{}, syntaxError(input, "column %q is not an integer", colText)
		}
		row, err := strconv.Atoi(strings.TrimSpace(rowText))
		if err != nil {
			return Literal{}, syntaxError(input, "row %q is not an integer", rowText)
		}
		at = maze.State{Col: col, Row: row}
	}
	return Literal{Prop: Proposition{Symbol: symbol, At: at}, Positive: positive}, nil
}
