package maze

import (
	"fmt"
	"strings"
)

// State is a cell position; Col grows rightward and Row grows downward from the
// top-left corner.
type State struct {
	Col int
	Row int
}

func (s State) String() string { return fmt.Sprintf("(%d,%d)", s.Col, s.Row) }

// Move returns the state reached by applying a to s, ignoring walls.
func (s State) Move(a Action) State {
	dc, dr := a.Delta()
	return State{Col: s.Col + dc, Row: s.Row + dr}
}

// Action is a single move. Its byte value is the action code, so ordering actions
// orders them lexicographically by code.
type Action byte

const (
	Up    Action = 'U'
	Down  Action = 'D'
	Left  Action = 'L'
	Right Action = 'R'
)

// Directions lists actions in the order Neighbors reports them.
var Directions = [4]Action{Up, Right, Down, Left}

func (a Action) String() string { return string(rune(a)) }

// Valid reports whether a is one of the four known actions.
func (a Action) Valid() bool {
	switch a {
	case Up, Down, Left, Right:
		return true
	}
	return false
}

// Delta returns the column and row offsets of a. Unknown actions do not move.
func (a Action) Delta() (int, int) {
	switch a {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// ParseActions decodes a string of action codes such as "UURD". Whitespace and
// commas are ignored. An unknown code yields an *InvalidActionError.
func ParseActions(codes string) ([]Action, error) {
	actions := make([]Action, 0, len(codes))
	for _, r := range codes {
		switch r {
		case ' ', '\t', '\n', ',':
			continue
		}
		a := Action(r)
		if r > 0x7f || !a.Valid() {
			return nil, &InvalidActionError{Index: len(actions), Code: r}
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// FormatActions encodes actions as a compact code string.
func FormatActions(actions []Action) string {
	var b strings.Builder
	b.Grow(len(actions))
	for _, a := range actions {
		b.WriteByte(byte(a))
	}
	return b.String()
}

// Manhattan returns the grid distance between a and b.
func Manhattan(a, b State) int {
	dc := a.Col - b.Col
	if dc < 0 {
		dc = -dc
	}
	dr := a.Row - b.Row
	if dr < 0 {
		dr = -dr
	}
	return dc + dr
}
