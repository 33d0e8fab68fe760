package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedGrid is matched by every *MalformedGridError.
	ErrMalformedGrid = errors.New("malformed grid")

	// ErrInvalidReplay is matched by every *InvalidActionReplayError.
	ErrInvalidReplay = errors.New("invalid action replay")

	// ErrInvalidAction is matched by every *InvalidActionError.
	ErrInvalidAction = errors.New("invalid action")
)

// MalformedGridError describes why a grid description was rejected. Row and Col
// are -1 when the problem is not tied to a cell.
type MalformedGridError struct {
	Row    int
	Col    int
	Reason string
}

func (e *MalformedGridError) Error() string {
	switch {
	case e.Row >= 0 && e.Col >= 0:
		return fmt.Sprintf("malformed grid at (%d,%d): %s", e.Col, e.Row, e.Reason)
	case e.Row >= 0:
		return fmt.Sprintf("malformed grid at row %d: %s", e.Row, e.Reason)
	}
	return "malformed grid: " + e.Reason
}

func (e *MalformedGridError) Is(target error) bool { return target == ErrMalformedGrid }

func malformed(row, col int, format string, args ...any) *MalformedGridError {
	return &MalformedGridError{Row: row, Col: col, Reason: fmt.Sprintf(format, args...)}
}

// InvalidActionReplayError reports the first action of a replay that could not be
// applied. At is the state the agent was in when it tried the action.
type InvalidActionReplayError struct {
	Step   int
	Action Action
	At     State
	Reason string
}

func (e *InvalidActionReplayError) Error() string {
	return fmt.Sprintf("replay step %d: action %q from %s: %s", e.Step, byte(e.Action), e.At, e.Reason)
}

func (e *InvalidActionReplayError) Is(target error) bool { return target == ErrInvalidReplay }

// InvalidActionError reports an unknown code in an action string. Index counts
// actions, not bytes, so separators are skipped.
type InvalidActionError struct {
	Index int
	Code  rune
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q at index %d", e.Code, e.Index)
}

func (e *InvalidActionError) Is(target error) bool { return target == ErrInvalidAction }
