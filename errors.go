package pathfinder

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSolution is matched by every *NoSolutionError.
	ErrNoSolution = errors.New("no solution")

	// ErrUnreachableGoal is matched by every *UnreachableGoalError.
	ErrUnreachableGoal = errors.New("unreachable goal")

	// ErrInvalidStart is returned when the start state is not a passable cell.
	ErrInvalidStart = errors.New("invalid start state")
)

// NoSolutionError reports a search whose frontier ran out before the goal was
// reached.
type NoSolutionError struct {
	Start         string
	Goal          string
	ExpandedNodes int
}

func (e *NoSolutionError) Error() string {
	return fmt.Sprintf("no solution from %s to %s after expanding %d nodes", e.Start, e.Goal, e.ExpandedNodes)
}

func (e *NoSolutionError) Is(target error) bool { return target == ErrNoSolution }

// UnreachableGoalError reports a goal with no transitions at all, found before
// any search runs.
type UnreachableGoalError struct {
	Goal string
}

func (e *UnreachableGoalError) Error() string {
	return fmt.Sprintf("unreachable goal %s: it has no transitions", e.Goal)
}

func (e *UnreachableGoalError) Is(target error) bool { return target == ErrUnreachableGoal }
