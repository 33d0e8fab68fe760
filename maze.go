package pathfinder

import (
	"context"
	"fmt"

	"github.com/pdrpinto/pathfinder/maze"
)

// gridGraph adapts a maze to Graph. Entering a cell costs its terrain cost.
type gridGraph struct{ grid *maze.Grid }

func (gg gridGraph) Successors(state maze.State) []Successor[maze.State, maze.Action] {
	if gg.grid.IsWall(state) {
		return nil
	}
	transitions := gg.grid.Neighbors(state)
	out := make([]Successor[maze.State, maze.Action], 0, len(transitions))
	for _, transition := range transitions {
		out = append(out, Successor[maze.State, maze.Action]{
			Action: transition.Action,
			State:  transition.State,
			Cost:   gg.grid.StepCost(transition.State),
		})
	}
	return out
}

// GridGraph exposes grid as a Graph for use with Search, Stepper and Tour.
func GridGraph(grid *maze.Grid) Graph[maze.State, maze.Action] { return gridGraph{grid: grid} }

// Plan tours every goal of grid from start with Manhattan distance as the
// heuristic. With no goals given the grid's goal markers are used.
func Plan(
	contextObject context.Context,
	grid *maze.Grid,
	start maze.State,
	goals []maze.State,
	options ...Option,
) (TourResult[maze.State, maze.Action], error) {
	if grid.IsWall(start) {
		return TourResult[maze.State, maze.Action]{}, fmt.Errorf("%w: %s is not an open cell", ErrInvalidStart, start)
	}
	if len(goals) == 0 {
		goals = grid.Goals()
	}
	if len(goals) == 0 {
		return TourResult[maze.State, maze.Action]{}, fmt.Errorf("%w: no goals given and none marked", maze.ErrMalformedGrid)
	}
	return Tour(contextObject, GridGraph(grid), start, goals, maze.Manhattan, options...)
}

// Solve returns the cheapest action sequence from start through every goal.
func Solve(
	contextObject context.Context,
	grid *maze.Grid,
	start maze.State,
	goals []maze.State,
	options ...Option,
) ([]maze.Action, error) {
	result, err := Plan(contextObject, grid, start, goals, options...)
	if err != nil {
		return nil, err
	}
	return result.Actions, nil
}
