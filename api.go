package pathfinder

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"runtime"
)

// Graph is generic over state type S and action type A.
// S must be comparable so it can be used in maps; A must be ordered so that
// equally cheap tours can be compared action by action.
type Graph[StateType comparable, ActionType cmp.Ordered] interface {
	Successors(state StateType) []Successor[StateType, ActionType]
}

// Successor is a move out of a state and the cost of taking it.
type Successor[StateType comparable, ActionType cmp.Ordered] struct {
	Action ActionType
	State  StateType
	Cost   int
}

// Heuristic returns the estimated cost from one state to another. Search is
// only guaranteed to return a cheapest path when it never overestimates.
type Heuristic[StateType comparable] func(from StateType, to StateType) int

// Result contains the outcome of a search
type Result[StateType comparable, ActionType cmp.Ordered] struct {
	Actions       []ActionType
	Path          []StateType
	TotalCost     int
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for searches and tours.
type Options struct {
	NumberOfWorkers int
	Logger          *slog.Logger
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithWorkers specifies how many goal orderings a tour evaluates concurrently.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

// WithLogger sets the logger used for debug records. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

func applyOptions(options []Option) Options {
	searchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.NumberOfWorkers < 1 {
		searchOptions.NumberOfWorkers = 1
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.Default()
	}
	return searchOptions
}

// Search runs A* from startState to goalState.
//
// The frontier is ordered by path cost plus heuristic, ties going to the entry
// pushed first. A state reached again more cheaply is pushed again, even when it
// was already expanded. When the frontier runs dry the error is a
// *NoSolutionError. The context is checked before every expansion.
func Search[StateType comparable, ActionType cmp.Ordered](
	contextObject context.Context,
	graph Graph[StateType, ActionType],
	startState StateType,
	goalState StateType,
	heuristic Heuristic[StateType],
	options ...Option,
) (Result[StateType, ActionType], error) {
	searchOptions := applyOptions(options)
	stepper := NewStepper(graph, startState, goalState, heuristic)

	for {
		if err := contextObject.Err(); err != nil {
			searchTotal.WithLabelValues(resultCancelled).Inc()
			return Result[StateType, ActionType]{ExpandedNodes: stepper.expanded}, err
		}

		snapshot := stepper.Step()
		if !snapshot.Done {
			continue
		}

		searchExpandedNodes.Observe(float64(snapshot.ExpandedNodes))
		if !snapshot.Found {
			searchTotal.WithLabelValues(resultNoSolution).Inc()
			searchOptions.Logger.Debug("search exhausted frontier",
				"start", startState,
				"goal", goalState,
				"expanded", snapshot.ExpandedNodes)
			return Result[StateType, ActionType]{ExpandedNodes: snapshot.ExpandedNodes}, &NoSolutionError{
				Start:         fmt.Sprint(startState),
				Goal:          fmt.Sprint(goalState),
				ExpandedNodes: snapshot.ExpandedNodes,
			}
		}

		searchTotal.WithLabelValues(resultFound).Inc()
		searchOptions.Logger.Debug("search found path",
			"start", startState,
			"goal", goalState,
			"cost", snapshot.PathCost,
			"length", len(snapshot.Actions),
			"expanded", snapshot.ExpandedNodes)
		return Result[StateType, ActionType]{
			Actions:       snapshot.Actions,
			Path:          snapshot.Path,
			TotalCost:     snapshot.PathCost,
			ExpandedNodes: snapshot.ExpandedNodes,
			Found:         true,
		}, nil
	}
}
