package pathfinder

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/pathfinder/internal"
)

// TourResult contains the outcome of a multi-goal tour.
type TourResult[StateType comparable, ActionType cmp.Ordered] struct {
	Actions       []ActionType
	Path          []StateType
	Order         []StateType
	TotalCost     int
	ExpandedNodes int
	Permutations  int
	Found         bool
}

// Tour finds the cheapest action sequence that starts at startState and visits
// every goal.
//
// Every visiting order is tried; each order is a chain of single-goal searches.
// The cheapest chain wins, ties going to the lexicographically smallest action
// sequence and then to the earlier order. Duplicate goals count once and a goal
// equal to startState is already visited. A goal without successors fails the
// tour with an *UnreachableGoalError before any search runs. When no order
// works the error of the first order tried is returned.
//
// The number of orders is the factorial of the number of goals. Orders are
// generated as workers free up and only the best outcome so far is kept.
func Tour[StateType comparable, ActionType cmp.Ordered](
	contextObject context.Context,
	graph Graph[StateType, ActionType],
	startState StateType,
	goals []StateType,
	heuristic Heuristic[StateType],
	options ...Option,
) (TourResult[StateType, ActionType], error) {
	searchOptions := applyOptions(options)
	began := time.Now()
	defer func() { tourDuration.Observe(time.Since(began).Seconds()) }()

	goals = distinctGoals(startState, goals)
	for _, goal := range goals {
		if len(graph.Successors(goal)) == 0 {
			return TourResult[StateType, ActionType]{}, &UnreachableGoalError{Goal: fmt.Sprint(goal)}
		}
	}

	cache := newSegmentCache(graph, heuristic, options)

	var (
		mu        sync.Mutex
		best      orderOutcome[StateType, ActionType]
		bestIndex = -1
		firstErr  error
		evaluated int
	)
	group, groupContext := errgroup.WithContext(contextObject)
	group.SetLimit(searchOptions.NumberOfWorkers)
	for index, order := range internal.PermutationSeq(len(goals)) {
		if groupContext.Err() != nil {
			break
		}
		evaluated++
		group.Go(func() error {
			outcome := evaluateOrder(groupContext, cache, startState, goals, order)
			if err := outcome.Err; err != nil {
				if !errors.Is(err, ErrNoSolution) {
					return err
				}
				if index == 0 {
					mu.Lock()
					firstErr = err
					mu.Unlock()
				}
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			if bestIndex < 0 || better(outcome, best) || (!better(best, outcome) && index < bestIndex) {
				best, bestIndex = outcome, index
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return TourResult[StateType, ActionType]{}, err
	}
	if err := contextObject.Err(); err != nil {
		return TourResult[StateType, ActionType]{}, err
	}
	tourPermutationsTotal.Add(float64(evaluated))

	if bestIndex < 0 {
		searchOptions.Logger.Debug("tour has no solution",
			"start", startState,
			"goals", len(goals),
			"permutations", evaluated)
		return TourResult[StateType, ActionType]{
			ExpandedNodes: cache.expandedNodes(),
			Permutations:  evaluated,
		}, firstErr
	}

	chosen := best
	visitOrder := make([]StateType, len(chosen.Order))
	for i, goalIndex := range chosen.Order {
		visitOrder[i] = goals[goalIndex]
	}
	searchOptions.Logger.Debug("tour selected",
		"start", startState,
		"order", visitOrder,
		"cost", chosen.TotalCost,
		"permutations", evaluated)

	return TourResult[StateType, ActionType]{
		Actions:       chosen.Actions,
		Path:          chosen.Path,
		Order:         visitOrder,
		TotalCost:     chosen.TotalCost,
		ExpandedNodes: cache.expandedNodes(),
		Permutations:  evaluated,
		Found:         true,
	}, nil
}

// better reports whether a beats b: lower cost first, then the smaller action
// sequence. Tour breaks remaining ties by permutation index.
func better[StateType comparable, ActionType cmp.Ordered](a, b orderOutcome[StateType, ActionType]) bool {
	if a.TotalCost != b.TotalCost {
		return a.TotalCost < b.TotalCost
	}
	return slices.Compare(a.Actions, b.Actions) < 0
}

func distinctGoals[StateType comparable](startState StateType, goals []StateType) []StateType {
	seen := map[StateType]bool{startState: true}
	out := make([]StateType, 0, len(goals))
	for _, goal := range goals {
		if seen[goal] {
			continue
		}
		seen[goal] = true
		out = append(out, goal)
	}
	return out
}
