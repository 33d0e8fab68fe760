package pathfinder

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// segmentKey identifies one leg of a tour.
type segmentKey[StateType comparable] struct {
	From StateType
	To   StateType
}

type segment[StateType comparable, ActionType cmp.Ordered] struct {
	Result Result[StateType, ActionType]
	Err    error
}

// segmentCache memoises leg searches for the lifetime of one tour. Workers asking
// for the same leg at the same time share a single search.
type segmentCache[StateType comparable, ActionType cmp.Ordered] struct {
	graph     Graph[StateType, ActionType]
	heuristic Heuristic[StateType]
	options   []Option

	group    singleflight.Group
	mu       sync.Mutex
	segments map[segmentKey[StateType]]segment[StateType, ActionType]
	expanded int
}

func newSegmentCache[StateType comparable, ActionType cmp.Ordered](
	graph Graph[StateType, ActionType],
	heuristic Heuristic[StateType],
	options []Option,
) *segmentCache[StateType, ActionType] {
	return &segmentCache[StateType, ActionType]{
		graph:     graph,
		heuristic: heuristic,
		options:   options,
		segments:  make(map[segmentKey[StateType]]segment[StateType, ActionType]),
	}
}

func (c *segmentCache[StateType, ActionType]) lookup(key segmentKey[StateType]) (segment[StateType, ActionType], bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	found, ok := c.segments[key]
	return found, ok
}

// leg returns the cheapest path between two states, searching at most once per
// pair unless a search was cancelled.
func (c *segmentCache[StateType, ActionType]) leg(
	contextObject context.Context,
	from StateType,
	to StateType,
) (Result[StateType, ActionType], error) {
	key := segmentKey[StateType]{From: from, To: to}
	if found, ok := c.lookup(key); ok {
		tourSegmentCacheHits.Inc()
		return found.Result, found.Err
	}

	value, _, _ := c.group.Do(fmt.Sprintf("%#v|%#v", from, to), func() (any, error) {
		if found, ok := c.lookup(key); ok {
			return found, nil
		}
		result, err := Search(contextObject, c.graph, from, to, c.heuristic, c.options...)
		searched := segment[StateType, ActionType]{Result: result, Err: err}
		if err == nil || errors.Is(err, ErrNoSolution) {
			c.mu.Lock()
			c.segments[key] = searched
			c.expanded += result.ExpandedNodes
			c.mu.Unlock()
		}
		return searched, nil
	})
	found := value.(segment[StateType, ActionType])
	return found.Result, found.Err
}

func (c *segmentCache[StateType, ActionType]) expandedNodes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded
}

// orderOutcome is a worker's evaluation of one goal ordering.
type orderOutcome[StateType comparable, ActionType cmp.Ordered] struct {
	Order     []int
	Actions   []ActionType
	Path      []StateType
	TotalCost int
	Err       error
}

// evaluateOrder chains leg searches through goals in the given order.
func evaluateOrder[StateType comparable, ActionType cmp.Ordered](
	contextObject context.Context,
	cache *segmentCache[StateType, ActionType],
	startState StateType,
	goals []StateType,
	order []int,
) orderOutcome[StateType, ActionType] {
	outcome := orderOutcome[StateType, ActionType]{
		Order:   order,
		Actions: []ActionType{},
		Path:    []StateType{startState},
	}
	current := startState
	for _, goalIndex := range order {
		goal := goals[goalIndex]
		result, err := cache.leg(contextObject, current, goal)
		if err != nil {
			outcome.Err = err
			return outcome
		}
		outcome.Actions = append(outcome.Actions, result.Actions...)
		outcome.Path = append(outcome.Path, result.Path[1:]...)
		outcome.TotalCost += result.TotalCost
		current = goal
	}
	return outcome
}
