package pathfinder

import (
	"cmp"
	"container/heap"

	"github.com/pdrpinto/pathfinder/internal"
)

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[StateType comparable, ActionType cmp.Ordered] struct {
	Current       StateType
	StepIndex     int
	FrontierSize  int
	ClosedSize    int
	ExpandedNodes int
	Done          bool
	Found         bool

	// Set once Found.
	Actions  []ActionType
	Path     []StateType
	PathCost int
}

// Stepper runs A* one expansion at a time. It owns its frontier, closed set and
// node arena; nothing is shared with other searches.
type Stepper[StateType comparable, ActionType cmp.Ordered] struct {
	graph     Graph[StateType, ActionType]
	goal      StateType
	heuristic Heuristic[StateType]

	arena    internal.Arena[StateType, ActionType]
	openSet  priorityQueue
	closed   map[StateType]bool
	bestCost map[StateType]int
	sequence uint64

	stepCount int
	expanded  int
	done      bool
	final     StepSnapshot[StateType, ActionType]
}

// NewStepper seeds a search with the root node at startState.
func NewStepper[StateType comparable, ActionType cmp.Ordered](
	graph Graph[StateType, ActionType],
	startState StateType,
	goalState StateType,
	heuristic Heuristic[StateType],
) *Stepper[StateType, ActionType] {
	s := &Stepper[StateType, ActionType]{
		graph:     graph,
		goal:      goalState,
		heuristic: heuristic,
		openSet:   make(priorityQueue, 0),
		closed:    make(map[StateType]bool),
		bestCost:  map[StateType]int{startState: 0},
	}
	heap.Init(&s.openSet)
	h := heuristic(startState, goalState)
	s.push(s.arena.Root(startState, h), h)
	return s
}

func (s *Stepper[StateType, ActionType]) push(nodeIndex, fCost int) {
	heap.Push(&s.openSet, queueItem{NodeIndex: nodeIndex, FCost: fCost, Sequence: s.sequence})
	s.sequence++
}

// Step advances the search by one node expansion and returns a snapshot. Once
// the search is done every further call returns the final snapshot.
func (s *Stepper[StateType, ActionType]) Step() StepSnapshot[StateType, ActionType] {
	if s.done {
		return s.final
	}

	for s.openSet.Len() > 0 {
		item := heap.Pop(&s.openSet).(queueItem)
		node := s.arena.At(item.NodeIndex)
		if node.PathCost > s.bestCost[node.State] {
			// superseded by a cheaper entry
			continue
		}

		s.stepCount++
		if node.State == s.goal {
			actions, path := s.arena.ReconstructPath(item.NodeIndex)
			s.finish(node.State, true)
			s.final.Actions = actions
			s.final.Path = path
			s.final.PathCost = node.PathCost
			return s.final
		}

		s.closed[node.State] = true
		s.expanded++
		for _, successor := range s.graph.Successors(node.State) {
			pathCost := node.PathCost + successor.Cost
			if previous, seen := s.bestCost[successor.State]; seen && pathCost >= previous {
				continue
			}
			s.bestCost[successor.State] = pathCost
			// reopen: a cheaper path invalidates the earlier expansion
			delete(s.closed, successor.State)
			h := s.heuristic(successor.State, s.goal)
			child := s.arena.Add(internal.Node[StateType, ActionType]{
				State:     successor.State,
				Action:    successor.Action,
				Parent:    item.NodeIndex,
				PathCost:  pathCost,
				Heuristic: h,
			})
			s.push(child, pathCost+h)
		}
		return s.snapshot(node.State, false)
	}

	var none StateType
	s.finish(none, false)
	return s.final
}

func (s *Stepper[StateType, ActionType]) finish(current StateType, found bool) {
	s.done = true
	s.final = s.snapshot(current, true)
	s.final.Found = found
}

func (s *Stepper[StateType, ActionType]) snapshot(current StateType, done bool) StepSnapshot[StateType, ActionType] {
	return StepSnapshot[StateType, ActionType]{
		Current:       current,
		StepIndex:     s.stepCount,
		FrontierSize:  s.openSet.Len(),
		ClosedSize:    len(s.closed),
		ExpandedNodes: s.expanded,
		Done:          done,
	}
}

// Done reports whether the search has finished.
func (s *Stepper[StateType, ActionType]) Done() bool { return s.done }

// Nodes returns how many search tree nodes have been created.
func (s *Stepper[StateType, ActionType]) Nodes() int { return s.arena.Len() }
