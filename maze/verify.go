package maze

// Replay applies actions from start and returns the accumulated entry cost and
// every state visited, start included. It stops at the first action that would
// enter a wall or leave the grid and returns an *InvalidActionReplayError.
func (g *Grid) Replay(actions []Action, start State) (int, []State, error) {
	if g.IsWall(start) {
		return -1, nil, &InvalidActionReplayError{Step: -1, At: start, Reason: "start is not an open cell"}
	}
	visited := make([]State, 0, len(actions)+1)
	visited = append(visited, start)
	cost := 0
	at := start
	for i, a := range actions {
		if !a.Valid() {
			return -1, visited, &InvalidActionReplayError{Step: i, Action: a, At: at, Reason: "unknown action"}
		}
		next := at.Move(a)
		if !g.InBounds(next) {
			return -1, visited, &InvalidActionReplayError{Step: i, Action: a, At: at, Reason: "leaves the grid"}
		}
		if g.IsWall(next) {
			return -1, visited, &InvalidActionReplayError{Step: i, Action: a, At: at, Reason: "enters a wall"}
		}
		cost += g.StepCost(next)
		at = next
		visited = append(visited, at)
	}
	return cost, visited, nil
}

// Verify replays actions from start and reports their cost and whether they solve
// the problem. An invalid replay yields (-1, false).
//
// With no goals the final state must hold a goal marker; with one goal the final
// state must be that goal; with several goals every goal must be visited at
// least once, in any order.
func (g *Grid) Verify(actions []Action, start State, goals []State) (int, bool) {
	cost, visited, err := g.Replay(actions, start)
	if err != nil {
		return -1, false
	}
	final := visited[len(visited)-1]
	switch len(goals) {
	case 0:
		return cost, g.IsGoal(final)
	case 1:
		return cost, final == goals[0]
	}
	seen := make(map[State]struct{}, len(visited))
	for _, s := range visited {
		seen[s] = struct{}{}
	}
	for _, goal := range goals {
		if _, ok := seen[goal]; !ok {
			return cost, false
		}
	}
	return cost, true
}
