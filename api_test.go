package pathfinder

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/pathfinder/maze"
)

// mapGraph is a small explicit graph for engine tests.
type mapGraph map[string][]Successor[string, string]

func (g mapGraph) Successors(state string) []Successor[string, string] { return g[state] }

func zeroHeuristic(string, string) int { return 0 }

func TestSearch_Grid(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		start    maze.State
		goal     maze.State
		wantCost int
	}{
		{
			name:     "open room",
			rows:     []string{"XXXXX", "X..GX", "X...X", "X*..X", "XXXXX"},
			start:    maze.State{Col: 1, Row: 3},
			goal:     maze.State{Col: 3, Row: 1},
			wantCost: 4,
		},
		{
			name:     "around mud",
			rows:     []string{"XXXXXXX", "X.....X", "X.M.M.X", "X.X.X.X", "XXXXXXX"},
			start:    maze.State{Col: 1, Row: 3},
			goal:     maze.State{Col: 5, Row: 3},
			wantCost: 8,
		},
		{
			name:     "mud in corner",
			rows:     []string{"XXXXX", "X...X", "X...X", "X.M.X", "XXXXX"},
			start:    maze.State{Col: 1, Row: 3},
			goal:     maze.State{Col: 3, Row: 1},
			wantCost: 4,
		},
		{
			name:     "through mud is cheaper",
			rows:     []string{"XXXXXXX", "X....XX", "X.X.M.X", "X.M...X", "XXXXXXX"},
			start:    maze.State{Col: 1, Row: 3},
			goal:     maze.State{Col: 5, Row: 3},
			wantCost: 6,
		},
		{
			name:     "mud shortcut",
			rows:     []string{"XXXXXXX", "X.M...X", "X.X.X.X", "X...X.X", "XXXXXXX"},
			start:    maze.State{Col: 1, Row: 1},
			goal:     maze.State{Col: 5, Row: 3},
			wantCost: 8,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := maze.ParseLayout(tt.rows)
			require.NoError(t, err)

			result, err := Search(context.Background(), GridGraph(grid), tt.start, tt.goal, maze.Manhattan)
			require.NoError(t, err)
			require.True(t, result.Found)
			assert.Equal(t, tt.wantCost, result.TotalCost)
			assert.Equal(t, tt.start, result.Path[0])
			assert.Equal(t, tt.goal, result.Path[len(result.Path)-1])
			assert.Len(t, result.Path, len(result.Actions)+1)

			cost, ok := grid.Verify(result.Actions, tt.start, []maze.State{tt.goal})
			assert.True(t, ok)
			assert.Equal(t, tt.wantCost, cost)
		})
	}
}

func TestSearch_NoSolution(t *testing.T) {
	grid := maze.MustParse("XXXXXXX", "X*.X.GX", "XXXXXXX")
	start, _ := grid.Start()

	result, err := Search(context.Background(), GridGraph(grid), start, maze.State{Col: 5, Row: 1}, maze.Manhattan)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoSolution)
	assert.False(t, result.Found)

	var noSolution *NoSolutionError
	require.True(t, errors.As(err, &noSolution))
	assert.Equal(t, "(1,1)", noSolution.Start)
	assert.Equal(t, "(5,1)", noSolution.Goal)
	assert.Equal(t, 2, noSolution.ExpandedNodes)
}

func TestSearch_StartIsGoal(t *testing.T) {
	grid := maze.MustParse("XXXX", "X*GX", "XXXX")

	result, err := Search(context.Background(), GridGraph(grid), maze.State{Col: 2, Row: 1}, maze.State{Col: 2, Row: 1}, maze.Manhattan)
	require.NoError(t, err)
	assert.True(t, result.Found)
	assert.Empty(t, result.Actions)
	assert.Zero(t, result.TotalCost)
}

func TestSearch_ReopensCheaperPath(t *testing.T) {
	graph := mapGraph{
		"s": {{Action: "a", State: "a", Cost: 1}, {Action: "b", State: "b", Cost: 1}},
		"a": {{Action: "c", State: "c", Cost: 1}},
		"b": {{Action: "c", State: "c", Cost: 5}},
		"c": {{Action: "g", State: "g", Cost: 10}},
	}
	// overestimates at "a" so that "c" is first expanded through "b"
	heuristic := func(from, _ string) int {
		if from == "a" {
			return 10
		}
		return 0
	}

	result, err := Search(context.Background(), graph, "s", "g", heuristic)
	require.NoError(t, err)
	assert.Equal(t, 12, result.TotalCost)
	assert.Equal(t, []string{"a", "c", "g"}, result.Actions)
	assert.Equal(t, []string{"s", "a", "c", "g"}, result.Path)
}

func TestSearch_TiesAreFirstInFirstOut(t *testing.T) {
	graph := mapGraph{
		"s": {{Action: "x", State: "x", Cost: 1}, {Action: "y", State: "y", Cost: 1}},
		"x": {{Action: "g", State: "g", Cost: 1}},
		"y": {{Action: "g", State: "g", Cost: 1}},
	}

	for i := 0; i < 10; i++ {
		result, err := Search(context.Background(), graph, "s", "g", zeroHeuristic)
		require.NoError(t, err)
		assert.Equal(t, []string{"x", "g"}, result.Actions)
	}
}

func TestSearch_Cancelled(t *testing.T) {
	grid := maze.MustParse("XXXXX", "X..GX", "X*..X", "XXXXX")
	contextObject, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Search(context.Background(), GridGraph(grid), maze.State{Col: 1, Row: 2}, maze.State{Col: 3, Row: 1}, maze.Manhattan)
	require.NoError(t, err)

	_, err = Search(contextObject, GridGraph(grid), maze.State{Col: 1, Row: 2}, maze.State{Col: 3, Row: 1}, maze.Manhattan)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearch_Metrics(t *testing.T) {
	grid := maze.MustParse("XXXXX", "X..GX", "X*..X", "XXXXX")
	before := testutil.ToFloat64(searchTotal.WithLabelValues(resultFound))

	_, err := Search(context.Background(), GridGraph(grid), maze.State{Col: 1, Row: 2}, maze.State{Col: 3, Row: 1}, maze.Manhattan)
	require.NoError(t, err)

	assert.Equal(t, before+1, testutil.ToFloat64(searchTotal.WithLabelValues(resultFound)))
}

// TestSearch_MatchesBreadthFirst compares A* against plain BFS on random
// uniform-cost grids, where BFS depth is the true shortest distance.
func TestSearch_MatchesBreadthFirst(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		rows := randomRows(random, 9, 7, 0.3)
		grid, err := maze.ParseLayout(rows)
		require.NoError(t, err)

		start := maze.State{Col: 1, Row: 1}
		goal := maze.State{Col: 7, Row: 5}
		want, reachable := breadthFirstDistance(grid, start, goal)

		result, err := Search(context.Background(), GridGraph(grid), start, goal, maze.Manhattan)
		if !reachable {
			assert.ErrorIs(t, err, ErrNoSolution, "trial %d:\n%s", trial, grid)
			continue
		}
		require.NoError(t, err, "trial %d:\n%s", trial, grid)
		assert.Equal(t, want, result.TotalCost, "trial %d:\n%s", trial, grid)

		cost, ok := grid.Verify(result.Actions, start, []maze.State{goal})
		assert.True(t, ok)
		assert.Equal(t, want, cost)
	}
}

func randomRows(random *rand.Rand, width, height int, density float64) []string {
	rows := make([]string, height)
	for r := 0; r < height; r++ {
		row := make([]byte, width)
		for c := 0; c < width; c++ {
			switch {
			case r == 0 || c == 0 || r == height-1 || c == width-1:
				row[c] = maze.Wall
			case (c == 1 && r == 1) || (c == width-2 && r == height-2):
				row[c] = maze.Open
			case random.Float64() < density:
				row[c] = maze.Wall
			default:
				row[c] = maze.Open
			}
		}
		rows[r] = string(row)
	}
	return rows
}

func breadthFirstDistance(grid *maze.Grid, start, goal maze.State) (int, bool) {
	distance := map[maze.State]int{start: 0}
	queue := []maze.State{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if current == goal {
			return distance[current], true
		}
		for _, transition := range grid.Neighbors(current) {
			if _, seen := distance[transition.State]; !seen {
				distance[transition.State] = distance[current] + 1
				queue = append(queue, transition.State)
			}
		}
	}
	return 0, false
}
