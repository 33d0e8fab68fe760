package pathfinder

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/pathfinder/maze"
)

func TestSolve_MarkedGrid(t *testing.T) {
	grid := maze.MustParse("XXXXX", "X..GX", "X...X", "X*..X", "XXXXX")
	start, _ := grid.Start()

	actions, err := Solve(context.Background(), grid, start, nil)
	require.NoError(t, err)
	assert.Len(t, actions, 4)

	cost, ok := grid.Verify(actions, start, nil)
	assert.True(t, ok)
	assert.Equal(t, 4, cost)
}

func TestPlan_MultipleGoals(t *testing.T) {
	tests := []struct {
		name        string
		rows        []string
		start       maze.State
		goals       []maze.State
		wantCost    int
		wantActions string
	}{
		{
			name:     "two goals along the bottom",
			rows:     []string{"XXXXXXX", "X.....X", "X.M.M.X", "X.X.X.X", "XXXXXXX"},
			start:    maze.State{Col: 1, Row: 3},
			goals:    []maze.State{{Col: 3, Row: 3}, {Col: 5, Row: 3}},
			wantCost: 12,
		},
		{
			name:        "three goals with an equal-cost reverse tour",
			rows:        []string{"XXXXXXX", "X.....X", "X.M.MMX", "X...M.X", "XXXXXXX"},
			start:       maze.State{Col: 5, Row: 1},
			goals:       []maze.State{{Col: 5, Row: 3}, {Col: 1, Row: 3}, {Col: 1, Row: 1}},
			wantCost:    12,
			wantActions: "DDLLLLUU",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := maze.ParseLayout(tt.rows)
			require.NoError(t, err)

			result, err := Plan(context.Background(), grid, tt.start, tt.goals)
			require.NoError(t, err)
			require.True(t, result.Found)
			assert.Equal(t, tt.wantCost, result.TotalCost)
			assert.ElementsMatch(t, tt.goals, result.Order)
			if tt.wantActions != "" {
				assert.Equal(t, tt.wantActions, maze.FormatActions(result.Actions))
			}

			cost, ok := grid.Verify(result.Actions, tt.start, tt.goals)
			assert.True(t, ok)
			assert.Equal(t, tt.wantCost, cost)
		})
	}
}

func TestPlan_UnreachableGoal(t *testing.T) {
	tests := []struct {
		name  string
		goals []maze.State
	}{
		{name: "single isolated goal", goals: []maze.State{{Col: 5, Row: 3}}},
		{name: "isolated among reachable goals", goals: []maze.State{{Col: 5, Row: 3}, {Col: 1, Row: 3}, {Col: 1, Row: 1}}},
		{name: "goal on a wall", goals: []maze.State{{Col: 0, Row: 0}}},
	}
	grid, err := maze.ParseLayout([]string{"XXXXXXX", "X.....X", "X.M.XXX", "X...X.X", "XXXXXXX"})
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, err := Solve(context.Background(), grid, maze.State{Col: 5, Row: 1}, tt.goals)
			require.Error(t, err)
			assert.Nil(t, actions)
			assert.ErrorIs(t, err, ErrUnreachableGoal)

			var unreachable *UnreachableGoalError
			require.True(t, errors.As(err, &unreachable))
			assert.Equal(t, tt.goals[0].String(), unreachable.Goal)
		})
	}
}

func TestPlan_DisconnectedGoal(t *testing.T) {
	grid := maze.MustParse("XXXXXXXX", "X*.XG.GX", "XXXXXXXX")
	start, _ := grid.Start()

	result, err := Plan(context.Background(), grid, start, nil)
	assert.ErrorIs(t, err, ErrNoSolution)
	assert.False(t, result.Found)
	assert.Equal(t, 2, result.Permutations)
}

func TestPlan_InvalidInput(t *testing.T) {
	grid, err := maze.ParseLayout([]string{"XXXX", "X..X", "XXXX"})
	require.NoError(t, err)

	_, err = Plan(context.Background(), grid, maze.State{Col: 0, Row: 0}, []maze.State{{Col: 2, Row: 1}})
	assert.ErrorIs(t, err, ErrInvalidStart)

	_, err = Plan(context.Background(), grid, maze.State{Col: 1, Row: 1}, nil)
	assert.ErrorIs(t, err, maze.ErrMalformedGrid)
}

func TestPlan_PrefersCostOverLexicographicOrder(t *testing.T) {
	grid := maze.MustParse("XXX", "XGX", "X*X", "X.X", "X.X", "XGX", "XXX")
	start, _ := grid.Start()

	result, err := Plan(context.Background(), grid, start, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, result.TotalCost)
	assert.Equal(t, "UDDDD", maze.FormatActions(result.Actions))
}

func TestPlan_LexicographicTieBreak(t *testing.T) {
	grid := maze.MustParse("XXXXXXX", "XG.*.GX", "XXXXXXX")
	start, _ := grid.Start()
	left, right := maze.State{Col: 1, Row: 1}, maze.State{Col: 5, Row: 1}

	for _, goals := range [][]maze.State{{left, right}, {right, left}} {
		result, err := Plan(context.Background(), grid, start, goals)
		require.NoError(t, err)
		assert.Equal(t, 6, result.TotalCost)
		assert.Equal(t, "LLRRRR", maze.FormatActions(result.Actions))
		assert.Equal(t, []maze.State{left, right}, result.Order)
	}
}

func TestPlan_SingleGoalMatchesSearch(t *testing.T) {
	grid, err := maze.ParseLayout([]string{"XXXXXXX", "X.M...X", "X.X.X.X", "X...X.X", "XXXXXXX"})
	require.NoError(t, err)
	start, goal := maze.State{Col: 1, Row: 1}, maze.State{Col: 5, Row: 3}

	searched, err := Search(context.Background(), GridGraph(grid), start, goal, maze.Manhattan)
	require.NoError(t, err)
	planned, err := Plan(context.Background(), grid, start, []maze.State{goal})
	require.NoError(t, err)

	assert.Equal(t, searched.Actions, planned.Actions)
	assert.Equal(t, searched.Path, planned.Path)
	assert.Equal(t, searched.TotalCost, planned.TotalCost)
	assert.Equal(t, 1, planned.Permutations)
}

func TestPlan_DuplicateAndStartGoals(t *testing.T) {
	grid := maze.MustParse("XXXXX", "X*.GX", "XXXXX")
	start, _ := grid.Start()
	goal := maze.State{Col: 3, Row: 1}

	result, err := Plan(context.Background(), grid, start, []maze.State{goal, start, goal})
	require.NoError(t, err)
	assert.Equal(t, "RR", maze.FormatActions(result.Actions))
	assert.Equal(t, []maze.State{goal}, result.Order)
	assert.Equal(t, 1, result.Permutations)
}

func TestPlan_IndependentOfWorkers(t *testing.T) {
	grid := maze.MustParse(
		"XXXXXXXXX",
		"X*..G...X",
		"X.XMX.X.X",
		"XG..M..GX",
		"X.X.X.XMX",
		"X...G...X",
		"XXXXXXXXX",
	)
	start, _ := grid.Start()

	reference, err := Plan(context.Background(), grid, start, nil, WithWorkers(1))
	require.NoError(t, err)
	assert.Equal(t, 24, reference.Permutations)

	for _, workers := range []int{2, 4, 16} {
		result, err := Plan(context.Background(), grid, start, nil, WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, reference.Actions, result.Actions, "workers=%d", workers)
		assert.Equal(t, reference.TotalCost, result.TotalCost, "workers=%d", workers)
		assert.Equal(t, reference.ExpandedNodes, result.ExpandedNodes, "workers=%d", workers)
	}

	cost, ok := grid.Verify(reference.Actions, start, grid.Goals())
	assert.True(t, ok)
	assert.Equal(t, reference.TotalCost, cost)
}

func TestPlan_CorridorOfGoals(t *testing.T) {
	grid := maze.MustParse("*GGGGGGG")
	start, _ := grid.Start()

	result, err := Plan(context.Background(), grid, start, nil, WithWorkers(3))
	require.NoError(t, err)
	assert.Equal(t, 5040, result.Permutations)
	assert.Equal(t, 7, result.TotalCost)
	assert.Equal(t, "RRRRRRR", maze.FormatActions(result.Actions))
	assert.Equal(t, grid.Goals(), result.Order)
	assert.Len(t, result.Path, 8)
}

func TestPlan_Cancelled(t *testing.T) {
	grid := maze.MustParse("XXXXXX", "X*G.GX", "XXXXXX")
	start, _ := grid.Start()
	contextObject, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Plan(contextObject, grid, start, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
