// Package maze models rectangular character mazes: walls, a start cell, goal
// cells and terrain with per-cell entry cost.
//
// A maze is described by equal-length rows:
//
//	X  wall
//	.  open cell
//	*  start (at most one)
//	G  goal (one or more)
//	M  mud, costs 3 to enter
//
// Other terrain markers may be registered with WithTerrainCost.
package maze

import (
	"fmt"
	"strings"
)

// Cell markers.
const (
	Wall  byte = 'X'
	Open  byte = '.'
	Start byte = '*'
	Goal  byte = 'G'
	Mud   byte = 'M'
)

// MudCost is the default cost of entering a Mud cell.
const MudCost = 3

// Transition is a legal move out of a state.
type Transition struct {
	Action Action
	State  State
}

// Grid is an immutable parsed maze.
type Grid struct {
	rows     []string
	width    int
	height   int
	start    State
	hasStart bool
	goals    []State
	costs    map[byte]int
}

type options struct {
	costs map[byte]int
}

// Option customises parsing.
type Option func(*options)

// WithTerrainCost registers marker as passable terrain costing cost to enter. It
// may override the cost of Open, Start, Goal or Mud cells; Wall cannot be
// redefined.
func WithTerrainCost(marker byte, cost int) Option {
	return func(o *options) { o.costs[marker] = cost }
}

func defaultCosts() map[byte]int {
	return map[byte]int{Open: 1, Start: 1, Goal: 1, Mud: MudCost}
}

// Parse builds a grid that must contain exactly one start and at least one goal.
func Parse(rows []string, opts ...Option) (*Grid, error) {
	g, err := ParseLayout(rows, opts...)
	if err != nil {
		return nil, err
	}
	if !g.hasStart {
		return nil, malformed(-1, -1, "no start cell %q", Start)
	}
	if len(g.goals) == 0 {
		return nil, malformed(-1, -1, "no goal cell %q", Goal)
	}
	return g, nil
}

// ParseLayout builds a grid without requiring start or goal markers, for callers
// that supply the start and goals themselves. More than one start is still
// rejected.
func ParseLayout(rows []string, opts ...Option) (*Grid, error) {
	o := options{costs: defaultCosts()}
	for _, opt := range opts {
		opt(&o)
	}
	if _, ok := o.costs[Wall]; ok {
		return nil, malformed(-1, -1, "wall marker %q cannot carry a terrain cost", Wall)
	}
	for marker, cost := range o.costs {
		if cost < 1 {
			return nil, malformed(-1, -1, "terrain %q costs %d, must be at least 1", marker, cost)
		}
	}
	if len(rows) == 0 {
		return nil, malformed(-1, -1, "no rows")
	}

	g := &Grid{
		rows:   append([]string(nil), rows...),
		width:  len(rows[0]),
		height: len(rows),
		costs:  o.costs,
	}
	if g.width == 0 {
		return nil, malformed(0, -1, "empty row")
	}
	for r, row := range rows {
		if len(row) != g.width {
			return nil, malformed(r, -1, "length %d, expected %d", len(row), g.width)
		}
		for c := 0; c < len(row); c++ {
			marker := row[c]
			if marker == Wall {
				continue
			}
			if _, ok := o.costs[marker]; !ok {
				return nil, malformed(r, c, "unknown marker %q", marker)
			}
			switch marker {
			case Start:
				if g.hasStart {
					return nil, malformed(r, c, "second start cell, first at %s", g.start)
				}
				g.start, g.hasStart = State{Col: c, Row: r}, true
			case Goal:
				g.goals = append(g.goals, State{Col: c, Row: r})
			}
		}
	}
	return g, nil
}

// MustParse is like Parse but panics on error. Intended for tests and fixtures.
func MustParse(rows ...string) *Grid {
	g, err := Parse(rows)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Start returns the start marker position, if the grid has one.
func (g *Grid) Start() (State, bool) { return g.start, g.hasStart }

// Goals returns the goal marker positions in row-major order.
func (g *Grid) Goals() []State { return append([]State(nil), g.goals...) }

// InBounds reports whether s lies inside the grid.
func (g *Grid) InBounds(s State) bool {
	return s.Col >= 0 && s.Col < g.width && s.Row >= 0 && s.Row < g.height
}

// Marker returns the marker at s, or Wall outside the grid.
func (g *Grid) Marker(s State) byte {
	if !g.InBounds(s) {
		return Wall
	}
	return g.rows[s.Row][s.Col]
}

// IsWall reports whether s is impassable. Cells outside the grid are walls.
func (g *Grid) IsWall(s State) bool { return g.Marker(s) == Wall }

// IsGoal reports whether s holds a goal marker.
func (g *Grid) IsGoal(s State) bool { return g.Marker(s) == Goal }

// StepCost returns the cost of entering s, or -1 if s is a wall.
func (g *Grid) StepCost(s State) int {
	cost, ok := g.costs[g.Marker(s)]
	if !ok {
		return -1
	}
	return cost
}

// Neighbors returns the moves available from s in the order Up, Right, Down, Left.
func (g *Grid) Neighbors(s State) []Transition {
	out := make([]Transition, 0, len(Directions))
	for _, a := range Directions {
		next := s.Move(a)
		if !g.IsWall(next) {
			out = append(out, Transition{Action: a, State: next})
		}
	}
	return out
}

// Rows returns a copy of the grid description.
func (g *Grid) Rows() []string { return append([]string(nil), g.rows...) }

// PathMarker overwrites the cells a drawn path crosses.
const PathMarker byte = 'o'

// Draw returns the rows with every cell of path marked by PathMarker. Start and
// goal markers are left in place; states outside the grid are ignored.
func (g *Grid) Draw(path []State) []string {
	rows := g.Rows()
	cells := make([][]byte, len(rows))
	for r, row := range rows {
		cells[r] = []byte(row)
	}
	for _, s := range path {
		switch g.Marker(s) {
		case Wall, Start, Goal:
			continue
		}
		cells[s.Row][s.Col] = PathMarker
	}
	for r := range rows {
		rows[r] = string(cells[r])
	}
	return rows
}

func (g *Grid) String() string { return strings.Join(g.rows, "\n") }

// GoString is used by %#v, mostly from test failures.
func (g *Grid) GoString() string { return fmt.Sprintf("maze.Grid%q", g.rows) }
