// Package pathfinder provides a generic A* search engine and a multi-goal tour
// planner built on it, with a binding for the character mazes of package maze.
//
// It exposes three main entry points:
//
//   - Search: run A* from one state to one goal and get a Result.
//   - Stepper: iterate the same search one expansion at a time for debugging tools.
//   - Tour: visit several goals in the cheapest order, trying every ordering.
//
// Solve and Plan apply Tour to a maze.Grid using Manhattan distance. Tour spreads
// goal orderings over a bounded worker pool and shares segment searches between
// workers; the chosen tour does not depend on the number of workers.
package pathfinder
