package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/internal/mazefile"
	"github.com/pdrpinto/pathfinder/maze"
)

func newSolveCmd(a *app) *cobra.Command {
	var (
		problemFile string
		draw        bool
	)
	cmd := &cobra.Command{
		Use:   "solve -f problem.yaml",
		Short: "Find the cheapest tour through every goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			problem, err := mazefile.LoadProblem(problemFile)
			if err != nil {
				return err
			}
			grid, start, goals, err := problem.Build(a.cfg.TerrainOptions()...)
			if err != nil {
				return err
			}
			result, err := pathfinder.Plan(cmd.Context(), grid, start, goals, a.searchOptions()...)
			if err != nil {
				return err
			}

			order := make([]string, len(result.Order))
			for i, goal := range result.Order {
				order[i] = goal.String()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "actions:  %s\n", maze.FormatActions(result.Actions))
			fmt.Fprintf(out, "cost:     %d\n", result.TotalCost)
			fmt.Fprintf(out, "order:    %s\n", strings.Join(order, " "))
			fmt.Fprintf(out, "expanded: %d\n", result.ExpandedNodes)
			if draw {
				for _, row := range grid.Draw(result.Path) {
					fmt.Fprintln(out, row)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&problemFile, "file", "f", "", "problem document (YAML)")
	cmd.Flags().BoolVar(&draw, "draw", false, "print the maze with the tour path marked")
	cmd.MarkFlagRequired("file")
	return cmd
}
