package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder/internal/mazefile"
)

var errVerifyFailed = errors.New("actions do not solve the maze")

func newVerifyCmd(a *app) *cobra.Command {
	var (
		problemFile string
		actionCodes string
	)
	cmd := &cobra.Command{
		Use:   "verify -f problem.yaml [--actions URDL]",
		Short: "Replay an action sequence and report its cost",
		Long: `verify replays the actions of the problem document, or --actions when
given, and exits non-zero when they hit a wall or miss a goal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			problem, err := mazefile.LoadProblem(problemFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("actions") {
				problem.Actions = actionCodes
			}
			grid, start, goals, err := problem.Build(a.cfg.TerrainOptions()...)
			if err != nil {
				return err
			}
			actions, err := problem.ParsedActions()
			if err != nil {
				return err
			}

			cost, success := grid.Verify(actions, start, goals)
			a.logger.Debug("replayed actions", "actions", len(actions), "cost", cost, "success", success)
			fmt.Fprintf(cmd.OutOrStdout(), "cost:    %d\nsuccess: %t\n", cost, success)
			if !success {
				return errVerifyFailed
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&problemFile, "file", "f", "", "problem document (YAML)")
	cmd.Flags().StringVar(&actionCodes, "actions", "", "action codes, overriding the document")
	cmd.MarkFlagRequired("file")
	return cmd
}
