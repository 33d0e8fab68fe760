package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder/internal/mazefile"
)

func newAskCmd(a *app) *cobra.Command {
	var knowledgeFile string
	cmd := &cobra.Command{
		Use:   "ask -f kb.yaml [query...]",
		Short: "Answer entailment queries against a knowledge document",
		Long: `ask asserts the clauses of the knowledge document and reports, for each
query of the document followed by each argument, whether it is entailed.

Clauses are written as literals separated by "|", for example
"!B@1,1 | P@2,1". A literal is SYMBOL@COL,ROW, negated with "!".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			knowledge, err := mazefile.LoadKnowledge(knowledgeFile)
			if err != nil {
				return err
			}
			knowledge.Queries = append(knowledge.Queries, args...)
			if len(knowledge.Queries) == 0 {
				return errors.New("no queries in the document or arguments")
			}

			options, err := a.knowledgeBaseOptions()
			if err != nil {
				return err
			}
			knowledgeBase, queries, err := knowledge.Build(options...)
			if err != nil {
				return err
			}
			a.logger.Debug("knowledge base loaded",
				"clauses", knowledgeBase.Len(),
				"strategy", knowledgeBase.Strategy().String())

			out := cmd.OutOrStdout()
			for _, query := range queries {
				verdict := "not entailed"
				if knowledgeBase.Entails(query) {
					verdict = "entailed"
				}
				fmt.Fprintf(out, "%s: %s\n", query, verdict)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&knowledgeFile, "file", "f", "", "knowledge document (YAML)")
	cmd.MarkFlagRequired("file")
	return cmd
}
