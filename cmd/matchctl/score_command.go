package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/lostmatch/internal/domain/similarity"
	gen "github.com/kailas-cloud/lostmatch/internal/transport/generated"
)

func newScoreCommand() *cobra.Command {
	var lost, found string
	var asJSON, explain bool

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a lost description against a found description",
		Example: `  matchctl score --lost "black leather wallet" --found "black leather wallet with cards"
  matchctl score --lost "silver key ring" --found "silver key" --explain --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := similarity.Default().Score(lost, found)
			if err != nil {
				return err
			}

			if asJSON {
				resp := gen.MatchResponse{
					Similarity:           res.Similarity(),
					SimilarityPercentage: res.Percentage(),
					Confidence:           gen.MatchResponseConfidence(res.Confidence()),
				}
				if explain {
					terms := res.CommonTerms()
					if terms == nil {
						terms = []string{}
					}
					resp.CommonTerms = &terms
				}
				return writeJSON(cmd, resp)
			}

			rows := [][]string{
				{"Similarity", strconv.FormatFloat(res.Similarity(), 'f', -1, 64)},
				{"Percentage", strconv.FormatFloat(res.Percentage(), 'f', -1, 64) + "%"},
				{"Confidence", confidenceLabel(res.Confidence(), isTerminal(cmd.OutOrStdout()))},
			}
			if explain {
				rows = append(rows, []string{"Common terms", strings.Join(res.CommonTerms(), ", ")})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, nil))
			return nil
		},
	}

	cmd.Flags().StringVar(&lost, "lost", "", "Description of the lost item")
	cmd.Flags().StringVar(&found, "found", "", "Description of the found item")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&explain, "explain", false, "Include the shared terms")
	_ = cmd.MarkFlagRequired("lost")
	_ = cmd.MarkFlagRequired("found")

	return cmd
}
