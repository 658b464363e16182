package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/lostmatch/internal/domain/similarity"
)

func newTermsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "terms <text>",
		Short: "Show the terms a description is analysed into",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			terms := similarity.Default().Analyzer().Terms(strings.Join(args, " "))

			order := make([]string, 0, len(terms))
			counts := make(map[string]int, len(terms))
			for _, t := range terms {
				if counts[t] == 0 {
					order = append(order, t)
				}
				counts[t]++
			}

			if asJSON {
				type termCount struct {
					Term  string `json:"term"`
					Count int    `json:"count"`
				}
				out := make([]termCount, 0, len(order))
				for _, t := range order {
					out = append(out, termCount{Term: t, Count: counts[t]})
				}
				return writeJSON(cmd, out)
			}

			if len(order) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No terms (only stop words or single characters).")
				return nil
			}

			rows := make([][]string, 0, len(order))
			for _, t := range order {
				rows = append(rows, []string{t, strconv.Itoa(counts[t])})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Term", "Count"}, rows, []columnAlignment{alignLeft, alignRight}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print terms as JSON")
	return cmd
}
