package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/lostmatch/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), "matchctl "+version.String())
			return nil
		},
	}
}
