package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "matchctl",
		Short:         "Score lost and found item descriptions",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.AddCommand(newScoreCommand())
	rootCmd.AddCommand(newTermsCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
