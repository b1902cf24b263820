package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"autodelete-after-play/internal/startup"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := startup.GetBuildInfo()
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (commit %s, %s)\n", info.Version, info.Commit, info.GoVersion)
			return err
		},
	}
}
