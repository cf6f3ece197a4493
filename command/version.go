package command

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// GitCommit is the git commit that was compiled, set through ldflags.
	GitCommit string

	// Version is the main version at the moment.
	Version = "0.1.0"
)

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			version := Version
			if GitCommit != "" {
				version += fmt.Sprintf(" (%s)", GitCommit)
			}

			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
