package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/jjprompt/version"
)

// NewVersionCmd prints the version line and build metadata.
func NewVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := version.GetInfo()
			fmt.Fprintln(cmd.OutOrStdout(), info.Short())
			fmt.Fprintln(cmd.OutOrStdout(), info.String())
		},
	}
	return versionCmd
}
