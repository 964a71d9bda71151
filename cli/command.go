// Package cli carries the shared command plumbing: standard flags,
// styled help, and error presentation for the interactive subcommands.
package cli

import (
	"github.com/spf13/cobra"
)

// CommandOptions holds the options every jjprompt command accepts.
type CommandOptions struct {
	ConfigFile string
	Verbose    bool
}

// NewStandardCommand creates a command with the standard jjprompt
// flags. Usage and error printing are silenced; Execute owns both.
func NewStandardCommand(use, short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           use,
		Short:         short,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging to stderr")
	cmd.PersistentFlags().String("config-file", "", "Path to jjprompt.yml config file")

	SetStyledHelp(cmd)

	return cmd
}

// GetOptions extracts the standard options from a command.
func GetOptions(cmd *cobra.Command) CommandOptions {
	configFile, _ := cmd.Flags().GetString("config-file")
	verbose, _ := cmd.Flags().GetBool("verbose")

	return CommandOptions{
		ConfigFile: configFile,
		Verbose:    verbose,
	}
}
