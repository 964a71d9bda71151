package cmd

import (
	goerrors "errors"

	"github.com/spf13/cobra"

	"github.com/grovetools/jjprompt/detect"
)

// errNotInRepo makes Execute exit 1 without printing anything. The
// detect subcommand speaks exclusively through its exit code so it can
// serve as a cheap guard in prompt configuration ("when" clauses).
var errNotInRepo = goerrors.New("not inside a repository")

// NewDetectCmd reports through the exit code whether the working
// directory is inside a Jujutsu or Git repository.
func NewDetectCmd() *cobra.Command {
	detectCmd := &cobra.Command{
		Use:   "detect",
		Short: "Exit 0 inside a repository, 1 outside",
		Long: `Check whether the working directory is inside a Jujutsu or Git
repository. Exits 0 when it is and 1 when it is not, printing nothing
either way.

Examples:
  # Guard a prompt module
  jjprompt detect && jjprompt prompt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := workingDir(cmd)
			if err != nil {
				return errNotInRepo
			}
			if !detect.InRepo(cwd) {
				return errNotInRepo
			}
			return nil
		},
	}
	return detectCmd
}
