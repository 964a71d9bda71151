package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grovetools/jjprompt/config"
	"github.com/grovetools/jjprompt/detect"
	"github.com/grovetools/jjprompt/git"
	"github.com/grovetools/jjprompt/jj"
	"github.com/grovetools/jjprompt/logging"
	"github.com/grovetools/jjprompt/render"
)

// NewPromptCmd returns the explicit form of the default invocation.
// Starship's custom-module command runs "jjprompt prompt".
func NewPromptCmd() *cobra.Command {
	promptCmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render the prompt segment for the current repository",
		Long: `Render the one-line status segment for the repository containing the
working directory. Prints nothing outside a repository.

The segment never ends in a newline and the command always exits zero:
a broken repository state must degrade to an empty prompt, not to an
error message inside it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrompt(cmd)
		},
	}
	return promptCmd
}

// runPrompt renders the segment for cmd's working directory. Every
// failure path returns nil: the shell splices stdout into the prompt,
// so the only acceptable degraded output is no output.
func runPrompt(cmd *cobra.Command) error {
	log := logging.NewLogger("prompt")
	cfg := config.Resolve(buildOverrides(cmd))

	cwd, err := workingDir(cmd)
	if err != nil {
		log.WithError(err).Debug("working directory unavailable")
		return nil
	}

	repo := detect.Detect(cwd)
	if repo.Kind == detect.KindNone {
		return nil
	}

	// Styling is emitted into a pipe, never a terminal; force the basic
	// ANSI profile so escapes survive instead of being stripped.
	render.ForceANSIProfile()

	var segment string
	switch repo.Kind {
	case detect.KindJJ, detect.KindColocated:
		info, err := jj.NewCollector().Collect(cmd.Context(), repo.Root, jj.Options{
			IDLength:      cfg.IDLength,
			AncestorDepth: cfg.AncestorDepth,
		})
		if err != nil {
			log.WithError(err).WithField("root", repo.Root).Debug("jj collection failed")
			return nil
		}
		segment = render.FormatJJ(info, cfg)
	case detect.KindGit:
		info, err := git.Collect(cmd.Context(), repo.Root, cfg.IDLength)
		if err != nil {
			log.WithError(err).WithField("root", repo.Root).Debug("git collection failed")
			return nil
		}
		segment = render.FormatGit(info, cfg)
	}

	if segment != "" {
		fmt.Fprint(cmd.OutOrStdout(), segment)
	}
	return nil
}
