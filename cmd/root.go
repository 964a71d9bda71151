// Package cmd assembles the jjprompt command tree. The bare invocation
// renders the prompt segment, so every rendering knob lives on the root
// command as a persistent flag and is inherited by the subcommands.
package cmd

import (
	goerrors "errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/grovetools/jjprompt/cli"
	"github.com/grovetools/jjprompt/config"
	"github.com/grovetools/jjprompt/logging"
	"github.com/grovetools/jjprompt/starship"
	"github.com/grovetools/jjprompt/version"
)

// NewRootCmd builds the full command tree. Running the root command with
// no subcommand renders the prompt, matching how Starship invokes it.
func NewRootCmd() *cobra.Command {
	rootCmd := cli.NewStandardCommand("jjprompt", "Jujutsu and Git status for your shell prompt")
	rootCmd.Long = `jjprompt renders a one-line status segment for the repository that
contains the working directory. Jujutsu repositories (colocated or not)
show the working-copy change; plain Git repositories show HEAD.

Outside a repository, or when anything goes wrong, it prints nothing and
exits zero so the surrounding prompt stays intact.

Examples:
  # Render the segment for the current directory
  jjprompt

  # Render for another directory, without color
  jjprompt --cwd ~/src/project --no-color

  # Wire it into Starship
  jjprompt starship install`
	rootCmd.Args = cobra.NoArgs
	rootCmd.Version = version.GetInfo().Version
	rootCmd.SetVersionTemplate("jjprompt {{.Version}}\n")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if cli.GetOptions(cmd).Verbose {
			logging.SetVerbose(true)
		}
	}
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runPrompt(cmd)
	}

	pf := rootCmd.PersistentFlags()
	pf.String("cwd", "", "Resolve the repository from this directory instead of the working directory")
	pf.Int("truncate-name", 0, "Maximum name length before truncation (0 = unlimited)")
	pf.Int("id-length", config.DefaultIDLength, "Displayed length of the change id / commit hash")
	pf.Int("ancestor-bookmark-depth", config.DefaultAncestorDepth, "How many ancestors to search for a fallback bookmark (0 = disabled)")
	pf.Int("bookmarks-display-limit", config.DefaultBookmarksLimit, "Maximum bookmarks shown before eliding (0 = unlimited)")
	pf.String("strip-bookmark-prefix", "", "Comma-separated prefixes stripped from names (first match wins)")
	pf.String("jj-symbol", config.DefaultJJSymbol, "Symbol shown before Jujutsu status")
	pf.String("git-symbol", config.DefaultGitSymbol, "Symbol shown before Git status")
	pf.Bool("no-symbol", false, "Drop the symbol from the prefix")
	pf.Bool("no-color", false, "Disable all styling")
	pf.Bool("no-prefix-color", false, "Disable two-tone change id rendering")
	pf.Bool("no-jj-prefix", false, "Hide the symbol and \"on\" for Jujutsu repositories")
	pf.Bool("no-jj-name", false, "Hide bookmark names for Jujutsu repositories")
	pf.Bool("no-jj-id", false, "Hide the change id for Jujutsu repositories")
	pf.Bool("no-jj-status", false, "Hide the status summary for Jujutsu repositories")
	pf.Bool("no-git-prefix", false, "Hide the symbol and \"on\" for Git repositories")
	pf.Bool("no-git-name", false, "Hide the branch name for Git repositories")
	pf.Bool("no-git-id", false, "Hide the commit hash for Git repositories")
	pf.Bool("no-git-status", false, "Hide the status summary for Git repositories")

	rootCmd.AddCommand(
		NewPromptCmd(),
		NewDetectCmd(),
		NewConfigCmd(),
		NewVersionCmd(),
		starship.NewCommand(),
	)

	cli.ApplyStyledHelpRecursive(rootCmd)
	return rootCmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if goerrors.Is(err, errNotInRepo) {
			// detect signals "no repository" through the exit code alone.
			return 1
		}
		handler := cli.NewErrorHandler(hasVerboseFlag(os.Args[1:]))
		handler.Handle(err)
		return 1
	}
	return 0
}

// hasVerboseFlag scans raw arguments so error reporting can honor
// --verbose even when parsing failed before cobra recorded the flag.
func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}
		if arg == "--verbose" || arg == "-v" {
			return true
		}
	}
	return false
}

// buildOverrides translates the parsed flag set into resolution
// overrides. Value flags only participate when the user actually set
// them, so file-layer values survive untouched defaults.
func buildOverrides(cmd *cobra.Command) *config.Overrides {
	flags := cmd.Flags()
	o := &config.Overrides{}

	if opts := cli.GetOptions(cmd); opts.ConfigFile != "" {
		o.ConfigFile = &opts.ConfigFile
	}

	if flags.Changed("truncate-name") {
		v, _ := flags.GetInt("truncate-name")
		o.TruncateName = &v
	}
	if flags.Changed("id-length") {
		v, _ := flags.GetInt("id-length")
		o.IDLength = &v
	}
	if flags.Changed("ancestor-bookmark-depth") {
		v, _ := flags.GetInt("ancestor-bookmark-depth")
		o.AncestorDepth = &v
	}
	if flags.Changed("bookmarks-display-limit") {
		v, _ := flags.GetInt("bookmarks-display-limit")
		o.BookmarksLimit = &v
	}
	if flags.Changed("strip-bookmark-prefix") {
		v, _ := flags.GetString("strip-bookmark-prefix")
		o.StripPrefixes = &v
	}
	if flags.Changed("jj-symbol") {
		v, _ := flags.GetString("jj-symbol")
		o.JJSymbol = &v
	}
	if flags.Changed("git-symbol") {
		v, _ := flags.GetString("git-symbol")
		o.GitSymbol = &v
	}

	o.NoSymbol, _ = flags.GetBool("no-symbol")
	o.NoColor, _ = flags.GetBool("no-color")
	o.NoPrefixColor, _ = flags.GetBool("no-prefix-color")
	o.NoJJPrefix, _ = flags.GetBool("no-jj-prefix")
	o.NoJJName, _ = flags.GetBool("no-jj-name")
	o.NoJJID, _ = flags.GetBool("no-jj-id")
	o.NoJJStatus, _ = flags.GetBool("no-jj-status")
	o.NoGitPrefix, _ = flags.GetBool("no-git-prefix")
	o.NoGitName, _ = flags.GetBool("no-git-name")
	o.NoGitID, _ = flags.GetBool("no-git-id")
	o.NoGitStatus, _ = flags.GetBool("no-git-status")

	return o
}

// workingDir returns the directory to resolve the repository from: the
// --cwd flag when given, else the process working directory.
func workingDir(cmd *cobra.Command) (string, error) {
	if cwd, _ := cmd.Flags().GetString("cwd"); cwd != "" {
		return cwd, nil
	}
	return os.Getwd()
}
