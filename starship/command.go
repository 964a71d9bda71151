// Package starship wires jjprompt into the Starship prompt by editing
// the user's starship.toml. The file is parsed with go-toml for
// inspection only; edits are applied as targeted string operations so
// the user's formatting and comments survive.
package starship

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/grovetools/jjprompt/errors"
)

const (
	moduleHeader  = "[custom.jj]"
	moduleCommand = "jjprompt prompt"
	markerComment = "# Added by 'jjprompt starship install'"
	moduleRef     = "${custom.jj}"
)

// Anchors tried in order when inserting the module into an explicit
// format string.
var formatAnchors = []string{"$git_status", "$git_branch", "$directory"}

// NewCommand creates the starship command group.
func NewCommand() *cobra.Command {
	starshipCmd := &cobra.Command{
		Use:   "starship",
		Short: "Manage Starship prompt integration",
		Long:  `Wires jjprompt into the Starship prompt via a [custom.jj] module.`,
	}

	var printOnly bool
	var configPath string

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Add the jjprompt module to your starship.toml",
		Long: `Adds a [custom.jj] module to your starship.toml so the prompt shows
jj and git status rendered by jjprompt. An existing module with a
different command is left alone. When your config declares an explicit
format string the module reference is inserted after a common anchor;
without one Starship's default format already renders custom modules.

Examples:
  # Edit ~/.config/starship.toml in place
  jjprompt starship install

  # Show the snippet without touching anything
  jjprompt starship install --print`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if printOnly {
				fmt.Fprint(cmd.OutOrStdout(), ModuleSnippet())
				return nil
			}
			path := configPath
			if path == "" {
				var err error
				path, err = DefaultConfigPath()
				if err != nil {
					return err
				}
			}
			return Install(path, cmd.OutOrStdout())
		},
	}
	installCmd.Flags().BoolVar(&printOnly, "print", false, "Print the module snippet instead of editing starship.toml")
	installCmd.Flags().StringVar(&configPath, "config", "", "Path to starship.toml (default: ~/.config/starship.toml)")

	starshipCmd.AddCommand(installCmd)
	return starshipCmd
}

// ModuleSnippet returns the [custom.jj] block added to starship.toml.
func ModuleSnippet() string {
	return fmt.Sprintf(`
%s
%s
description = "jj/git repository status"
command = "%s"
when = "jjprompt detect"
format = "$output "
shell = ["sh"]
`, markerComment, moduleHeader, moduleCommand)
}

// DefaultConfigPath resolves the starship.toml location, honoring the
// STARSHIP_CONFIG override the way starship itself does.
func DefaultConfigPath() (string, error) {
	if path := os.Getenv("STARSHIP_CONFIG"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeStarshipConfig, "could not resolve home directory")
	}
	return filepath.Join(home, ".config", "starship.toml"), nil
}

// starshipConfig is the slice of starship.toml this tool inspects.
// Everything else passes through untouched.
type starshipConfig struct {
	Format string `toml:"format"`
	Custom map[string]struct {
		Command string `toml:"command"`
	} `toml:"custom"`
}

// Install adds the [custom.jj] module to the config file at path,
// creating the file when absent. Progress is reported on out.
func Install(path string, out io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return errors.StarshipConfigFailed(path, err)
	}
	content := string(raw)

	var cfg starshipConfig
	if err := toml.Unmarshal(raw, &cfg); err != nil {
		// Refuse to string-edit a file that does not parse.
		return errors.StarshipConfigFailed(path, err)
	}

	existing, present := cfg.Custom["jj"]
	switch {
	case present && existing.Command != moduleCommand:
		fmt.Fprintln(out, "! [custom.jj] already exists with a different command; keeping it.")
	case present:
		content = replaceOwnModule(content)
		fmt.Fprintln(out, "✓ Refreshed the [custom.jj] module.")
	default:
		content = ensureTrailingNewline(content) + ModuleSnippet()
		fmt.Fprintln(out, "✓ Added the [custom.jj] module.")
	}

	content = ensureInFormat(content, cfg.Format, out)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.StarshipConfigFailed(path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.StarshipConfigFailed(path, err)
	}

	fmt.Fprintf(out, "Updated %s. Restart your shell to see the changes.\n", path)
	return nil
}

// replaceOwnModule swaps the existing [custom.jj] section for the
// current snippet, consuming the marker comment above it if present.
func replaceOwnModule(content string) string {
	headerStart := strings.Index(content, moduleHeader)
	if headerStart == -1 {
		return ensureTrailingNewline(content) + ModuleSnippet()
	}

	before := strings.TrimSuffix(content[:headerStart], markerComment+"\n")
	before = strings.TrimRight(before, "\n")
	if before != "" {
		before += "\n"
	}

	// The section runs until the next table header or EOF.
	end := len(content)
	if idx := strings.Index(content[headerStart+1:], "\n["); idx != -1 {
		end = headerStart + 1 + idx
	}

	return before + ModuleSnippet() + content[end:]
}

// ensureInFormat inserts the module reference into an explicit format
// string. No format key means starship's default layout applies, which
// already renders custom modules.
func ensureInFormat(content, format string, out io.Writer) string {
	if format == "" {
		return content
	}
	if strings.Contains(format, "$custom") {
		fmt.Fprintln(out, "✓ Format already renders custom modules.")
		return content
	}
	for _, anchor := range formatAnchors {
		if strings.Contains(format, anchor) {
			fmt.Fprintf(out, "✓ Inserted %s after %s in the prompt format.\n", moduleRef, anchor)
			return strings.Replace(content, anchor, anchor+moduleRef, 1)
		}
	}
	fmt.Fprintf(out, "! Could not find a place for %s in your format string; add it manually.\n", moduleRef)
	return content
}

func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
