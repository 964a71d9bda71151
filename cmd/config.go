package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/grovetools/jjprompt/config"
	"github.com/grovetools/jjprompt/errors"
)

// NewConfigCmd shows how the effective configuration was assembled:
// each layer as YAML, then the merged result. Unlike the prompt path,
// a broken config file is reported here instead of being ignored.
func NewConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration layers and the final merged values",
		Long: `Show every configuration layer as YAML: the built-in defaults, the
config file (if one was found), the command-line overrides, and the
final merged result the prompt actually uses.

The prompt itself silently ignores a broken config file; this command
reports it, since inspecting the configuration is the one time you want
to hear about the problem.

Examples:
  # Inspect the effective configuration
  jjprompt config

  # See how a specific file and flags combine
  jjprompt config --config-file ./jjprompt.yml --no-color`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			layers, err := config.ResolveLayers(buildOverrides(cmd))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if err := printLayer(out, "DEFAULTS", "built-in", layers.Default); err != nil {
				return err
			}
			if layers.File != nil {
				if err := printLayer(out, "CONFIG FILE", layers.FilePath, layers.File); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "--- # CONFIG FILE\n# Source: none found\n\n")
			}
			if err := printLayer(out, "FLAG OVERRIDES", "command line", layers.Flags); err != nil {
				return err
			}
			return printLayer(out, "FINAL", "merged", layers.Final)
		},
	}
	return configCmd
}

// printLayer writes one layer as a YAML document with a title comment,
// so the whole output remains a valid multi-document YAML stream.
func printLayer(out io.Writer, title, source string, layer interface{}) error {
	fmt.Fprintf(out, "--- # %s\n", title)
	if source != "" {
		fmt.Fprintf(out, "# Source: %s\n", source)
	}
	data, err := yaml.Marshal(layer)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, fmt.Sprintf("marshal %s configuration layer", title))
	}
	fmt.Fprintln(out, string(data))
	return nil
}
