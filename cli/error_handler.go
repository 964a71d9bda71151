package cli

import (
	"fmt"
	"os"

	"github.com/grovetools/jjprompt/errors"
)

// ErrorHandler turns structured errors into actionable messages for
// the interactive subcommands. The prompt path never goes through it.
type ErrorHandler struct {
	Verbose bool
}

// NewErrorHandler creates a new error handler.
func NewErrorHandler(verbose bool) *ErrorHandler {
	return &ErrorHandler{Verbose: verbose}
}

// Handle writes a user-friendly message for err to stderr and returns
// the error unchanged for exit-code purposes.
func (h *ErrorHandler) Handle(err error) error {
	switch errors.GetCode(err) {
	case errors.ErrCodeConfigNotFound:
		if promptErr, ok := err.(*errors.PromptError); ok {
			fmt.Fprintf(os.Stderr, "Configuration file not found: %v\n", promptErr.Details["path"])
		} else {
			fmt.Fprintln(os.Stderr, "Configuration file not found.")
		}
		fmt.Fprintln(os.Stderr, "Create ~/.config/jjprompt/jjprompt.yml or pass --config-file.")

	case errors.ErrCodeConfigInvalid, errors.ErrCodeConfigValidation:
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)

	case errors.ErrCodeCommandNotFound:
		if promptErr, ok := err.(*errors.PromptError); ok {
			fmt.Fprintf(os.Stderr, "Required executable not found: %v\n", promptErr.Details["command"])
		}
		fmt.Fprintln(os.Stderr, "Install jj (https://jj-vcs.github.io) or check your PATH.")

	case errors.ErrCodeStarshipConfig:
		fmt.Fprintf(os.Stderr, "Could not update starship.toml: %v\n", err)
		fmt.Fprintln(os.Stderr, "Add the [custom.jj] module by hand or rerun with --print.")

	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	if h.Verbose {
		if promptErr, ok := err.(*errors.PromptError); ok {
			fmt.Fprintf(os.Stderr, "\nError details:\n%s\n", promptErr.ToJSON())
		}
	}

	return err
}
