package errors

import (
	"fmt"
	"os/exec"
)

// RepoNotFound creates an error for a path outside any repository
func RepoNotFound(path string) *PromptError {
	return New(ErrCodeRepoNotFound, fmt.Sprintf("no jj or git repository found at or above: %s", path)).
		WithDetail("path", path)
}

// ConfigNotFound creates a configuration not found error
func ConfigNotFound(path string) *PromptError {
	return New(ErrCodeConfigNotFound, fmt.Sprintf("configuration file not found: %s", path)).
		WithDetail("path", path)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *PromptError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// JJCollectFailed creates an error for a failed jj status query
func JJCollectFailed(op string, err error) *PromptError {
	return Wrap(err, ErrCodeJJCollect, fmt.Sprintf("jj %s failed", op)).
		WithDetail("operation", op)
}

// GitCollectFailed creates an error for a failed git status read
func GitCollectFailed(op string, err error) *PromptError {
	return Wrap(err, ErrCodeGitCollect, fmt.Sprintf("git %s failed", op)).
		WithDetail("operation", op)
}

// CommandFailed creates a command execution failure error
func CommandFailed(cmd string, err error) *PromptError {
	promptErr := Wrap(err, ErrCodeCommandFailed, fmt.Sprintf("command failed: %s", cmd)).
		WithDetail("command", cmd)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		promptErr = promptErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return promptErr
}

// CommandNotFound creates an error for a missing executable
func CommandNotFound(name string) *PromptError {
	return New(ErrCodeCommandNotFound, fmt.Sprintf("executable '%s' not found in PATH", name)).
		WithDetail("command", name)
}

// StarshipConfigFailed creates an error for a starship.toml edit that could not be applied
func StarshipConfigFailed(path string, err error) *PromptError {
	return Wrap(err, ErrCodeStarshipConfig, fmt.Sprintf("could not update starship config: %s", path)).
		WithDetail("path", path)
}
