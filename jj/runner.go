package jj

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/grovetools/jjprompt/errors"
)

// DefaultBinary is the executable name used when none is configured.
const DefaultBinary = "jj"

// Runner executes jj commands and returns their standard output.
// Production code uses ExecRunner; tests substitute canned responses.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
}

// ExecRunner invokes the real jj executable.
type ExecRunner struct {
	// Binary overrides the executable name. Empty means DefaultBinary.
	Binary string
}

// Run executes jj with the given arguments in dir.
func (r ExecRunner) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	binary := r.Binary
	if binary == "" {
		binary = DefaultBinary
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if execErr, ok := err.(*exec.Error); ok && execErr.Err == exec.ErrNotFound {
			return nil, errors.CommandNotFound(binary)
		}
		return nil, errors.CommandFailed(binary+" "+strings.Join(args, " "), err).
			WithDetail("stderr", strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}
