// Package testutil provides helpers for tests that exercise real git
// and jj repositories. Tests needing a binary call the matching
// Require helper first so environments without it skip instead of
// failing.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireGit skips the test if the git executable is not available.
func RequireGit(t *testing.T) {
	t.Helper()

	if err := exec.Command("git", "version").Run(); err != nil {
		t.Skip("git not available")
	}
}

// RequireJJ skips the test if the jj executable is not available.
func RequireJJ(t *testing.T) {
	t.Helper()

	if err := exec.Command("jj", "--version").Run(); err != nil {
		t.Skip("jj not available")
	}
}

// RunGitCommand runs a git command in dir and fails the test on error.
func RunGitCommand(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), out)
}

// RunJJCommand runs a jj command in dir with a throwaway user identity
// and fails the test on error.
func RunJJCommand(t *testing.T, dir string, args ...string) {
	t.Helper()

	full := append([]string{
		"--config", "user.name=test",
		"--config", "user.email=test@example.com",
	}, args...)
	cmd := exec.Command("jj", full...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "jj %s: %s", strings.Join(args, " "), out)
}

// InitGitRepo initializes a git repository with a test identity and an
// initial commit on a branch named main.
func InitGitRepo(t *testing.T, dir string) {
	t.Helper()

	RunGitCommand(t, dir, "init")
	RunGitCommand(t, dir, "config", "user.name", "Test User")
	RunGitCommand(t, dir, "config", "user.email", "test@example.com")

	WriteFile(t, dir, "README.md", "# Test Project\n")
	RunGitCommand(t, dir, "add", ".")
	RunGitCommand(t, dir, "commit", "-m", "Initial commit")

	// Older gits start on master; normalize.
	cmd := exec.Command("git", "branch", "-m", "main")
	cmd.Dir = dir
	_ = cmd.Run()
}

// InitJJRepo initializes a pure jj repository (git store kept inside
// .jj, no top-level .git marker).
func InitJJRepo(t *testing.T, dir string) {
	t.Helper()

	RunJJCommand(t, dir, "git", "init")
}

// InitColocatedRepo initializes a colocated repository carrying both
// .jj and .git markers at the same root.
func InitColocatedRepo(t *testing.T, dir string) {
	t.Helper()

	RunJJCommand(t, dir, "git", "init", "--colocate")
}

// CreateCommit writes a file and commits it with git.
func CreateCommit(t *testing.T, dir, filename, content string) {
	t.Helper()

	WriteFile(t, dir, filename, content)
	RunGitCommand(t, dir, "add", filename)
	RunGitCommand(t, dir, "commit", "-m", "Add "+filename)
}

// WriteFile writes content to a file under dir, creating parent
// directories as needed.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
