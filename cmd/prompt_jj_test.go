package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jjprompt/config"
	"github.com/grovetools/jjprompt/testutil"
)

func TestPromptJJRepository(t *testing.T) {
	testutil.RequireJJ(t)
	isolateConfig(t)

	dir := t.TempDir()
	testutil.InitJJRepo(t, dir)

	t.Run("FreshWorkingCopy", func(t *testing.T) {
		out, err := execute(t, "--cwd", dir, "--no-color")
		require.NoError(t, err)

		// No bookmark anywhere yet, so the name segment is absent; the
		// empty description shows as the ∅ token.
		require.True(t, strings.HasPrefix(out, config.DefaultJJSymbol+"on "), "got %q", out)
		require.True(t, strings.HasSuffix(out, " [∅]"), "got %q", out)

		id := strings.TrimSuffix(strings.TrimPrefix(out, config.DefaultJJSymbol+"on "), " [∅]")
		assert.Len(t, id, config.DefaultIDLength)
	})

	t.Run("BookmarkedWorkingCopy", func(t *testing.T) {
		testutil.RunJJCommand(t, dir, "bookmark", "create", "main", "-r", "@")

		out, err := execute(t, "--cwd", dir, "--no-color")
		require.NoError(t, err)
		assert.Contains(t, out, "on main ")
	})

	t.Run("DescribedWorkingCopyDropsEmptyToken", func(t *testing.T) {
		testutil.RunJJCommand(t, dir, "describe", "-m", "work in progress")

		out, err := execute(t, "--cwd", dir, "--no-color")
		require.NoError(t, err)
		assert.NotContains(t, out, "∅")
	})
}

func TestPromptColocatedRepositoryUsesJJ(t *testing.T) {
	testutil.RequireJJ(t)
	isolateConfig(t)

	dir := t.TempDir()
	testutil.InitColocatedRepo(t, dir)

	out, err := execute(t, "--cwd", dir, "--no-color")
	require.NoError(t, err)

	// Both markers are present but the jj side wins.
	assert.True(t, strings.HasPrefix(out, config.DefaultJJSymbol+"on "), "got %q", out)
}

func TestDetectJJRepository(t *testing.T) {
	testutil.RequireJJ(t)

	dir := t.TempDir()
	testutil.InitJJRepo(t, dir)

	_, err := execute(t, "detect", "--cwd", dir)
	require.NoError(t, err)
}
