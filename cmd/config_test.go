package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jjprompt/errors"
)

func TestConfigCommand(t *testing.T) {
	t.Run("DefaultsOnly", func(t *testing.T) {
		isolateConfig(t)

		out, err := execute(t, "config")
		require.NoError(t, err)

		assert.Contains(t, out, "--- # DEFAULTS")
		assert.Contains(t, out, "# Source: built-in")
		assert.Contains(t, out, "# Source: none found")
		assert.Contains(t, out, "--- # FLAG OVERRIDES")
		assert.Contains(t, out, "--- # FINAL")
		assert.Contains(t, out, "id_length: 8")
	})

	t.Run("FileLayerShown", func(t *testing.T) {
		isolateConfig(t)
		cfgPath := filepath.Join(t.TempDir(), "jjprompt.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("id_length: 4\n"), 0o644))

		out, err := execute(t, "config", "--config-file", cfgPath)
		require.NoError(t, err)

		assert.Contains(t, out, "--- # CONFIG FILE")
		assert.Contains(t, out, "# Source: "+cfgPath)
		assert.Contains(t, out, "id_length: 4")
	})

	t.Run("FlagLayerShowsOnlyWhatWasPassed", func(t *testing.T) {
		isolateConfig(t)

		out, err := execute(t, "config", "--no-color", "--id-length", "10")
		require.NoError(t, err)

		assert.Contains(t, out, "no_color: true")
		assert.Contains(t, out, "id_length: 10")
		// Switches that were not passed stay out of the overrides layer.
		assert.NotContains(t, out, "no_symbol")
	})

	t.Run("DiscoveredFromXDGDir", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", xdg)
		t.Setenv("JJPROMPT_CONFIG", "")
		require.NoError(t, os.MkdirAll(filepath.Join(xdg, "jjprompt"), 0o755))
		cfgPath := filepath.Join(xdg, "jjprompt", "jjprompt.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("jj_symbol: \"J \"\n"), 0o644))

		out, err := execute(t, "config")
		require.NoError(t, err)

		assert.Contains(t, out, "# Source: "+cfgPath)
		assert.Contains(t, out, "jj_symbol: 'J '")
	})

	t.Run("BrokenExplicitFileIsReported", func(t *testing.T) {
		isolateConfig(t)
		cfgPath := filepath.Join(t.TempDir(), "jjprompt.yml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("{{ not yaml"), 0o644))

		_, err := execute(t, "config", "--config-file", cfgPath)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
	})

	t.Run("MissingExplicitFileIsReported", func(t *testing.T) {
		isolateConfig(t)

		_, err := execute(t, "config", "--config-file", "/nope/jjprompt.yml")
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeConfigNotFound, errors.GetCode(err))
	})
}
