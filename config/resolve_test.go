package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

// isolateConfig points discovery at an empty directory so the host's real
// user configuration never leaks into a test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("JJPROMPT_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0, cfg.TruncateName)
	assert.Equal(t, 8, cfg.IDLength)
	assert.Equal(t, 10, cfg.AncestorDepth)
	assert.Equal(t, 3, cfg.BookmarksLimit)
	assert.Empty(t, cfg.StripPrefixes)
	assert.Equal(t, DefaultJJSymbol, cfg.JJSymbol)
	assert.Equal(t, DefaultGitSymbol, cfg.GitSymbol)
	assert.False(t, cfg.NoSymbol)
	assert.Equal(t, DisplayFlags{}, cfg.JJ)
	assert.Equal(t, DisplayFlags{}, cfg.Git)
}

func TestResolveNilOverrides(t *testing.T) {
	isolateConfig(t)

	cfg := Resolve(nil)
	assert.Equal(t, Default(), cfg)
}

func TestResolveOverrides(t *testing.T) {
	isolateConfig(t)

	cfg := Resolve(&Overrides{
		TruncateName:  intPtr(15),
		IDLength:      intPtr(6),
		StripPrefixes: strPtr("feature/,fix/"),
		JJSymbol:      strPtr("JJ: "),
		NoJJPrefix:    true,
		NoJJStatus:    true,
	})

	assert.Equal(t, 15, cfg.TruncateName)
	assert.Equal(t, 6, cfg.IDLength)
	assert.Equal(t, []string{"feature/", "fix/"}, cfg.StripPrefixes)
	assert.Equal(t, "JJ: ", cfg.JJSymbol)
	assert.True(t, cfg.JJ.NoPrefix)
	assert.True(t, cfg.JJ.NoStatus)
	assert.False(t, cfg.JJ.NoName)
	assert.False(t, cfg.JJ.NoID)
	assert.Equal(t, DisplayFlags{}, cfg.Git)
}

func TestResolveNoSymbolWinsOverExplicitSymbol(t *testing.T) {
	isolateConfig(t)

	cfg := Resolve(&Overrides{
		JJSymbol:  strPtr("CUSTOM"),
		GitSymbol: strPtr("ALSO CUSTOM"),
		NoSymbol:  true,
	})

	assert.Equal(t, "", cfg.JJSymbol, "no_symbol must blank an explicitly supplied jj symbol")
	assert.Equal(t, "", cfg.GitSymbol, "no_symbol must blank an explicitly supplied git symbol")
	assert.True(t, cfg.NoSymbol)
}

func TestResolveNoSymbolFromFileWinsOverFlagSymbol(t *testing.T) {
	// The precedence rule is cross-layer: a file-level no_symbol still
	// blanks a symbol supplied on the command line.
	dir := t.TempDir()
	path := filepath.Join(dir, "jjprompt.yml")
	require.NoError(t, os.WriteFile(path, []byte("no_symbol: true\n"), 0o644))
	t.Setenv("JJPROMPT_CONFIG", path)

	cfg := Resolve(&Overrides{JJSymbol: strPtr("CUSTOM")})

	assert.Equal(t, "", cfg.JJSymbol)
	assert.Equal(t, "", cfg.GitSymbol)
}

func TestResolveNoColorAppliesToBothBackends(t *testing.T) {
	isolateConfig(t)

	cfg := Resolve(&Overrides{NoColor: true})

	assert.True(t, cfg.JJ.NoColor)
	assert.True(t, cfg.Git.NoColor)
}

func TestResolveNoPrefixColorOnlyAffectsJJ(t *testing.T) {
	isolateConfig(t)

	cfg := Resolve(&Overrides{NoPrefixColor: true})

	assert.True(t, cfg.JJ.NoPrefixColor)
	assert.False(t, cfg.Git.NoPrefixColor)
}

func TestResolveFileLayer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jjprompt.yml")
	content := `
truncate_name: 12
id_length: 4
jj_symbol: "F "
jj:
  no_status: true
git:
  no_id: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("JJPROMPT_CONFIG", path)

	cfg := Resolve(nil)

	assert.Equal(t, 12, cfg.TruncateName)
	assert.Equal(t, 4, cfg.IDLength)
	assert.Equal(t, "F ", cfg.JJSymbol)
	assert.Equal(t, DefaultGitSymbol, cfg.GitSymbol, "untouched values keep their defaults")
	assert.True(t, cfg.JJ.NoStatus)
	assert.True(t, cfg.Git.NoID)
}

func TestResolveFlagsBeatFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jjprompt.yml")
	require.NoError(t, os.WriteFile(path, []byte("id_length: 4\ntruncate_name: 12\n"), 0o644))
	t.Setenv("JJPROMPT_CONFIG", path)

	cfg := Resolve(&Overrides{IDLength: intPtr(16)})

	assert.Equal(t, 16, cfg.IDLength, "command line wins over the file")
	assert.Equal(t, 12, cfg.TruncateName, "file still applies where the command line is silent")
}

func TestResolveBrokenFileDegradesToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jjprompt.yml")
	require.NoError(t, os.WriteFile(path, []byte(":\nnot yaml ["), 0o644))
	t.Setenv("JJPROMPT_CONFIG", path)

	cfg := Resolve(nil)
	assert.Equal(t, Default(), cfg, "resolution is total: a broken file never fails the prompt")
}

func TestResolveClampsNegativeValues(t *testing.T) {
	isolateConfig(t)

	cfg := Resolve(&Overrides{
		TruncateName:   intPtr(-1),
		IDLength:       intPtr(-8),
		AncestorDepth:  intPtr(-2),
		BookmarksLimit: intPtr(-3),
	})

	assert.Equal(t, 0, cfg.TruncateName)
	assert.Equal(t, 0, cfg.IDLength)
	assert.Equal(t, 0, cfg.AncestorDepth)
	assert.Equal(t, 0, cfg.BookmarksLimit)
}

func TestResolveLayers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jjprompt.yml")
	require.NoError(t, os.WriteFile(path, []byte("id_length: 4\n"), 0o644))
	t.Setenv("JJPROMPT_CONFIG", path)

	overrides := &Overrides{TruncateName: intPtr(9)}
	layers, err := ResolveLayers(overrides)
	require.NoError(t, err)

	assert.Equal(t, Default(), layers.Default)
	require.NotNil(t, layers.File)
	assert.Equal(t, 4, *layers.File.IDLength)
	assert.Equal(t, path, layers.FilePath)
	assert.Same(t, overrides, layers.Flags)
	assert.Equal(t, 4, layers.Final.IDLength)
	assert.Equal(t, 9, layers.Final.TruncateName)
}

func TestResolveLayersMissingFileIsBenign(t *testing.T) {
	isolateConfig(t)

	layers, err := ResolveLayers(nil)
	require.NoError(t, err)
	assert.Nil(t, layers.File)
	assert.Equal(t, Default(), layers.Final)
}

func TestResolveLayersExplicitMissingFileErrors(t *testing.T) {
	isolateConfig(t)

	missing := filepath.Join(t.TempDir(), "nope.yml")
	_, err := ResolveLayers(&Overrides{ConfigFile: &missing})
	assert.Error(t, err, "an explicitly requested file must exist")
}

func TestSplitPrefixList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single", "feature/", []string{"feature/"}},
		{"multiple", "feature/,fix/", []string{"feature/", "fix/"}},
		{"whitespace trimmed", " feature/ , fix/ ", []string{"feature/", "fix/"}},
		{"empty entries dropped", "feature/,,fix/,", []string{"feature/", "fix/"}},
		{"empty string", "", nil},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitPrefixList(tt.input))
		})
	}
}
