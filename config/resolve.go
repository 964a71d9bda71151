package config

import (
	"strings"

	"github.com/grovetools/jjprompt/errors"
)

// Resolve builds the run configuration: built-in defaults, then the
// optional user configuration file, then command-line overrides.
// Resolution is total — a missing or broken file degrades to the
// remaining layers, never to an error. The NoSymbol switch is applied
// after every layer so it wins over any explicitly supplied symbol.
func Resolve(overrides *Overrides) *Config {
	cfg := Default()

	if file, _, err := loadFileLayer(overrides); err == nil && file != nil {
		applyFile(cfg, file)
	}

	applyOverrides(cfg, overrides)
	applyInvariants(cfg)
	return cfg
}

// ResolveLayers performs the same resolution as Resolve but records every
// layer along the way, for the config subcommand. Unlike Resolve it
// surfaces file errors: someone inspecting their configuration wants to
// know the file is broken, while the prompt path must never care.
func ResolveLayers(overrides *Overrides) (*Layers, error) {
	layers := &Layers{
		Default: Default(),
		Flags:   overrides,
	}

	cfg := Default()

	file, path, err := loadFileLayer(overrides)
	if err != nil {
		explicit := overrides != nil && overrides.ConfigFile != nil && *overrides.ConfigFile != ""
		if explicit || !errors.Is(err, errors.ErrCodeConfigNotFound) {
			return nil, err
		}
	}
	if file != nil {
		layers.File = file
		layers.FilePath = path
		applyFile(cfg, file)
	}

	applyOverrides(cfg, overrides)
	applyInvariants(cfg)
	layers.Final = cfg
	return layers, nil
}

func loadFileLayer(overrides *Overrides) (*FileConfig, string, error) {
	if overrides != nil && overrides.ConfigFile != nil && *overrides.ConfigFile != "" {
		file, err := Load(*overrides.ConfigFile)
		return file, *overrides.ConfigFile, err
	}

	path, err := FindConfigFile()
	if err != nil {
		return nil, "", err
	}
	file, err := Load(path)
	return file, path, err
}

// applyFile overlays the values a configuration file names onto cfg.
func applyFile(cfg *Config, file *FileConfig) {
	if file.TruncateName != nil {
		cfg.TruncateName = *file.TruncateName
	}
	if file.IDLength != nil {
		cfg.IDLength = *file.IDLength
	}
	if file.AncestorDepth != nil {
		cfg.AncestorDepth = *file.AncestorDepth
	}
	if file.BookmarksLimit != nil {
		cfg.BookmarksLimit = *file.BookmarksLimit
	}
	if len(file.StripPrefixes) > 0 {
		cfg.StripPrefixes = file.StripPrefixes
	}
	if file.JJSymbol != nil {
		cfg.JJSymbol = *file.JJSymbol
	}
	if file.GitSymbol != nil {
		cfg.GitSymbol = *file.GitSymbol
	}
	if file.NoSymbol != nil && *file.NoSymbol {
		cfg.NoSymbol = true
	}
	if file.NoColor != nil && *file.NoColor {
		cfg.JJ.NoColor = true
		cfg.Git.NoColor = true
	}
	if file.NoPrefixColor != nil && *file.NoPrefixColor {
		// Unique-prefix coloring only exists for the change-id backend
		cfg.JJ.NoPrefixColor = true
	}

	applyFileFlags(&cfg.JJ, file.JJ)
	applyFileFlags(&cfg.Git, file.Git)
}

func applyFileFlags(flags *DisplayFlags, file *FileDisplayFlags) {
	if file == nil {
		return
	}
	if file.NoPrefix != nil {
		flags.NoPrefix = *file.NoPrefix
	}
	if file.NoName != nil {
		flags.NoName = *file.NoName
	}
	if file.NoID != nil {
		flags.NoID = *file.NoID
	}
	if file.NoStatus != nil {
		flags.NoStatus = *file.NoStatus
	}
}

// applyOverrides overlays command-line values onto cfg. Boolean flags
// only ever switch features off, so false never un-sets a file value.
func applyOverrides(cfg *Config, o *Overrides) {
	if o == nil {
		return
	}
	if o.TruncateName != nil {
		cfg.TruncateName = *o.TruncateName
	}
	if o.IDLength != nil {
		cfg.IDLength = *o.IDLength
	}
	if o.AncestorDepth != nil {
		cfg.AncestorDepth = *o.AncestorDepth
	}
	if o.BookmarksLimit != nil {
		cfg.BookmarksLimit = *o.BookmarksLimit
	}
	if o.StripPrefixes != nil {
		cfg.StripPrefixes = SplitPrefixList(*o.StripPrefixes)
	}
	if o.JJSymbol != nil {
		cfg.JJSymbol = *o.JJSymbol
	}
	if o.GitSymbol != nil {
		cfg.GitSymbol = *o.GitSymbol
	}
	if o.NoSymbol {
		cfg.NoSymbol = true
	}
	if o.NoColor {
		cfg.JJ.NoColor = true
		cfg.Git.NoColor = true
	}
	if o.NoPrefixColor {
		cfg.JJ.NoPrefixColor = true
	}
	if o.NoJJPrefix {
		cfg.JJ.NoPrefix = true
	}
	if o.NoJJName {
		cfg.JJ.NoName = true
	}
	if o.NoJJID {
		cfg.JJ.NoID = true
	}
	if o.NoJJStatus {
		cfg.JJ.NoStatus = true
	}
	if o.NoGitPrefix {
		cfg.Git.NoPrefix = true
	}
	if o.NoGitName {
		cfg.Git.NoName = true
	}
	if o.NoGitID {
		cfg.Git.NoID = true
	}
	if o.NoGitStatus {
		cfg.Git.NoStatus = true
	}
}

// applyInvariants enforces the cross-field rules after all layers have
// been merged: NoSymbol blanks both symbols regardless of what any layer
// supplied, and the numeric knobs are clamped to their non-negative
// domains.
func applyInvariants(cfg *Config) {
	if cfg.NoSymbol {
		cfg.JJSymbol = ""
		cfg.GitSymbol = ""
	}
	if cfg.TruncateName < 0 {
		cfg.TruncateName = 0
	}
	if cfg.IDLength < 0 {
		cfg.IDLength = 0
	}
	if cfg.AncestorDepth < 0 {
		cfg.AncestorDepth = 0
	}
	if cfg.BookmarksLimit < 0 {
		cfg.BookmarksLimit = 0
	}
}

// SplitPrefixList splits a comma-separated prefix list, trimming
// whitespace and dropping empty entries while preserving order.
func SplitPrefixList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
