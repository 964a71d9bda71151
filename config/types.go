package config

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

//go:generate go run ../tools/schema-generator/

// Built-in defaults. Symbols carry a trailing space so rendered segments
// stay evenly spaced when the symbol is present.
const (
	DefaultIDLength       = 8
	DefaultAncestorDepth  = 10
	DefaultBookmarksLimit = 3
	DefaultJJSymbol       = "󱗆 "
	DefaultGitSymbol      = " "
)

// DisplayFlags controls segment visibility for one backend. The two
// backends carry independent instances that are never merged.
type DisplayFlags struct {
	NoPrefix      bool `yaml:"no_prefix,omitempty" json:"no_prefix,omitempty"`
	NoName        bool `yaml:"no_name,omitempty" json:"no_name,omitempty"`
	NoID          bool `yaml:"no_id,omitempty" json:"no_id,omitempty"`
	NoStatus      bool `yaml:"no_status,omitempty" json:"no_status,omitempty"`
	NoColor       bool `yaml:"no_color,omitempty" json:"no_color,omitempty"`
	NoPrefixColor bool `yaml:"no_prefix_color,omitempty" json:"no_prefix_color,omitempty"`
}

// Config is the resolved, immutable configuration for a single run.
// Built once from defaults, the optional config file, and command-line
// overrides; read-only thereafter.
type Config struct {
	TruncateName   int          `yaml:"truncate_name" json:"truncate_name"`
	IDLength       int          `yaml:"id_length" json:"id_length"`
	AncestorDepth  int          `yaml:"ancestor_bookmark_depth" json:"ancestor_bookmark_depth"`
	BookmarksLimit int          `yaml:"bookmarks_display_limit" json:"bookmarks_display_limit"`
	StripPrefixes  []string     `yaml:"strip_bookmark_prefixes,omitempty" json:"strip_bookmark_prefixes,omitempty"`
	JJSymbol       string       `yaml:"jj_symbol" json:"jj_symbol"`
	GitSymbol      string       `yaml:"git_symbol" json:"git_symbol"`
	NoSymbol       bool         `yaml:"no_symbol,omitempty" json:"no_symbol,omitempty"`
	JJ             DisplayFlags `yaml:"jj,omitempty" json:"jj,omitempty"`
	Git            DisplayFlags `yaml:"git,omitempty" json:"git,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		IDLength:       DefaultIDLength,
		AncestorDepth:  DefaultAncestorDepth,
		BookmarksLimit: DefaultBookmarksLimit,
		JJSymbol:       DefaultJJSymbol,
		GitSymbol:      DefaultGitSymbol,
	}
}

// FileDisplayFlags is the yaml-facing form of a backend's visibility
// section. Pointer fields distinguish "absent" from an explicit false.
type FileDisplayFlags struct {
	NoPrefix *bool `yaml:"no_prefix,omitempty" json:"no_prefix,omitempty" jsonschema:"description=Hide the symbol and 'on' prefix"`
	NoName   *bool `yaml:"no_name,omitempty" json:"no_name,omitempty" jsonschema:"description=Hide the bookmark/branch name"`
	NoID     *bool `yaml:"no_id,omitempty" json:"no_id,omitempty" jsonschema:"description=Hide the change id / commit hash"`
	NoStatus *bool `yaml:"no_status,omitempty" json:"no_status,omitempty" jsonschema:"description=Hide the bracketed status summary"`
}

// FileConfig mirrors jjprompt.yml. Every display value is optional so
// the file only overrides what it names.
type FileConfig struct {
	TruncateName   *int              `yaml:"truncate_name,omitempty" json:"truncate_name,omitempty" jsonschema:"description=Max length for bookmark/branch names (0 = unlimited)"`
	IDLength       *int              `yaml:"id_length,omitempty" json:"id_length,omitempty" jsonschema:"description=Displayed length of the change id / commit hash"`
	AncestorDepth  *int              `yaml:"ancestor_bookmark_depth,omitempty" json:"ancestor_bookmark_depth,omitempty" jsonschema:"description=Max ancestor depth searched for a fallback bookmark (0 = disabled)"`
	BookmarksLimit *int              `yaml:"bookmarks_display_limit,omitempty" json:"bookmarks_display_limit,omitempty" jsonschema:"description=Max bookmarks shown before eliding (0 = unlimited)"`
	StripPrefixes  []string          `yaml:"strip_bookmark_prefixes,omitempty" json:"strip_bookmark_prefixes,omitempty" jsonschema:"description=Literal prefixes stripped from bookmark names; first match wins"`
	JJSymbol       *string           `yaml:"jj_symbol,omitempty" json:"jj_symbol,omitempty" jsonschema:"description=Symbol shown before jj repository status"`
	GitSymbol      *string           `yaml:"git_symbol,omitempty" json:"git_symbol,omitempty" jsonschema:"description=Symbol shown before git repository status"`
	NoSymbol       *bool             `yaml:"no_symbol,omitempty" json:"no_symbol,omitempty" jsonschema:"description=Disable the symbol prefix entirely (wins over explicit symbols)"`
	NoColor        *bool             `yaml:"no_color,omitempty" json:"no_color,omitempty" jsonschema:"description=Disable output styling"`
	NoPrefixColor  *bool             `yaml:"no_prefix_color,omitempty" json:"no_prefix_color,omitempty" jsonschema:"description=Disable two-tone change id rendering"`
	JJ             *FileDisplayFlags `yaml:"jj,omitempty" json:"jj,omitempty" jsonschema:"description=Per-segment visibility for jj repositories"`
	Git            *FileDisplayFlags `yaml:"git,omitempty" json:"git,omitempty" jsonschema:"description=Per-segment visibility for git repositories"`

	// Extensions captures all other top-level keys (e.g. logging) for
	// on-demand decoding.
	Extensions map[string]interface{} `yaml:",inline" json:"-" jsonschema:"-"`
}

// UnmarshalExtension decodes a specific extension's configuration from the
// loaded jjprompt.yml into the provided target struct. The target must be a
// pointer. This provides a type-safe way for ambient sections to access
// their custom configuration.
//
// Example:
//
//	var logCfg logging.Config
//	err := fileCfg.UnmarshalExtension("logging", &logCfg)
func (f *FileConfig) UnmarshalExtension(key string, target interface{}) error {
	extensionConfig, ok := f.Extensions[key]
	if !ok {
		// It's not an error if the key doesn't exist.
		// The target struct will simply remain zero-valued.
		return nil
	}

	// Use mapstructure to decode the generic map[string]interface{}
	// into the strongly-typed target struct. We configure it to use
	// `yaml` tags for consistency.
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  target,
		TagName: "yaml",
	})
	if err != nil {
		return fmt.Errorf("failed to create mapstructure decoder: %w", err)
	}

	if err := decoder.Decode(extensionConfig); err != nil {
		return fmt.Errorf("failed to decode extension config for '%s': %w", key, err)
	}

	return nil
}

// Overrides carries optional command-line values into resolution.
// Nil pointers mean "not supplied"; plain bools mirror the flag surface,
// where absence and false are the same thing. The yaml tags exist for
// the config subcommand, which prints this layer alongside the others.
type Overrides struct {
	ConfigFile     *string `yaml:"config_file,omitempty"`
	TruncateName   *int    `yaml:"truncate_name,omitempty"`
	IDLength       *int    `yaml:"id_length,omitempty"`
	AncestorDepth  *int    `yaml:"ancestor_bookmark_depth,omitempty"`
	BookmarksLimit *int    `yaml:"bookmarks_display_limit,omitempty"`
	StripPrefixes  *string `yaml:"strip_bookmark_prefix,omitempty"` // comma-separated, as supplied on the command line
	JJSymbol       *string `yaml:"jj_symbol,omitempty"`
	GitSymbol      *string `yaml:"git_symbol,omitempty"`
	NoSymbol       bool    `yaml:"no_symbol,omitempty"`
	NoColor        bool    `yaml:"no_color,omitempty"`
	NoPrefixColor  bool    `yaml:"no_prefix_color,omitempty"`
	NoJJPrefix     bool    `yaml:"no_jj_prefix,omitempty"`
	NoJJName       bool    `yaml:"no_jj_name,omitempty"`
	NoJJID         bool    `yaml:"no_jj_id,omitempty"`
	NoJJStatus     bool    `yaml:"no_jj_status,omitempty"`
	NoGitPrefix    bool    `yaml:"no_git_prefix,omitempty"`
	NoGitName      bool    `yaml:"no_git_name,omitempty"`
	NoGitID        bool    `yaml:"no_git_id,omitempty"`
	NoGitStatus    bool    `yaml:"no_git_status,omitempty"`
}

// Source identifies the origin of a configuration layer.
type Source string

const (
	SourceDefault Source = "default"
	SourceFile    Source = "file"
	SourceFlags   Source = "flags"
	SourceFinal   Source = "final"
)

// Layers holds the per-layer snapshots recorded during resolution, for
// the config subcommand.
type Layers struct {
	Default  *Config
	File     *FileConfig
	FilePath string
	Flags    *Overrides
	Final    *Config
}
