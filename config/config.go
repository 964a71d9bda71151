package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/grovetools/jjprompt/errors"
	"gopkg.in/yaml.v3"
)

var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// Load reads and parses a jjprompt configuration file.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigNotFound(path)
		}
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read config file").
			WithDetail("path", path)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes parses configuration from a byte slice, expanding
// ${VAR} and ${VAR:-default} references and validating the result
// against the embedded JSON Schema.
func LoadFromBytes(data []byte) (*FileConfig, error) {
	expanded := expandEnvVars(string(data))

	var file FileConfig
	if err := yaml.Unmarshal([]byte(expanded), &file); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse YAML configuration")
	}

	validator, err := NewSchemaValidator()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to create validator")
	}

	if err := validator.Validate(&file); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeConfigValidation, "schema validation failed")
	}

	return &file, nil
}

// LoadDefault loads the user's configuration file from its default
// location, if present.
func LoadDefault() (*FileConfig, error) {
	path, err := FindConfigFile()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// FindConfigFile returns the first configuration file that exists among
// the supported locations: $JJPROMPT_CONFIG, then jjprompt.yml or
// jjprompt.yaml under the XDG config directory. A prompt helper runs on
// every shell prompt, so discovery deliberately stays a couple of stat
// calls against a single global directory rather than an upward walk.
func FindConfigFile() (string, error) {
	if explicit := os.Getenv("JJPROMPT_CONFIG"); explicit != "" {
		if info, err := os.Stat(explicit); err == nil && !info.IsDir() {
			return explicit, nil
		}
		return "", errors.ConfigNotFound(explicit)
	}

	dir := configDir()
	if dir == "" {
		return "", errors.ConfigNotFound("jjprompt.yml")
	}

	for _, name := range []string{"jjprompt.yml", "jjprompt.yaml"} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}

	return "", errors.ConfigNotFound(filepath.Join(dir, "jjprompt.yml"))
}

// configDir returns the jjprompt configuration directory under XDG rules.
func configDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "jjprompt")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "jjprompt")
	}

	return ""
}

// expandEnvVars replaces ${VAR} with environment variable values
func expandEnvVars(content string) string {
	return envVarRegex.ReplaceAllStringFunc(content, func(match string) string {
		varName := envVarRegex.FindStringSubmatch(match)[1]

		// Handle default values: ${VAR:-default}
		parts := strings.SplitN(varName, ":-", 2)
		varName = parts[0]
		defaultValue := ""
		if len(parts) > 1 {
			defaultValue = parts[1]
		}

		if value := os.Getenv(varName); value != "" {
			return value
		}

		return defaultValue
	})
}
