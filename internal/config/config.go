// Package config loads meshidx configuration from defaults, YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

// DefaultOutputPath is where generators write when no path is configured.
const DefaultOutputPath = "indices.txt"

// Project config file names, in lookup order.
const (
	ProjectConfigYAML = ".meshidx.yaml"
	ProjectConfigYML  = ".meshidx.yml"
)

// Config represents the complete meshidx configuration.
type Config struct {
	Version int           `yaml:"version" json:"version"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// OutputConfig configures how index files are written.
type OutputConfig struct {
	// Path is the default destination for single-topology runs.
	Path string `yaml:"path" json:"path"`
	// Atomic replaces the destination by rename instead of truncating it.
	Atomic bool `yaml:"atomic" json:"atomic"`
	// Lock holds <path>.lock while writing.
	Lock bool `yaml:"lock" json:"lock"`
	// Perm is the octal file mode, e.g. "0644".
	Perm string `yaml:"perm" json:"perm"`
}

// LoggingConfig configures the stderr logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Output: OutputConfig{
			Path:   DefaultOutputPath,
			Atomic: true,
			Lock:   true,
			Perm:   "0644",
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// GetUserConfigPath returns the path to the user/global configuration file.
// It follows the XDG Base Directory specification:
//   - $XDG_CONFIG_HOME/meshidx/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/meshidx/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "meshidx", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "meshidx", "config.yaml")
	}
	return filepath.Join(home, ".config", "meshidx", "config.yaml")
}

// Load loads configuration for the given directory.
// It applies configuration in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User/global config (~/.config/meshidx/config.yaml)
//  3. Project config (.meshidx.yaml in dir)
//  4. Environment variables (MESHIDX_*)
//
// CLI flags are applied by the caller on top of the returned Config.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	if path := GetUserConfigPath(); fileExists(path) {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	if path := ProjectConfigPath(dir); path != "" {
		if err := cfg.loadYAML(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ProjectConfigPath returns the project config file in dir, or "" if none.
// .yaml takes precedence over .yml.
func ProjectConfigPath(dir string) string {
	for _, name := range []string{ProjectConfigYAML, ProjectConfigYML} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// loadYAML decodes path over the current values. Keys missing from the
// file keep their current value, so explicit false and zero are honored.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return meshErrors.New(meshErrors.ErrCodeConfigParse,
			fmt.Sprintf("failed to read config file %s", path), err).
			WithDetail("path", path)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return meshErrors.New(meshErrors.ErrCodeConfigParse,
			fmt.Sprintf("failed to parse config file %s: %v", path, err), err).
			WithDetail("path", path)
	}
	return nil
}

// applyEnvOverrides applies MESHIDX_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MESHIDX_OUTPUT"); v != "" {
		c.Output.Path = v
	}
	if v := os.Getenv("MESHIDX_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MESHIDX_ATOMIC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Output.Atomic = b
		}
	}
	if v := os.Getenv("MESHIDX_LOCK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Output.Lock = b
		}
	}
}

// FileMode parses Output.Perm.
func (c *Config) FileMode() (os.FileMode, error) {
	perm, err := strconv.ParseUint(strings.TrimSpace(c.Output.Perm), 8, 32)
	if err != nil {
		return 0, fmt.Errorf("output.perm must be an octal mode like 0644, got %q", c.Output.Perm)
	}
	if perm > 0o777 {
		return 0, fmt.Errorf("output.perm out of range: %q", c.Output.Perm)
	}
	return os.FileMode(perm), nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Path) == "" {
		return meshErrors.ConfigError("output.path must not be empty", nil)
	}

	if _, err := c.FileMode(); err != nil {
		return meshErrors.ConfigError(err.Error(), err)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return meshErrors.ConfigError(
			fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level), nil)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return meshErrors.IOFailure(path, err)
	}

	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
