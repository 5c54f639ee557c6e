// Package config provides configuration loading and management for lazymvn.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	errs "github.com/wexinc/lazymvn/internal/errors"
	"github.com/wexinc/lazymvn/internal/pom"
)

const (
	// DefaultConfigPath is the default path to the config file relative to the working directory.
	DefaultConfigPath = ".lazymvn.yaml"

	// EnvPrefix is the prefix for environment variable overrides.
	EnvPrefix = "LAZYMVN"
)

// Loader handles loading configuration from files and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	// Set up viper
	v.SetConfigType("yaml")

	// Set up environment variable support
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return &Loader{v: v}
}

// LoadConfig loads configuration from the specified path, applies defaults,
// merges environment variables, and validates the result.
// If path is empty, it uses DefaultConfigPath relative to the working directory.
func (l *Loader) LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	// Check if the config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, &LoadError{
			Path:    path,
			Message: "config file not found",
			Err:     err,
		}
	}

	// Set the config file path
	l.v.SetConfigFile(path)

	// Read the config file
	if err := l.v.ReadInConfig(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to read config file",
			Err:     err,
		}
	}

	// Start with defaults so absent keys keep them
	cfg := NewConfig()

	// Unmarshal into the config struct
	if err := l.v.Unmarshal(cfg, viperDecodeHook); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "failed to parse config file",
			Err:     err,
		}
	}

	return l.finish(cfg, path)
}

// LoadConfigOrDefault behaves like LoadConfig but falls back to defaults
// (plus environment overrides) when the file does not exist.
func (l *Loader) LoadConfigOrDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return l.finish(NewConfig(), path)
	}
	return l.LoadConfig(path)
}

func (l *Loader) finish(cfg *Config, path string) (*Config, error) {
	// Apply environment variable overrides
	l.applyEnvOverrides(cfg)

	// Apply defaults for any unset values
	cfg.ApplyDefaults()

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{
			Path:    path,
			Message: "configuration validation failed",
			Err:     err,
		}
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func (l *Loader) applyEnvOverrides(cfg *Config) {
	// Document settings
	if v := os.Getenv(EnvPrefix + "_DOCUMENT_PATH"); v != "" {
		cfg.Document.Path = v
	}
	if v := os.Getenv(EnvPrefix + "_DOCUMENT_MATCH"); v != "" {
		cfg.Document.Match = pom.MatchMode(v)
	}
	if v := os.Getenv(EnvPrefix + "_DOCUMENT_BACKUP"); v != "" {
		cfg.Document.Backup = parseBool(v)
	}
	if v := os.Getenv(EnvPrefix + "_DOCUMENT_SAVE_ON_EXIT"); v != "" {
		cfg.Document.SaveOnExit = parseBool(v)
	}

	// Registry settings
	if v := os.Getenv(EnvPrefix + "_REGISTRY_BASE_URL"); v != "" {
		cfg.Registry.BaseURL = v
	}
	if v := os.Getenv(EnvPrefix + "_REGISTRY_ROWS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Registry.Rows = n
		}
	}
	if v := os.Getenv(EnvPrefix + "_REGISTRY_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Registry.Timeout = d
		}
	}
	if v := os.Getenv(EnvPrefix + "_REGISTRY_USER_AGENT"); v != "" {
		cfg.Registry.UserAgent = v
	}

	// UI settings. NO_COLOR is the cross-tool convention (https://no-color.org).
	if v := os.Getenv(EnvPrefix + "_UI_NO_COLOR"); v != "" {
		cfg.UI.NoColor = parseBool(v)
	} else if os.Getenv("NO_COLOR") != "" {
		cfg.UI.NoColor = true
	}

	// Log settings
	if v := os.Getenv(EnvPrefix + "_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "_LOG_DIR"); v != "" {
		cfg.Log.Dir = v
	}
}

// parseBool parses a string as a boolean value.
// Returns true for "true", "1", "yes" (case-insensitive).
// Returns false for anything else.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// viperDecodeHook provides custom decoding for viper unmarshaling.
// Keys are matched against the yaml tags so the file and Save agree on names.
func viperDecodeHook(dc *mapstructure.DecoderConfig) {
	dc.TagName = "yaml"
	dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToCustomTypeHookFunc(),
	)
}

// stringToCustomTypeHookFunc creates a decode hook for our custom types.
func stringToCustomTypeHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}

		switch to {
		case reflect.TypeOf(pom.MatchMode("")):
			return pom.MatchMode(strings.ToLower(data.(string))), nil
		}

		return data, nil
	}
}

// Save writes cfg as YAML to path, creating parent directories.
// If path is empty, it uses DefaultConfigPath.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// LoadError represents an error that occurred while loading configuration.
type LoadError struct {
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports every load failure as a configuration error.
func (e *LoadError) Is(target error) bool {
	return target == errs.ErrConfig
}

// Load is a convenience function that creates a new Loader and loads configuration.
// If path is empty, it uses DefaultConfigPath.
func Load(path string) (*Config, error) {
	return NewLoader().LoadConfig(path)
}

// LoadOrDefault is a convenience function for LoadConfigOrDefault.
func LoadOrDefault(path string) (*Config, error) {
	return NewLoader().LoadConfigOrDefault(path)
}
