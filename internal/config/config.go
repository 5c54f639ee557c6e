// Package config provides configuration data structures for lazymvn.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/wexinc/lazymvn/internal/logging"
	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/registry"
)

// Config represents the complete lazymvn configuration loaded from .lazymvn.yaml.
type Config struct {
	Document DocumentConfig `yaml:"document" json:"document"`
	Registry RegistryConfig `yaml:"registry" json:"registry"`
	UI       UIConfig       `yaml:"ui"       json:"ui"`
	Log      LogConfig      `yaml:"log"      json:"log"`
}

// DocumentConfig configures how the pom is located and written.
type DocumentConfig struct {
	// Path is the pom to edit. Empty means search upward from the working directory.
	Path string `yaml:"path" json:"path"`
	// Match selects the identity rule used when writing the list back (default: coordinates).
	Match pom.MatchMode `yaml:"match" json:"match"`
	// Backup keeps the previous content at <pom>.old after each save (default: true).
	Backup bool `yaml:"backup" json:"backup"`
	// SaveOnExit writes pending edits when the session ends (default: false).
	SaveOnExit bool `yaml:"save_on_exit" json:"save_on_exit"`
}

// RegistryConfig configures the Maven search endpoint.
type RegistryConfig struct {
	// BaseURL is the solr search service (default: https://search.maven.org).
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Rows bounds the number of results per query (default: 20).
	Rows int `yaml:"rows" json:"rows"`
	// Timeout bounds each search or version lookup (default: 10s).
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
	// UserAgent is sent with every request (default: lazymvn).
	UserAgent string `yaml:"user_agent" json:"user_agent"`
}

// UIConfig configures the terminal interface.
type UIConfig struct {
	// NoColor renders without ANSI colors.
	NoColor bool `yaml:"no_color" json:"no_color"`
	// ShowHelp shows the key binding footer (default: true).
	ShowHelp bool `yaml:"show_help" json:"show_help"`
}

// LogConfig configures the session log file.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default: info).
	Level string `yaml:"level" json:"level"`
	// Dir is where log files are written. Empty means the user cache directory.
	Dir string `yaml:"dir" json:"dir"`
	// MaxFiles is how many log files are kept (default: 10).
	MaxFiles int `yaml:"max_files" json:"max_files"`
	// JSON writes structured JSON lines instead of text.
	JSON bool `yaml:"json" json:"json"`
}

// Default values.
const (
	DefaultRegistryTimeout = 10 * time.Second
	DefaultLogLevel        = "info"
	DefaultMaxLogFiles     = 10
	MaxRows                = 200
)

// NewConfig returns a new Config with default values applied.
func NewConfig() *Config {
	return &Config{
		Document: DocumentConfig{
			Path:       "",
			Match:      pom.MatchCoordinates,
			Backup:     true,
			SaveOnExit: false,
		},
		Registry: RegistryConfig{
			BaseURL:   registry.DefaultBaseURL,
			Rows:      registry.DefaultRows,
			Timeout:   DefaultRegistryTimeout,
			UserAgent: registry.DefaultUserAgent,
		},
		UI: UIConfig{
			NoColor:  false,
			ShowHelp: true,
		},
		Log: LogConfig{
			Level:    DefaultLogLevel,
			Dir:      "",
			MaxFiles: DefaultMaxLogFiles,
			JSON:     false,
		},
	}
}

// ApplyDefaults applies default values to any unset fields.
// This is used after loading config from file to fill in missing values.
func (c *Config) ApplyDefaults() {
	defaults := NewConfig()

	if c.Document.Match == "" {
		c.Document.Match = defaults.Document.Match
	}

	if c.Registry.BaseURL == "" {
		c.Registry.BaseURL = defaults.Registry.BaseURL
	}
	if c.Registry.Rows == 0 {
		c.Registry.Rows = defaults.Registry.Rows
	}
	if c.Registry.Timeout == 0 {
		c.Registry.Timeout = defaults.Registry.Timeout
	}
	if c.Registry.UserAgent == "" {
		c.Registry.UserAgent = defaults.Registry.UserAgent
	}

	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.MaxFiles == 0 {
		c.Log.MaxFiles = defaults.Log.MaxFiles
	}
	// Note: booleans can't distinguish "unset" from false. The loader decodes
	// the file on top of NewConfig so defaults survive for absent keys.
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	msg := "multiple validation errors:"
	for _, err := range e {
		msg += "\n  - " + err.Error()
	}
	return msg
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.Document.Match != "" && !c.Document.Match.IsValid() {
		errs = append(errs, &ValidationError{
			Field:   "document.match",
			Message: fmt.Sprintf("must be '%s' or '%s'", pom.MatchCoordinates, pom.MatchGroup),
		})
	}

	if c.Registry.BaseURL != "" {
		u, err := url.Parse(c.Registry.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, &ValidationError{
				Field:   "registry.base_url",
				Message: "must be an absolute http or https URL",
			})
		}
	}
	if c.Registry.Rows < 0 || c.Registry.Rows > MaxRows {
		errs = append(errs, &ValidationError{
			Field:   "registry.rows",
			Message: fmt.Sprintf("must be between 1 and %d", MaxRows),
		})
	}
	if c.Registry.Timeout < 0 {
		errs = append(errs, &ValidationError{Field: "registry.timeout", Message: "must be non-negative"})
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, &ValidationError{
			Field:   "log.level",
			Message: "must be 'debug', 'info', 'warn', or 'error'",
		})
	}
	if c.Log.MaxFiles < 0 {
		errs = append(errs, &ValidationError{Field: "log.max_files", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoggingConfig converts the log section into a logging.Config.
func (c *Config) LoggingConfig() *logging.Config {
	lc := logging.DefaultConfig()
	if level, err := logging.ParseLevel(c.Log.Level); err == nil {
		lc.Level = level
	}
	if c.Log.Dir != "" {
		lc.LogDir = c.Log.Dir
	}
	if c.Log.MaxFiles > 0 {
		lc.MaxLogFiles = c.Log.MaxFiles
	}
	lc.JSONFormat = c.Log.JSON
	return lc
}
