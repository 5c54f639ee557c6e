package config

import (
	"strings"
	"testing"
	"time"

	"github.com/wexinc/lazymvn/internal/logging"
	"github.com/wexinc/lazymvn/internal/pom"
	"github.com/wexinc/lazymvn/internal/registry"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig()

	// Verify default document values
	if cfg.Document.Match != pom.MatchCoordinates {
		t.Errorf("expected Match %q, got %q", pom.MatchCoordinates, cfg.Document.Match)
	}
	if !cfg.Document.Backup {
		t.Error("expected Backup to be true by default")
	}
	if cfg.Document.SaveOnExit {
		t.Error("expected SaveOnExit to be false by default")
	}

	// Verify default registry values
	if cfg.Registry.BaseURL != registry.DefaultBaseURL {
		t.Errorf("expected BaseURL %q, got %q", registry.DefaultBaseURL, cfg.Registry.BaseURL)
	}
	if cfg.Registry.Rows != 20 {
		t.Errorf("expected Rows 20, got %d", cfg.Registry.Rows)
	}
	if cfg.Registry.Timeout != DefaultRegistryTimeout {
		t.Errorf("expected Timeout %v, got %v", DefaultRegistryTimeout, cfg.Registry.Timeout)
	}

	// Verify default ui and log values
	if !cfg.UI.ShowHelp {
		t.Error("expected ShowHelp to be true by default")
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("expected Log.Level %q, got %q", DefaultLogLevel, cfg.Log.Level)
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	// Start with empty config
	cfg := &Config{}

	// Apply defaults
	cfg.ApplyDefaults()

	if cfg.Document.Match != pom.MatchCoordinates {
		t.Errorf("expected Match %q, got %q", pom.MatchCoordinates, cfg.Document.Match)
	}
	if cfg.Registry.BaseURL != registry.DefaultBaseURL {
		t.Errorf("expected BaseURL %q, got %q", registry.DefaultBaseURL, cfg.Registry.BaseURL)
	}
	if cfg.Registry.Rows != registry.DefaultRows {
		t.Errorf("expected Rows %d, got %d", registry.DefaultRows, cfg.Registry.Rows)
	}
	if cfg.Registry.Timeout != DefaultRegistryTimeout {
		t.Errorf("expected Timeout %v, got %v", DefaultRegistryTimeout, cfg.Registry.Timeout)
	}
	if cfg.Registry.UserAgent != registry.DefaultUserAgent {
		t.Errorf("expected UserAgent %q, got %q", registry.DefaultUserAgent, cfg.Registry.UserAgent)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("expected Log.Level %q, got %q", DefaultLogLevel, cfg.Log.Level)
	}
	if cfg.Log.MaxFiles != DefaultMaxLogFiles {
		t.Errorf("expected Log.MaxFiles %d, got %d", DefaultMaxLogFiles, cfg.Log.MaxFiles)
	}
}

func TestConfig_ApplyDefaults_PreservesExistingValues(t *testing.T) {
	cfg := &Config{
		Document: DocumentConfig{Match: pom.MatchGroup},
		Registry: RegistryConfig{
			BaseURL: "https://mirror.example.com",
			Rows:    50,
			Timeout: 3 * time.Second,
		},
		Log: LogConfig{Level: "debug"},
	}

	cfg.ApplyDefaults()

	if cfg.Document.Match != pom.MatchGroup {
		t.Errorf("expected Match %q preserved, got %q", pom.MatchGroup, cfg.Document.Match)
	}
	if cfg.Registry.BaseURL != "https://mirror.example.com" {
		t.Errorf("expected BaseURL preserved, got %q", cfg.Registry.BaseURL)
	}
	if cfg.Registry.Rows != 50 {
		t.Errorf("expected Rows 50 preserved, got %d", cfg.Registry.Rows)
	}
	if cfg.Registry.Timeout != 3*time.Second {
		t.Errorf("expected Timeout 3s preserved, got %v", cfg.Registry.Timeout)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected Log.Level debug preserved, got %q", cfg.Log.Level)
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := NewConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got: %v", err)
	}
}

func TestConfig_Validate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"match", func(c *Config) { c.Document.Match = "artifact" }, "document.match"},
		{"base url scheme", func(c *Config) { c.Registry.BaseURL = "ftp://example.com" }, "registry.base_url"},
		{"base url relative", func(c *Config) { c.Registry.BaseURL = "search.maven.org" }, "registry.base_url"},
		{"rows negative", func(c *Config) { c.Registry.Rows = -1 }, "registry.rows"},
		{"rows too large", func(c *Config) { c.Registry.Rows = MaxRows + 1 }, "registry.rows"},
		{"timeout", func(c *Config) { c.Registry.Timeout = -time.Second }, "registry.timeout"},
		{"log level", func(c *Config) { c.Log.Level = "chatty" }, "log.level"},
		{"max files", func(c *Config) { c.Log.MaxFiles = -1 }, "log.max_files"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			valErrs, ok := err.(ValidationErrors)
			if !ok {
				t.Fatalf("expected ValidationErrors, got %T", err)
			}
			if len(valErrs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(valErrs), err)
			}
			if valErrs[0].Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, valErrs[0].Field)
			}
		})
	}
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := NewConfig()
	cfg.Document.Match = "nope"
	cfg.Registry.Rows = -5

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	valErrs := err.(ValidationErrors)
	if len(valErrs) != 2 {
		t.Errorf("expected 2 errors, got %d", len(valErrs))
	}
	if !strings.HasPrefix(err.Error(), "multiple validation errors:") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "registry.rows", Message: "must be positive"}
	expected := "registry.rows: must be positive"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestValidationErrors_Error(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var errs ValidationErrors
		if errs.Error() != "" {
			t.Errorf("expected empty string, got %q", errs.Error())
		}
	})

	t.Run("single error", func(t *testing.T) {
		errs := ValidationErrors{{Field: "a", Message: "bad"}}
		if errs.Error() != "a: bad" {
			t.Errorf("expected %q, got %q", "a: bad", errs.Error())
		}
	})

	t.Run("multiple errors", func(t *testing.T) {
		errs := ValidationErrors{
			{Field: "a", Message: "bad"},
			{Field: "b", Message: "worse"},
		}
		expected := "multiple validation errors:\n  - a: bad\n  - b: worse"
		if errs.Error() != expected {
			t.Errorf("expected %q, got %q", expected, errs.Error())
		}
	})
}

func TestConfig_LoggingConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.Log.Level = "debug"
	cfg.Log.Dir = "/var/tmp/lazymvn"
	cfg.Log.MaxFiles = 3
	cfg.Log.JSON = true

	lc := cfg.LoggingConfig()

	if lc.Level != logging.LevelDebug {
		t.Errorf("Level = %v, want DEBUG", lc.Level)
	}
	if lc.LogDir != "/var/tmp/lazymvn" {
		t.Errorf("LogDir = %q", lc.LogDir)
	}
	if lc.MaxLogFiles != 3 {
		t.Errorf("MaxLogFiles = %d, want 3", lc.MaxLogFiles)
	}
	if !lc.JSONFormat {
		t.Error("JSONFormat should be true")
	}
	if lc.Console {
		t.Error("Console must stay off")
	}
}

func TestConfig_LoggingConfig_DefaultDir(t *testing.T) {
	lc := NewConfig().LoggingConfig()
	if lc.LogDir != logging.DefaultLogDir() {
		t.Errorf("LogDir = %q, want %q", lc.LogDir, logging.DefaultLogDir())
	}
}
