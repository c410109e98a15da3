package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-detailpage/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength    = 4096 // PATH_MAX on Linux
	MaxFontLength    = 100  // "IBM Plex Sans KR"
	MaxNameLength    = 100  // style or template set name
	MaxTimeoutLength = 20   // "1m30s"
	MaxExportWidth   = 4096 // matches the exporter's viewport limit
)

// appDirName is the directory searched under the user config dir.
const appDirName = "go-detailpage"

// Config holds all configuration for page compilation and export.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Font    string        `yaml:"font"` // Font selector (empty = default font)
	Assets  AssetsConfig  `yaml:"assets"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
	Style    string `yaml:"style"`    // Style name, file path, or CSS (empty = default)
	Template string `yaml:"template"` // Template set name (empty = default)
}

// ExportConfig defines PNG export options.
type ExportConfig struct {
	PNG     bool   `yaml:"png"`
	Width   int    `yaml:"width"`   // Viewport width in CSS pixels (0 = default)
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s" (empty = default)
}

// TimeoutDuration returns the parsed export timeout, or zero when unset.
// Validate guarantees the value parses.
func (e ExportConfig) TimeoutDuration() time.Duration {
	if e.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(e.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for callers
// who construct Config manually.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"input.defaultDir", c.Input.DefaultDir, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"font", c.Font, MaxFontLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"assets.style", c.Assets.Style, MaxPathLength},
		{"assets.template", c.Assets.Template, MaxNameLength},
		{"export.timeout", c.Export.Timeout, MaxTimeoutLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Export.Width < 0 || c.Export.Width > MaxExportWidth {
		return fmt.Errorf("%w: export.width must be between 0 (default) and %d, got %d", ErrInvalidValue, MaxExportWidth, c.Export.Width)
	}
	if c.Export.Timeout != "" {
		d, err := time.ParseDuration(c.Export.Timeout)
		if err != nil {
			return fmt.Errorf("%w: export.timeout %q: %v", ErrInvalidValue, c.Export.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: export.timeout must be positive, got %s", ErrInvalidValue, c.Export.Timeout)
		}
	}

	return c.Logging.Validate()
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration: embedded assets, default
// font, no PNG export, normal logging.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{Level: LevelNormal},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-detailpage/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDirName, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
