package main

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-detailpage/internal/config"
)

// envPrefix marks the environment variables read by the CLI.
const envPrefix = "DETAILPAGE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	// Tier 1 - Essential
	ConfigPath string        // DETAILPAGE_CONFIG: config file name or path
	Font       string        // DETAILPAGE_FONT: font selector
	Style      string        // DETAILPAGE_STYLE: style name, path, or CSS
	Timeout    time.Duration // DETAILPAGE_TIMEOUT: PNG export timeout

	// Tier 2 - I/O
	InputDir  string // DETAILPAGE_INPUT_DIR: default input directory
	OutputDir string // DETAILPAGE_OUTPUT_DIR: default output directory
	AssetPath string // DETAILPAGE_ASSET_PATH: custom asset directory

	// Tier 3 - Extended
	Template string // DETAILPAGE_TEMPLATE: template set name
	Width    int    // DETAILPAGE_WIDTH: PNG viewport width
	Workers  int    // DETAILPAGE_WORKERS: parallel workers
	LogLevel string // DETAILPAGE_LOG_LEVEL: none, quiet, normal, debug
}

// knownEnvVars lists valid DETAILPAGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	// Tier 1 - Essential
	"DETAILPAGE_CONFIG":  true,
	"DETAILPAGE_FONT":    true,
	"DETAILPAGE_STYLE":   true,
	"DETAILPAGE_TIMEOUT": true,
	// Tier 2 - I/O
	"DETAILPAGE_INPUT_DIR":  true,
	"DETAILPAGE_OUTPUT_DIR": true,
	"DETAILPAGE_ASSET_PATH": true,
	// Tier 3 - Extended
	"DETAILPAGE_TEMPLATE":  true,
	"DETAILPAGE_WIDTH":     true,
	"DETAILPAGE_WORKERS":   true,
	"DETAILPAGE_LOG_LEVEL": true,
}

// loadEnvConfig reads configuration through getenv.
// Unparsable or non-positive numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("DETAILPAGE_CONFIG"),
		Font:       getenv("DETAILPAGE_FONT"),
		Style:      getenv("DETAILPAGE_STYLE"),
		InputDir:   getenv("DETAILPAGE_INPUT_DIR"),
		OutputDir:  getenv("DETAILPAGE_OUTPUT_DIR"),
		AssetPath:  getenv("DETAILPAGE_ASSET_PATH"),
		Template:   getenv("DETAILPAGE_TEMPLATE"),
		LogLevel:   getenv("DETAILPAGE_LOG_LEVEL"),
	}

	if timeout := getenv("DETAILPAGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if width := getenv("DETAILPAGE_WIDTH"); width != "" {
		if w, err := strconv.Atoi(width); err == nil && w > 0 {
			cfg.Width = w
		}
	}
	if workers := getenv("DETAILPAGE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DETAILPAGE_* variables.
// Helps catch typos like DETAILPAGE_FONTS instead of DETAILPAGE_FONT.
func warnUnknownEnvVars(environ []string, log *zap.Logger) {
	for _, env := range environ {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			log.Warn("unknown environment variable (typo?)", zap.String("name", name))
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty/zero.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	// Tier 1
	if env.Font != "" && cfg.Font == "" {
		cfg.Font = env.Font
	}
	if env.Style != "" && cfg.Assets.Style == "" {
		cfg.Assets.Style = env.Style
	}
	if env.Timeout > 0 && cfg.Export.Timeout == "" {
		cfg.Export.Timeout = env.Timeout.String()
	}

	// Tier 2
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}

	// Tier 3
	if env.Template != "" && cfg.Assets.Template == "" {
		cfg.Assets.Template = env.Template
	}
	if env.Width > 0 && cfg.Export.Width == 0 {
		cfg.Export.Width = env.Width
	}
	// The config default is "normal", so an explicit env level always applies
	// unless the file chose something else.
	if env.LogLevel != "" && (cfg.Logging.Level == "" || cfg.Logging.Level == config.LevelNormal) {
		cfg.Logging.Level = env.LogLevel
	}
}
