package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	detailpage "github.com/alnah/go-detailpage"
	"github.com/alnah/go-detailpage/internal/config"
	"github.com/alnah/go-detailpage/internal/fileutil"
	"github.com/alnah/go-detailpage/internal/yamlutil"
)

// Sentinel errors for CLI operations.
var (
	ErrInvalidFlags   = errors.New("invalid flags")
	ErrNoInput        = errors.New("no input specified")
	ErrNoDocuments    = errors.New("no page documents found")
	ErrReadDocument   = errors.New("failed to read document")
	ErrWriteOutput    = errors.New("failed to write output")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrBlockFailures  = errors.New("blocks rendered as error fragments")
)

// runCompile orchestrates the compile command.
func runCompile(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCompileFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrInvalidFlags, err)
	}

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	// Env fills gaps in the file, then CLI flags win
	applyEnvConfig(envCfg, cfg)
	if err := mergeFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := cfg.Logging.Prepare(env.Stderr, env.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	warnUnknownEnvVars(env.Environ(), log)

	inputPath, err := resolveInputPath(positional, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoDocuments, inputPath)
	}

	compiler, err := detailpage.NewCompiler(compilerOptions(cfg, log)...)
	if err != nil {
		return fmt.Errorf("preparing compiler: %w", err)
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
		if err := validateWorkers(workers); err != nil {
			return fmt.Errorf("DETAILPAGE_WORKERS: %w", err)
		}
	}
	workers = min(detailpage.ResolvePoolSize(workers), len(files))

	var pool Pool
	if cfg.Export.PNG {
		pool, err = env.NewPool(workers, exportOptions(cfg)...)
		if err != nil {
			return fmt.Errorf("preparing PNG export: %w", err)
		}
		defer func() {
			if err := pool.Close(); err != nil {
				log.Warn("closing browsers", zap.Error(err))
			}
		}()
	}

	log.Debug("compiling",
		zap.Int("files", len(files)),
		zap.Int("workers", workers),
		zap.Bool("png", cfg.Export.PNG),
		zap.String("font", cfg.Font))

	results := compileBatch(ctx, compiler, pool, files, &batchParams{
		font:    cfg.Font,
		workers: workers,
		strict:  flags.strict,
		now:     env.Now,
	})

	return printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
}

// loadConfig loads the config named by the flag, else by DETAILPAGE_CONFIG,
// else returns the defaults.
func loadConfig(flagConfig string, envCfg *envConfig) (*config.Config, error) {
	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *compileFlags, cfg *config.Config) error {
	if flags.font != "" {
		cfg.Font = flags.font
	}

	// Assets
	if flags.assets.style != "" {
		cfg.Assets.Style = flags.assets.style
	}
	if flags.assets.template != "" {
		cfg.Assets.Template = flags.assets.template
	}
	if flags.assets.assetPath != "" {
		cfg.Assets.BasePath = flags.assets.assetPath
	}

	// Export
	if flags.export.png {
		cfg.Export.PNG = true
	}
	if flags.export.width != 0 {
		cfg.Export.Width = flags.export.width
	}
	if flags.export.timeout != "" {
		d, err := time.ParseDuration(flags.export.timeout)
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flags.export.timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flags.export.timeout)
		}
		cfg.Export.Timeout = flags.export.timeout
	}

	// Output control
	switch {
	case flags.common.quiet:
		cfg.Logging.Level = config.LevelQuiet
	case flags.common.verbose:
		cfg.Logging.Level = config.LevelDebug
	}

	return nil
}

// resolveInputPath returns the positional input, else input.defaultDir.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir returns the -o flag, else output.defaultDir, else "" (next to the source).
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// compilerOptions maps config to library options.
func compilerOptions(cfg *config.Config, log *zap.Logger) []detailpage.Option {
	opts := []detailpage.Option{detailpage.WithLogger(log)}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, detailpage.WithAssetPath(cfg.Assets.BasePath))
	}
	if cfg.Assets.Style != "" {
		opts = append(opts, detailpage.WithStyle(cfg.Assets.Style))
	}
	if cfg.Assets.Template != "" {
		opts = append(opts, detailpage.WithTemplateSet(cfg.Assets.Template))
	}
	return opts
}

// exportOptions maps config to exporter options.
func exportOptions(cfg *config.Config) []detailpage.ExportOption {
	var opts []detailpage.ExportOption
	if cfg.Export.Width > 0 {
		opts = append(opts, detailpage.WithViewportWidth(cfg.Export.Width))
	}
	if d := cfg.Export.TimeoutDuration(); d > 0 {
		opts = append(opts, detailpage.WithTimeout(d))
	}
	return opts
}

// readDocument reads a page document and converts YAML input to JSON.
func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- discovered or user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadDocument, err)
	}
	if !fileutil.IsYAMLFile(path) {
		return string(data), nil
	}

	converted, err := yamlutil.ToJSON(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", detailpage.ErrParse, err)
	}
	return string(converted), nil
}
