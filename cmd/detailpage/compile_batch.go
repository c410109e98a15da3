package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/multierr"

	detailpage "github.com/alnah/go-detailpage"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// PageCompiler is the part of detailpage.Compiler the CLI uses.
type PageCompiler interface {
	CompileDocument(doc *detailpage.Document, font string) *detailpage.Result
}

// Pool abstracts exporter pool operations for testability.
type Pool interface {
	Acquire() detailpage.Exporter
	Release(detailpage.Exporter)
	Size() int
	Close() error
}

// Compile-time interface implementation checks.
var (
	_ PageCompiler = (*detailpage.Compiler)(nil)
	_ Pool         = (*detailpage.ExporterPool)(nil)
)

// batchParams holds the per-run settings shared by every file.
type batchParams struct {
	font    string
	workers int
	strict  bool
	now     func() time.Time
}

// FileResult holds the outcome of a single compilation.
type FileResult struct {
	InputPath string
	HTMLPath  string
	PNGPath   string // empty unless the page was exported
	Failures  []*detailpage.BlockRenderError
	Err       error
	Duration  time.Duration
}

// compileBatch compiles files concurrently. pool is nil when PNG export is off.
func compileBatch(ctx context.Context, compiler PageCompiler, pool Pool, files []FileToCompile, params *batchParams) []FileResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := max(min(params.workers, len(files)), 1)

	results := make([]FileResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = FileResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = compileFile(ctx, compiler, pool, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// compileFile compiles one document and writes its outputs.
func compileFile(ctx context.Context, compiler PageCompiler, pool Pool, f FileToCompile, params *batchParams) FileResult {
	start := params.now()
	result := FileResult{InputPath: f.InputPath}
	done := func(err error) FileResult {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}

	text, err := readDocument(f.InputPath)
	if err != nil {
		return done(err)
	}

	doc, err := detailpage.ParseDocument(text)
	if err != nil {
		return done(err)
	}

	res := compiler.CompileDocument(doc, params.font)
	result.Failures = res.Failures

	if err := os.MkdirAll(filepath.Dir(f.HTMLPath), dirPermissions); err != nil {
		return done(fmt.Errorf("%w: creating output directory: %w", ErrWriteOutput, err))
	}

	// #nosec G306 -- HTML pages are meant to be readable
	if err := os.WriteFile(f.HTMLPath, []byte(res.HTML), filePermissions); err != nil {
		return done(fmt.Errorf("%w: %w", ErrWriteOutput, err))
	}
	result.HTMLPath = f.HTMLPath

	if pool != nil {
		if err := exportPNG(ctx, pool, res.HTML, f.PNGPath); err != nil {
			return done(err)
		}
		result.PNGPath = f.PNGPath
	}

	if params.strict && len(res.Failures) > 0 {
		return done(fmt.Errorf("%w: %d in %s", ErrBlockFailures, len(res.Failures), f.InputPath))
	}

	return done(nil)
}

// exportPNG captures html with a pooled exporter and writes it to path.
func exportPNG(ctx context.Context, pool Pool, html, path string) error {
	exp := pool.Acquire()
	if exp == nil {
		return fmt.Errorf("%w: no exporter available", detailpage.ErrBrowserConnect)
	}
	png, err := exp.ToPNG(ctx, html)
	pool.Release(exp)
	if err != nil {
		return err
	}

	// #nosec G306 -- images are meant to be readable
	if err := os.WriteFile(path, png, filePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed compilations.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Degraded  int // succeeded, but with error fragments
}

// countResults tallies compilation outcomes.
func countResults(results []FileResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case len(r.Failures) > 0:
			summary.Succeeded++
			summary.Degraded++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// batchError reports the files that failed in a batch.
type batchError struct {
	Failed int
	Total  int
	Err    error // multierr of every file error
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d pages failed", e.Failed, e.Total)
}

// Unwrap exposes each file error to errors.Is and errors.As.
func (e *batchError) Unwrap() []error { return multierr.Errors(e.Err) }

// printResultsWithWriter outputs compilation results and returns a
// batchError when any file failed.
func printResultsWithWriter(results []FileResult, quiet, verbose bool, env *Environment) error {
	summary := countResults(results)

	var errs error
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", r.InputPath, r.Err))
			// Strict failures still wrote the page; their fragments are listed below.
			if !errors.Is(r.Err, ErrBlockFailures) {
				continue
			}
		}

		for _, fail := range r.Failures {
			fmt.Fprintf(env.Stderr, "WARN %s: %v\n", r.InputPath, fail)
		}

		if quiet || r.Err != nil {
			continue
		}

		outputs := r.HTMLPath
		if r.PNGPath != "" {
			outputs += ", " + r.PNGPath
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, outputs, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputs)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed", summary.Succeeded, summary.Failed)
		if summary.Degraded > 0 {
			fmt.Fprintf(env.Stdout, ", %d with failed blocks", summary.Degraded)
		}
		fmt.Fprintln(env.Stdout)
	}

	if errs == nil {
		return nil
	}
	return &batchError{Failed: summary.Failed, Total: len(results), Err: errs}
}
