package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	detailpage "github.com/alnah/go-detailpage"
	"github.com/alnah/go-detailpage/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .json, .yaml or .yml extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// FileToCompile represents a single document to process.
type FileToCompile struct {
	InputPath string
	HTMLPath  string
	PNGPath   string
}

// discoverFiles finds all page documents to compile. Directories are walked
// recursively and their layout is mirrored under outputDir.
func discoverFiles(inputPath, outputDir string) ([]FileToCompile, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !fileutil.IsDocumentFile(inputPath) {
			return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputPath))
		}
		return []FileToCompile{newFileToCompile(inputPath, outputDir, "")}, nil
	}

	var files []FileToCompile
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsDocumentFile(path) {
			return nil
		}
		files = append(files, newFileToCompile(path, outputDir, inputPath))
		return nil
	})

	// WalkDir already yields lexical order; keep it explicit for stable output.
	sort.Slice(files, func(i, j int) bool { return files[i].InputPath < files[j].InputPath })
	return files, err
}

// newFileToCompile derives the HTML and PNG paths for a document.
func newFileToCompile(inputPath, outputDir, baseInputDir string) FileToCompile {
	htmlPath := resolveOutputPath(inputPath, outputDir, baseInputDir)
	return FileToCompile{
		InputPath: inputPath,
		HTMLPath:  htmlPath,
		PNGPath:   fileutil.ReplaceExtension(htmlPath, ".png"),
	}
}

// resolveOutputPath determines the HTML output path for a document.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	name := fileutil.ReplaceExtension(filepath.Base(inputPath), ".html")

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), name)
	}

	if filepath.Ext(outputDir) == ".html" {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > detailpage.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, detailpage.MaxPoolSize)
	}
	return nil
}
