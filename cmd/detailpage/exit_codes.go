package main

import (
	"context"
	"errors"
	"os"

	detailpage "github.com/alnah/go-detailpage"
	"github.com/alnah/go-detailpage/internal/config"
)

// Exit codes for the detailpage CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // All pages compiled
	ExitGeneral  = 1 // General/unexpected error
	ExitUsage    = 2 // Invalid flags, config, or assets
	ExitIO       = 3 // File not found, permission denied
	ExitBrowser  = 4 // Browser/Chrome errors during PNG export
	ExitDocument = 5 // Invalid document, or block failures with --strict
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// When a batch aggregates several causes, the first matching class below wins.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, detailpage.ErrBrowserConnect) ||
		errors.Is(err, detailpage.ErrPageCreate) ||
		errors.Is(err, detailpage.ErrPageLoad) ||
		errors.Is(err, detailpage.ErrScreenshot) ||
		errors.Is(err, context.DeadlineExceeded) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadDocument) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoDocuments) {
		return ExitIO
	}

	// Usage/config/asset errors (exit 2)
	if errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, detailpage.ErrInvalidWidth) ||
		errors.Is(err, detailpage.ErrStyleNotFound) ||
		errors.Is(err, detailpage.ErrScriptNotFound) ||
		errors.Is(err, detailpage.ErrTemplateSetNotFound) ||
		errors.Is(err, detailpage.ErrIncompleteTemplateSet) ||
		errors.Is(err, detailpage.ErrTemplateParse) ||
		errors.Is(err, detailpage.ErrInvalidAssetPath) {
		return ExitUsage
	}

	// Document errors (exit 5)
	if errors.Is(err, detailpage.ErrParse) ||
		errors.Is(err, detailpage.ErrSchema) ||
		errors.Is(err, ErrBlockFailures) ||
		errors.Is(err, ErrMalformedBlocks) {
		return ExitDocument
	}

	return ExitGeneral
}
