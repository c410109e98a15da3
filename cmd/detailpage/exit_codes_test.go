package main

// Notes:
// - exitCodeFor: we test the sentinel errors from detailpage, config and this
//   package, plus wrapped and batch errors to verify the errors.Is chain.
// - Exit code constants: we verify Unix conventions and that custom codes
//   stay below 126.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"go.uber.org/multierr"

	detailpage "github.com/alnah/go-detailpage"
	"github.com/alnah/go-detailpage/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", detailpage.ErrBrowserConnect, ExitBrowser},
		{"page create", detailpage.ErrPageCreate, ExitBrowser},
		{"page load", detailpage.ErrPageLoad, ExitBrowser},
		{"screenshot", detailpage.ErrScreenshot, ExitBrowser},
		{"deadline", context.DeadlineExceeded, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", detailpage.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"read document", ErrReadDocument, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"no documents", ErrNoDocuments, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/asset errors (exit 2)
		{"invalid flags", ErrInvalidFlags, ExitUsage},
		{"invalid extension", ErrInvalidExtension, ExitUsage},
		{"invalid workers", ErrInvalidWorkerCount, ExitUsage},
		{"invalid timeout", ErrInvalidTimeout, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid value", config.ErrInvalidValue, ExitUsage},
		{"invalid width", detailpage.ErrInvalidWidth, ExitUsage},
		{"style not found", detailpage.ErrStyleNotFound, ExitUsage},
		{"script not found", detailpage.ErrScriptNotFound, ExitUsage},
		{"template set not found", detailpage.ErrTemplateSetNotFound, ExitUsage},
		{"incomplete template set", detailpage.ErrIncompleteTemplateSet, ExitUsage},
		{"template parse", detailpage.ErrTemplateParse, ExitUsage},
		{"invalid asset path", detailpage.ErrInvalidAssetPath, ExitUsage},

		// Document errors (exit 5)
		{"parse", detailpage.ErrParse, ExitDocument},
		{"parse error type", &detailpage.ParseError{Line: 1, Column: 2, Err: errors.New("bad")}, ExitDocument},
		{"schema error type", &detailpage.SchemaError{Field: "blocks", Reason: "is missing"}, ExitDocument},
		{"block failures", ErrBlockFailures, ExitDocument},
		{"malformed blocks", ErrMalformedBlocks, ExitDocument},

		// General
		{"unknown error", errors.New("boom"), ExitGeneral},
		{"doctor failed", ErrDoctorFailed, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeFor_Batch - Aggregated batch errors
// ---------------------------------------------------------------------------

func TestExitCodeFor_Batch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		errs []error
		want int
	}{
		{
			name: "browser wins over document",
			errs: []error{detailpage.ErrParse, detailpage.ErrBrowserConnect},
			want: ExitBrowser,
		},
		{
			name: "io wins over document",
			errs: []error{fmt.Errorf("a.json: %w", ErrBlockFailures), fmt.Errorf("b.json: %w", ErrReadDocument)},
			want: ExitIO,
		},
		{
			name: "document only",
			errs: []error{fmt.Errorf("a.json: %w", detailpage.ErrSchema)},
			want: ExitDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := &batchError{Failed: len(tt.errs), Total: 3, Err: multierr.Combine(tt.errs...)}
			if got := exitCodeFor(err); got != tt.want {
				t.Errorf("exitCodeFor() = %d, want %d", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExitCodeConstants - Unix conventions
// ---------------------------------------------------------------------------

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Errorf("ExitSuccess = %d, want 0", ExitSuccess)
	}
	if ExitGeneral != 1 {
		t.Errorf("ExitGeneral = %d, want 1", ExitGeneral)
	}
	if ExitUsage != 2 {
		t.Errorf("ExitUsage = %d, want 2", ExitUsage)
	}

	codes := map[string]int{"ExitIO": ExitIO, "ExitBrowser": ExitBrowser, "ExitDocument": ExitDocument}
	seen := map[int]string{ExitSuccess: "ExitSuccess", ExitGeneral: "ExitGeneral", ExitUsage: "ExitUsage"}
	for name, code := range codes {
		if code >= 126 {
			t.Errorf("%s = %d, must be below 126", name, code)
		}
		if other, dup := seen[code]; dup {
			t.Errorf("%s duplicates %s (%d)", name, other, code)
		}
		seen[code] = name
	}
}
