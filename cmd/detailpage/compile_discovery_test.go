package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	detailpage "github.com/alnah/go-detailpage"
)

// writeFiles creates files (relative to dir) with placeholder content.
func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

// ---------------------------------------------------------------------------
// TestDiscoverFiles - Single file and directory walking
// ---------------------------------------------------------------------------

func TestDiscoverFiles(t *testing.T) {
	t.Parallel()

	t.Run("single file next to source", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "spring.json")

		files, err := discoverFiles(filepath.Join(dir, "spring.json"), "")
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}
		if len(files) != 1 {
			t.Fatalf("got %d files, want 1", len(files))
		}
		want := FileToCompile{
			InputPath: filepath.Join(dir, "spring.json"),
			HTMLPath:  filepath.Join(dir, "spring.html"),
			PNGPath:   filepath.Join(dir, "spring.png"),
		}
		if files[0] != want {
			t.Errorf("got %+v, want %+v", files[0], want)
		}
	})

	t.Run("directory mirrors layout under output", func(t *testing.T) {
		t.Parallel()

		in := t.TempDir()
		out := t.TempDir()
		writeFiles(t, in, "b.yaml", "a.json", "sub/c.yml", "notes.txt", "sub/readme.md")

		files, err := discoverFiles(in, out)
		if err != nil {
			t.Fatalf("discoverFiles() error = %v", err)
		}

		want := []string{
			filepath.Join(out, "a.html"),
			filepath.Join(out, "b.html"),
			filepath.Join(out, "sub", "c.html"),
		}
		if len(files) != len(want) {
			t.Fatalf("got %d files, want %d: %+v", len(files), len(want), files)
		}
		for i, f := range files {
			if f.HTMLPath != want[i] {
				t.Errorf("files[%d].HTMLPath = %q, want %q", i, f.HTMLPath, want[i])
			}
		}
	})

	t.Run("wrong extension", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, "page.md")

		_, err := discoverFiles(filepath.Join(dir, "page.md"), "")
		if !errors.Is(err, ErrInvalidExtension) {
			t.Errorf("error = %v, want ErrInvalidExtension", err)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		_, err := discoverFiles(filepath.Join(t.TempDir(), "nope.json"), "")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("error = %v, want os.ErrNotExist", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestResolveOutputPath - Output naming rules
// ---------------------------------------------------------------------------

func TestResolveOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		inputPath    string
		outputDir    string
		baseInputDir string
		want         string
	}{
		{"no output dir", "pages/spring.json", "", "", filepath.Join("pages", "spring.html")},
		{"yaml source", "pages/spring.yaml", "", "", filepath.Join("pages", "spring.html")},
		{"explicit html file", "pages/spring.json", "out/landing.html", "", "out/landing.html"},
		{"flat output dir", "pages/spring.json", "out", "", filepath.Join("out", "spring.html")},
		{"mirrored subdir", "pages/kr/spring.json", "out", "pages", filepath.Join("out", "kr", "spring.html")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := resolveOutputPath(tt.inputPath, tt.outputDir, tt.baseInputDir)
			if got != tt.want {
				t.Errorf("resolveOutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateWorkers - Bounds
// ---------------------------------------------------------------------------

func TestValidateWorkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n       int
		wantErr bool
	}{
		{-1, true},
		{0, false},
		{1, false},
		{detailpage.MaxPoolSize, false},
		{detailpage.MaxPoolSize + 1, true},
	}

	for _, tt := range tests {
		err := validateWorkers(tt.n)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateWorkers(%d) error = %v, wantErr %v", tt.n, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWorkerCount) {
			t.Errorf("validateWorkers(%d) error = %v, want ErrInvalidWorkerCount", tt.n, err)
		}
	}
}
