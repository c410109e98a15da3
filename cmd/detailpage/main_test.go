package main

// Notes:
// - runMain: we test dispatch and exit codes with an injected Environment.
//   PNG export goes through a fake PoolFactory; real browsers are covered by
//   the integration tests of the root package.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	detailpage "github.com/alnah/go-detailpage"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Environment
// ---------------------------------------------------------------------------

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	pool   *fakePool
}

func newTestEnv(vars map[string]string) *testEnv {
	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		pool:   &fakePool{exp: &fakeExporter{}},
	}
	te.Environment = &Environment{
		Now:     func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) },
		Stdout:  te.stdout,
		Stderr:  te.stderr,
		Getenv:  fakeGetenv(vars),
		Environ: func() []string { return nil },
		NewPool: func(int, ...detailpage.ExportOption) (Pool, error) { return te.pool, nil },
	}
	return te
}

func writeDoc(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestRunMain - Dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	valid := writeDoc(t, dir, "spring.json", validPage)
	degraded := writeDoc(t, dir, "degraded.json", degradedPage)
	broken := writeDoc(t, dir, "broken.json", `{"project": "p",`)
	yamlDoc := writeDoc(t, dir, "summer.yaml", "project: Summer\ndescription: Mist\nblocks: []\n")

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, ExitUsage, "", "Usage: detailpage"},
		{"unknown command", []string{"frobnicate"}, ExitUsage, "", "Unknown command: frobnicate"},
		{"version", []string{"version"}, ExitSuccess, "go-detailpage " + Version, ""},
		{"help", []string{"help"}, ExitSuccess, "Commands:", ""},
		{"help compile", []string{"help", "compile"}, ExitSuccess, "--png", ""},
		{"compile help flag", []string{"compile", "--help"}, ExitSuccess, "", "Usage: detailpage compile"},
		{"compile", []string{"compile", valid, "-o", filepath.Join(dir, "out")}, ExitSuccess, "Created", ""},
		{"bare document path", []string{yamlDoc, "-o", filepath.Join(dir, "out-yaml")}, ExitSuccess, "Created", ""},
		{"degraded page succeeds", []string{"compile", degraded, "-o", filepath.Join(dir, "out-deg")}, ExitSuccess, "Created", "WARN"},
		{"degraded page strict", []string{"compile", degraded, "--strict", "-o", filepath.Join(dir, "out-strict")}, ExitDocument, "", "hint:"},
		{"parse error", []string{"compile", broken, "-o", filepath.Join(dir, "out-broken")}, ExitDocument, "", "hint:"},
		{"missing input", []string{"compile", filepath.Join(dir, "nope.json")}, ExitIO, "", "error:"},
		{"no input", []string{"compile"}, ExitIO, "", "no input"},
		{"bad flag", []string{"compile", "--nope"}, ExitUsage, "", "invalid flags"},
		{"too many workers", []string{"compile", valid, "-w", "99"}, ExitUsage, "", "worker"},
		{"bad timeout", []string{"compile", valid, "-t", "soon"}, ExitUsage, "", "invalid timeout"},
		{"bad width", []string{"compile", valid, "--width", "99999"}, ExitUsage, "", "export.width"},
		{"missing config", []string{"compile", valid, "-c", filepath.Join(dir, "missing.yaml")}, ExitUsage, "", "hint:"},
		{"unknown style", []string{"compile", valid, "--style", "neon"}, ExitUsage, "", "available: default"},
		{"inspect", []string{"inspect", valid}, ExitSuccess, "hero_section", ""},
		{"inspect strict", []string{"inspect", "--strict", degraded}, ExitDocument, "malformed", ""},
		{"fonts", []string{"fonts"}, ExitSuccess, "(default)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			args := append([]string{"detailpage"}, tt.args...)

			if got := runMain(args, env.Environment); got != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstdout: %s\nstderr: %s", got, tt.wantCode, env.stdout, env.stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, env.stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, env.stderr)
			}
		})
	}
}

func TestRunMain_PNG(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "spring.json", validPage)
	env := newTestEnv(nil)

	code := runMain([]string{"detailpage", "compile", doc, "--png", "--width", "1080"}, env.Environment)
	if code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "spring.png")); err != nil {
		t.Errorf("png not written: %v", err)
	}
	if env.pool.acquired != 1 {
		t.Errorf("acquired = %d, want 1", env.pool.acquired)
	}
}

func TestRunMain_PoolFactoryError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "spring.json", validPage)
	env := newTestEnv(nil)
	env.NewPool = func(int, ...detailpage.ExportOption) (Pool, error) {
		return nil, detailpage.ErrInvalidWidth
	}

	if code := runMain([]string{"detailpage", doc, "--png"}, env.Environment); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
}

func TestRunMain_EnvConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeDoc(t, dir, "spring.json", validPage)
	out := filepath.Join(dir, "site")

	env := newTestEnv(map[string]string{
		"DETAILPAGE_INPUT_DIR":  dir,
		"DETAILPAGE_OUTPUT_DIR": out,
		"DETAILPAGE_FONT":       "Gothic A1",
	})

	if code := runMain([]string{"detailpage", "compile"}, env.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
	}
	html, err := os.ReadFile(filepath.Join(out, "spring.html"))
	if err != nil {
		t.Fatalf("output not written under DETAILPAGE_OUTPUT_DIR: %v", err)
	}
	if !strings.Contains(string(html), "Gothic+A1") {
		t.Error("DETAILPAGE_FONT should select the font")
	}
}

func TestRunMain_ConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	doc := writeDoc(t, dir, "spring.json", validPage)
	cfgPath := writeDoc(t, dir, "detailpage.yaml", "font: Nanum Gothic\nlogging:\n  level: quiet\n")

	env := newTestEnv(nil)
	if code := runMain([]string{"detailpage", "compile", doc, "-c", cfgPath}, env.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
	}
	html, err := os.ReadFile(filepath.Join(dir, "spring.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(html), "Nanum+Gothic") {
		t.Error("config font should apply")
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand / TestLooksLikeDocument - Dispatch helpers
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"compile", true},
		{"inspect", true},
		{"fonts", true},
		{"doctor", true},
		{"version", true},
		{"help", true},
		{"foo", false},
		{"", false},
		{"page.json", false},
		{"Compile", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := isCommand(tt.input); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLooksLikeDocument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  bool
	}{
		{"page.json", true},
		{"page.YAML", true},
		{"page.yml", true},
		{"./pages", true},
		{"pages/spring", true},
		{"page.md", false},
		{"compile", false},
		{"pages", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := looksLikeDocument(tt.input); got != tt.want {
				t.Errorf("looksLikeDocument(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestHintFor - Actionable hints
// ---------------------------------------------------------------------------

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"parse error with position", &detailpage.ParseError{Line: 3, Column: 7, Err: errors.New("bad")}, "line 3, column 7"},
		{"parse without position", detailpage.ErrParse, "JSON object"},
		{"schema", &detailpage.SchemaError{Field: "blocks"}, `"blocks"`},
		{"style", detailpage.ErrStyleNotFound, "available: default"},
		{"template set", detailpage.ErrTemplateSetNotFound, "available: default"},
		{"write output", ErrWriteOutput, "writable"},
		{"block failures", ErrBlockFailures, "detailpage inspect"},
		{"unknown", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err)
			if tt.want == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("hintFor() = %q, want substring %q", got, tt.want)
			}
		})
	}
}
