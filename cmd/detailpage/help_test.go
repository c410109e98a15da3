package main

import (
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantStdout string
		wantStderr string
	}{
		{"no args", nil, "Commands:", ""},
		{"compile", []string{"compile"}, "--asset-path", ""},
		{"inspect", []string{"inspect"}, "--strict", ""},
		{"fonts", []string{"fonts"}, "detailpage fonts", ""},
		{"doctor", []string{"doctor"}, "detailpage doctor", ""},
		{"version", []string{"version"}, "detailpage version", ""},
		{"help", []string{"help"}, "detailpage help", ""},
		{"unknown", []string{"nope"}, "", "Unknown command: nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := newTestEnv(nil)
			runHelp(tt.args, env.Environment)

			if tt.wantStdout != "" && !strings.Contains(env.stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, env.stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(env.stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, env.stderr)
			}
		})
	}
}

// Every compile flag should be documented in the usage text.
func TestCompileUsageCoversFlags(t *testing.T) {
	t.Parallel()

	env := newTestEnv(nil)
	printCompileUsage(env.stdout)
	usage := env.stdout.String()

	fs := newCompileFlagSet(&compileFlags{})
	fs.VisitAll(func(f *flag.Flag) {
		if !strings.Contains(usage, "--"+f.Name) {
			t.Errorf("usage does not document --%s", f.Name)
		}
	})
}
