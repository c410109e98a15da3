package main

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	detailpage "github.com/alnah/go-detailpage"
)

func TestRunFonts(t *testing.T) {
	t.Parallel()

	t.Run("table lists every font once", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if err := runFonts(nil, env.Environment); err != nil {
			t.Fatal(err)
		}
		out := env.stdout.String()
		for _, f := range detailpage.Fonts() {
			if !strings.Contains(out, f.Selector) {
				t.Errorf("missing %q:\n%s", f.Selector, out)
			}
		}
		if n := strings.Count(out, "(default)"); n != 1 {
			t.Errorf("default marked %d times, want 1", n)
		}
	})

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv(nil)
		if err := runFonts([]string{"--json"}, env.Environment); err != nil {
			t.Fatal(err)
		}
		out := env.stdout.String()
		if got, want := gjson.Get(out, "#").Int(), int64(len(detailpage.Fonts())); got != want {
			t.Errorf("got %d fonts, want %d", got, want)
		}
		def := gjson.Get(out, "#(default==true).selector").String()
		if def != detailpage.DefaultFont().Selector {
			t.Errorf("default = %q, want %q", def, detailpage.DefaultFont().Selector)
		}
		if !gjson.Get(out, "0.weights").IsArray() {
			t.Error("weights should be an array")
		}
	})
}
