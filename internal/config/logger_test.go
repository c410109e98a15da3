package config

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

func TestLoggingConfig_Prepare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		level     string
		wantOut   []string
		wantNoOut []string
		wantErr   bool
	}{
		{
			name:      "normal hides debug",
			level:     LevelNormal,
			wantOut:   []string{"INFO", "page written", "WARN"},
			wantNoOut: []string{"DEBUG"},
			wantErr:   true,
		},
		{
			name:    "empty level behaves as normal",
			level:   "",
			wantOut: []string{"INFO", "WARN"},
			wantErr: true,
		},
		{
			name:    "debug shows everything",
			level:   LevelDebug,
			wantOut: []string{"DEBUG", "INFO", "WARN"},
			wantErr: true,
		},
		{
			name:      "quiet keeps errors only",
			level:     LevelQuiet,
			wantNoOut: []string{"DEBUG", "INFO", "WARN"},
			wantErr:   true,
		},
		{
			name:      "none discards everything",
			level:     LevelNone,
			wantNoOut: []string{"DEBUG", "INFO", "WARN"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			conf := LoggingConfig{Level: tt.level}
			log, err := conf.Prepare(&out, &errOut)
			if err != nil {
				t.Fatalf("Prepare() error = %v", err)
			}

			log.Debug("resolved font", zap.String("font", "Gothic A1"))
			log.Info("page written", zap.String("file", "spring.html"))
			log.Warn("block failed", zap.String("block_id", "hero-1"))
			log.Error("compile failed", zap.Error(errors.New("boom")))
			_ = log.Sync()

			for _, s := range tt.wantOut {
				if !strings.Contains(out.String(), s) {
					t.Errorf("out missing %q:\n%s", s, out.String())
				}
			}
			for _, s := range tt.wantNoOut {
				if strings.Contains(out.String(), s) {
					t.Errorf("out should not contain %q:\n%s", s, out.String())
				}
			}
			if strings.Contains(out.String(), "compile failed") {
				t.Error("errors should not go to out")
			}
			if got := strings.Contains(errOut.String(), "compile failed"); got != tt.wantErr {
				t.Errorf("errOut has error = %v, want %v:\n%s", got, tt.wantErr, errOut.String())
			}
		})
	}
}

func TestLoggingConfig_Prepare_Named(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	log, err := (&LoggingConfig{Level: LevelNormal}).Prepare(&out, &out)
	if err != nil {
		t.Fatal(err)
	}
	log.Info("hello")
	if !strings.Contains(out.String(), LoggerName) {
		t.Errorf("entry should carry logger name %q: %s", LoggerName, out.String())
	}
}

func TestLoggingConfig_Prepare_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := (&LoggingConfig{Level: "verbose"}).Prepare(&bytes.Buffer{}, &bytes.Buffer{})
	if !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Prepare() error = %v, want ErrInvalidValue", err)
	}
}

func TestConsoleEncoder_StripsVerboseErrors(t *testing.T) {
	t.Parallel()

	var errOut bytes.Buffer
	log, err := (&LoggingConfig{Level: LevelQuiet}).Prepare(&bytes.Buffer{}, &errOut)
	if err != nil {
		t.Fatal(err)
	}

	combined := multierr.Combine(errors.New("a.json failed"), errors.New("b.json failed"))
	log.Error("batch failed", zap.Error(combined))

	got := errOut.String()
	if !strings.Contains(got, "a.json failed; b.json failed") {
		t.Errorf("error message missing: %s", got)
	}
	if strings.Contains(got, "errorVerbose") {
		t.Errorf("verbose error field should be stripped: %s", got)
	}
}
