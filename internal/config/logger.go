package config

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// Console log levels.
const (
	LevelNone   = "none"   // nothing
	LevelQuiet  = "quiet"  // errors only
	LevelNormal = "normal" // info and above
	LevelDebug  = "debug"  // everything
)

// LoggerName is attached to every entry of the CLI logger.
const LoggerName = "detailpage"

// LoggingConfig defines console logging options.
type LoggingConfig struct {
	Level string `yaml:"level"` // none, quiet, normal, debug (empty = normal)
}

// Validate rejects unknown levels.
func (conf *LoggingConfig) Validate() error {
	switch conf.Level {
	case "", LevelNone, LevelQuiet, LevelNormal, LevelDebug:
		return nil
	default:
		return fmt.Errorf("%w: logging.level %q (must be none, quiet, normal, or debug)", ErrInvalidValue, conf.Level)
	}
}

// Prepare returns the console logger used by the CLI. Entries below error
// go to out and errors go to errOut, so both can be redirected separately.
func (conf *LoggingConfig) Prepare(out, errOut io.Writer) (*zap.Logger, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	ec.EncodeLevel = zapcore.CapitalLevelEncoder

	lowEncoder := zapcore.NewConsoleEncoder(ec)
	highEncoder := newEncoder(ec) // filter errorVerbose

	highPriority := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})
	lowPriority := func(floor zapcore.Level) zap.LevelEnablerFunc {
		return func(lvl zapcore.Level) bool {
			return floor <= lvl && lvl < zapcore.ErrorLevel
		}
	}

	var lowCore, highCore zapcore.Core
	switch conf.Level {
	case LevelNone:
		lowCore = zapcore.NewNopCore()
		highCore = zapcore.NewNopCore()
	case LevelQuiet:
		lowCore = zapcore.NewNopCore()
		highCore = zapcore.NewCore(highEncoder, zapcore.Lock(zapcore.AddSync(errOut)), highPriority)
	case LevelDebug:
		lowCore = zapcore.NewCore(lowEncoder, zapcore.Lock(zapcore.AddSync(out)), lowPriority(zapcore.DebugLevel))
		highCore = zapcore.NewCore(highEncoder, zapcore.Lock(zapcore.AddSync(errOut)), highPriority)
	default:
		lowCore = zapcore.NewCore(lowEncoder, zapcore.Lock(zapcore.AddSync(out)), lowPriority(zapcore.InfoLevel))
		highCore = zapcore.NewCore(highEncoder, zapcore.Lock(zapcore.AddSync(errOut)), highPriority)
	}

	return zap.New(zapcore.NewTee(highCore, lowCore)).Named(LoggerName), nil
}

// When logging errors to console, do not output the verbose message
// (multierr and similar errors implement fmt.Formatter with %+v details).

type consoleEnc struct {
	zapcore.Encoder
}

func newEncoder(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return consoleEnc{zapcore.NewConsoleEncoder(cfg)}
}

func (c consoleEnc) Clone() zapcore.Encoder {
	return consoleEnc{c.Encoder.Clone()}
}

func (c consoleEnc) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	newFields := make([]zapcore.Field, 0, len(fields))
	for _, f := range fields {
		if f.Type == zapcore.ErrorType {
			if e, ok := f.Interface.(error); ok {
				f.Interface = errors.New(e.Error())
			}
		}
		newFields = append(newFields, f)
	}
	return c.Encoder.EncodeEntry(ent, newFields)
}
