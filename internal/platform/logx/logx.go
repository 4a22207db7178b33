// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// EnvLevel es la variable de entorno que fija el nivel inicial.
const EnvLevel = "PASSIVEMAP_LOG_LEVEL"

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

// zapLogger adapta un SugaredLogger de zap a la interfaz Logger.
// Los clones creados con With comparten el mismo AtomicLevel.
type zapLogger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// New crea un logger de consola en stderr con el nivel de PASSIVEMAP_LOG_LEVEL.
func New() Logger {
	return NewWithLevel(ParseLevel(os.Getenv(EnvLevel)))
}

// NewWithLevel creates a console logger with a specific level.
func NewWithLevel(lvl Level) Logger {
	atom := zap.NewAtomicLevelAt(toZap(lvl))

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encCfg.CallerKey = ""

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		atom,
	)
	return &zapLogger{sugar: zap.New(core).Sugar(), level: atom}
}

// NewSilent only emits errors.
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewNop descarta todo; pensado para tests.
func NewNop() Logger {
	return &zapLogger{sugar: zap.NewNop().Sugar(), level: zap.NewAtomicLevelAt(zapcore.DebugLevel)}
}

// FromZap envuelve un *zap.Logger existente (p.ej. un observer en tests).
func FromZap(l *zap.Logger, lvl Level) Logger {
	return &zapLogger{sugar: l.Sugar(), level: zap.NewAtomicLevelAt(toZap(lvl))}
}

func (z *zapLogger) With(kv ...any) Logger {
	return &zapLogger{sugar: z.sugar.With(normalizeKV(kv)...), level: z.level}
}

func (z *zapLogger) SetLevel(lvl Level) {
	z.level.SetLevel(toZap(lvl))
}

func (z *zapLogger) Debug(msg string, kv ...any) {
	if z.level.Enabled(zapcore.DebugLevel) {
		z.sugar.Debugw(msg, normalizeKV(kv)...)
	}
}

func (z *zapLogger) Info(msg string, kv ...any) {
	if z.level.Enabled(zapcore.InfoLevel) {
		z.sugar.Infow(msg, normalizeKV(kv)...)
	}
}

func (z *zapLogger) Warn(msg string, kv ...any) {
	if z.level.Enabled(zapcore.WarnLevel) {
		z.sugar.Warnw(msg, normalizeKV(kv)...)
	}
}

func (z *zapLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	z.sugar.Errorw("", normalizeKV(kv)...)
}

// normalizeKV fuerza claves string y completa pares impares,
// evitando que zap emita su propio error de "ignored key".
func normalizeKV(kv []any) []any {
	out := make([]any, 0, len(kv)+1)
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		var val any = "(missing)"
		if i+1 < len(kv) {
			val = kv[i+1]
		}
		out = append(out, key, val)
	}
	return out
}

func toZap(lvl Level) zapcore.Level {
	switch lvl {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel acepta alias cortos (dbg, inf, err); lo desconocido vale Info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
