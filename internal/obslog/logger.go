// Package obslog configures the docmatch pipeline's structured logger: a
// zap core writing JSON to stderr and, optionally, a rotated file sink,
// plus a correlation-ID field attached once per pipeline run.
package obslog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink configures rotation for the optional on-disk log sink.
type FileSink struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Config controls logger construction. A zero-value Config logs JSON to
// stderr at Info level.
type Config struct {
	Level         Severity
	Service       string
	CorrelationID string
	File          *FileSink // nil disables the file sink
}

// Logger wraps zap with docmatch's encoder conventions and a bound
// correlation ID, trimmed to the sinks this pipeline actually uses (no
// policy/profile/throttling middleware — see DESIGN.md).
type Logger struct {
	zap *zap.Logger
}

// New builds a Logger from cfg.
func New(cfg Config) (*Logger, error) {
	level := cfg.Level
	if level == "" {
		level = Info
	}
	atomicLevel := zap.NewAtomicLevelAt(level.ToZapLevel())

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "severity",
		NameKey:        "logger",
		MessageKey:     "message",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    severityEncoder,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stderr), atomicLevel),
	}
	if cfg.File != nil {
		if cfg.File.Path == "" {
			return nil, fmt.Errorf("obslog: file sink requires a path")
		}
		lumber := &lumberjack.Logger{
			Filename:   cfg.File.Path,
			MaxSize:    cfg.File.MaxSizeMB,
			MaxBackups: cfg.File.MaxBackups,
			MaxAge:     cfg.File.MaxAgeDays,
			Compress:   cfg.File.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(lumber), atomicLevel))
	}

	fields := []zap.Field{zap.String("service", cfg.Service)}
	if cfg.CorrelationID != "" {
		fields = append(fields, zap.String("correlation_id", cfg.CorrelationID))
	}

	zapLogger := zap.New(zapcore.NewTee(cores...), zap.Fields(fields...))
	return &Logger{zap: zapLogger}, nil
}

// NewCLI builds a stderr-only logger for the docmatch CLI entry point.
func NewCLI(correlationID string) (*Logger, error) {
	return New(Config{Service: "docmatch", CorrelationID: correlationID})
}

func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }
func (l *Logger) Info(msg string, fields ...zap.Field)  { l.zap.Info(msg, fields...) }
func (l *Logger) Warn(msg string, fields ...zap.Field)  { l.zap.Warn(msg, fields...) }
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{zap: l.zap.With(zap.String("component", component))}
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error { return l.zap.Sync() }
