package obslog

import "go.uber.org/zap/zapcore"

// Severity is docmatch's own log-level vocabulary, mapped onto zap's levels.
type Severity string

const (
	Debug Severity = "DEBUG"
	Info  Severity = "INFO"
	Warn  Severity = "WARN"
	Error Severity = "ERROR"
	Fatal Severity = "FATAL"
)

// ToZapLevel converts a Severity to its zapcore.Level equivalent.
func (s Severity) ToZapLevel() zapcore.Level {
	switch s {
	case Debug:
		return zapcore.DebugLevel
	case Warn:
		return zapcore.WarnLevel
	case Error:
		return zapcore.ErrorLevel
	case Fatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseSeverity parses a severity string, defaulting to Info on anything
// unrecognized.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case Debug, Info, Warn, Error, Fatal:
		return Severity(s)
	default:
		return Info
	}
}

func severityEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	switch l {
	case zapcore.DebugLevel:
		enc.AppendString(string(Debug))
	case zapcore.WarnLevel:
		enc.AppendString(string(Warn))
	case zapcore.ErrorLevel:
		enc.AppendString(string(Error))
	case zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		enc.AppendString(string(Fatal))
	default:
		enc.AppendString(string(Info))
	}
}
