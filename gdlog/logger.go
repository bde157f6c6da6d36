// Package gdlog is the ambient logging surface shared by the reader,
// validator, and incremental pipeline. It never panics and never writes
// directly to stdout/stderr itself; callers inject a Logger so library code
// stays silent by default and host applications choose the sink.
package gdlog

import "go.uber.org/zap"

// Logger is the narrow interface every gdlang package depends on instead of
// a concrete logging library, so tests can substitute a no-op or recording
// implementation without pulling in zap.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warning(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field is a structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field   { return Field{Key: key, Value: value} }
func Int(key string, value int) Field  { return Field{Key: key, Value: value} }
func Err(err error) Field              { return Field{Key: "error", Value: err} }
func Duration(key string, value interface{}) Field { return Field{Key: key, Value: value} }

func toZap(fields []Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

// zapLogger adapts a *zap.Logger to the Logger interface.
type zapLogger struct {
	z *zap.Logger
}

// New builds the default production Logger, writing structured JSON to
// stderr via zap's standard production configuration.
func New() (Logger, error) {
	z, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return &zapLogger{z: z}, nil
}

// NewDevelopment builds a human-readable console Logger, useful for
// cmd/gdinspect and local debugging.
func NewDevelopment() (Logger, error) {
	z, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return &zapLogger{z: z}, nil
}

func (l *zapLogger) Debug(msg string, fields ...Field)   { l.z.Debug(msg, toZap(fields)...) }
func (l *zapLogger) Info(msg string, fields ...Field)    { l.z.Info(msg, toZap(fields)...) }
func (l *zapLogger) Warning(msg string, fields ...Field) { l.z.Warn(msg, toZap(fields)...) }
func (l *zapLogger) Error(msg string, fields ...Field)   { l.z.Error(msg, toZap(fields)...) }

// Nop is the default Logger used when a caller configures none: every call
// is a no-op, so library packages can log unconditionally.
var Nop Logger = nopLogger{}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field)   {}
func (nopLogger) Info(string, ...Field)    {}
func (nopLogger) Warning(string, ...Field) {}
func (nopLogger) Error(string, ...Field)   {}
