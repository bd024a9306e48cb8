// Package genlog wraps zap with an explicit nesting depth carried down the
// call chain, replacing the old trick of inferring indentation from the
// runtime call stack.
package genlog

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a leveled, structured logger with a fixed nesting depth.
// Child loggers for nested pipeline steps come from Nested().
type Logger struct {
	z     *zap.Logger
	depth int
}

// New builds the generator's console logger. With verbose set, debug-level
// output is included.
func New(verbose bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = "" // progress output, timestamps are noise
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return &Logger{z: zap.New(core)}
}

// NewNop returns a logger that discards everything. Used in tests.
func NewNop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Nested returns a logger one level deeper, for steps inside the current one.
func (l *Logger) Nested() *Logger {
	return &Logger{z: l.z, depth: l.depth + 1}
}

func (l *Logger) indent() string {
	return strings.Repeat("    ", l.depth)
}

// Step logs a pipeline progress line at the logger's depth.
func (l *Logger) Step(msg string, fields ...zap.Field) {
	l.z.Info(l.indent()+msg, append(fields, zap.Int("depth", l.depth))...)
}

// Debug logs detail only shown in verbose mode.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.z.Debug(l.indent()+msg, append(fields, zap.Int("depth", l.depth))...)
}

// Warn logs a best-effort failure that does not abort the run.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.z.Warn(l.indent()+msg, append(fields, zap.Int("depth", l.depth))...)
}

// Error logs a fatal condition before it is surfaced to the caller.
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.z.Error(l.indent()+msg, append(fields, zap.Int("depth", l.depth))...)
}

// Sync flushes buffered output; safe to call on process exit.
func (l *Logger) Sync() {
	_ = l.z.Sync()
}
