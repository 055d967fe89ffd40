// Package logging builds the structured zap loggers used across msgcore.
//
// Every logger carries the process kind so that lines written by the main
// app and by its extensions can be told apart when they share a log sink.
// Operations add a flow_id field with WithFlow.
package logging

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/roach88/msgcore/internal/ir"
)

// New creates a JSON logger writing to os.Stderr at the given level.
func New(process ir.ProcessKind, level string) (*zap.Logger, error) {
	return NewWithWriter(process, level, os.Stderr)
}

// NewWithWriter creates a JSON logger writing to w.
// Level is one of debug, info, warn, error; empty means info.
func NewWithWriter(process ir.ProcessKind, level string, w io.Writer) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:     "timestamp",
		LevelKey:    "level",
		MessageKey:  "message",
		EncodeTime:  zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: zapcore.LowercaseLevelEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		lvl,
	)

	return zap.New(core).With(zap.String("process", string(process))), nil
}

// OrNop returns l, or a no-op logger when l is nil.
func OrNop(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}

// WithFlow tags a logger with the flow id of one operation.
func WithFlow(l *zap.Logger, flowID string) *zap.Logger {
	return l.With(zap.String("flow_id", flowID))
}

// Fault logs an internal fault: a state that should be unreachable.
// Faults are logged at error level with fault=true and never panic.
func Fault(l *zap.Logger, msg string, fields ...zap.Field) {
	l.Error(msg, append(fields, zap.Bool("fault", true))...)
}
