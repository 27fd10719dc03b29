// Package logging provides the small context-carried logger spec.md §7
// requires: every state transition at info level, every error with context
// {user, ship_id, state}. Grounded on the teacher's ContainerLogger /
// WithLogger / LoggerFromContext pattern, generalized from container
// operations to ship-machine steps.
package logging

import (
	"context"
	"fmt"
	"log"
)

// Logger is the logging capability the supervisor and ship machines use.
// Metadata keys are conventionally "user", "ship_id", and "state".
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

type contextKey int

const loggerKey contextKey = iota

// WithLogger attaches a Logger to ctx for downstream retrieval.
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext extracts the Logger from ctx, falling back to a no-op logger.
func FromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {}

// StdLogger writes to the standard library's log package, formatting
// metadata as trailing key=value pairs.
type StdLogger struct {
	prefix string
}

// NewStdLogger creates a Logger writing through log.Printf, tagged with
// prefix (typically the process name).
func NewStdLogger(prefix string) *StdLogger {
	return &StdLogger{prefix: prefix}
}

func (l *StdLogger) Log(level, message string, metadata map[string]interface{}) {
	log.Printf("[%s] %s: %s%s", l.prefix, level, message, formatMetadata(metadata))
}

func formatMetadata(metadata map[string]interface{}) string {
	if len(metadata) == 0 {
		return ""
	}
	out := " ("
	first := true
	for _, key := range []string{"user", "ship_id", "state"} {
		v, ok := metadata[key]
		if !ok {
			continue
		}
		if !first {
			out += ", "
		}
		out += key + "=" + toString(v)
		first = false
	}
	for k, v := range metadata {
		if k == "user" || k == "ship_id" || k == "state" {
			continue
		}
		if !first {
			out += ", "
		}
		out += k + "=" + toString(v)
		first = false
	}
	return out + ")"
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
