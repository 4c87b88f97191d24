// Package observability wires slog logging and OpenTelemetry tracing for
// the application.
package observability

import (
	"io"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// NewLogger builds a slog.Logger writing to out with the given level and
// format ("text" or "json"). Unknown values fall back to info/text.
func NewLogger(out io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}
	return slog.New(handler)
}

// Tracer returns the named tracer from the global provider. Deployments that
// install no SDK get the default no-op provider, so instrumentation is free
// when tracing is off.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}
