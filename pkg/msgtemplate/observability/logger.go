// Package observability provides logging, metrics and tracing helpers for
// msgtemplate and the tools built on it.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in. Every Log helper accepts a nil logger and does
// nothing, and Noop implementations exist for metrics and tracing.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds template-source context to a logger.
// Returns a new logger with source and dialect fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "internal/api/handlers.go", "strict")
//	enriched.Info("scanning") // includes source, dialect
func EnrichLogger(logger *slog.Logger, source, dialect string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("source", source),
		slog.String("dialect", dialect),
	)
}

// LogPropertyFallback logs a property attempt that was abandoned and kept
// as literal text.
func LogPropertyFallback(logger *slog.Logger, form string, pos int) {
	if logger == nil {
		return
	}
	logger.Debug("property attempt kept as literal",
		slog.String("form", form),
		slog.Int("pos", pos),
	)
}

// LogTemplateParsed logs a completed parse.
func LogTemplateParsed(logger *slog.Logger, text string, nodes, properties int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("template parsed",
		slog.String("template", text),
		slog.Int("nodes", nodes),
		slog.Int("properties", properties),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogRenderMissing logs properties that had no bound value at render time.
func LogRenderMissing(logger *slog.Logger, text string, names []string) {
	if logger == nil || len(names) == 0 {
		return
	}
	logger.Warn("template properties unresolved",
		slog.String("template", text),
		slog.Any("properties", names),
	)
}

// LogCacheFull logs that a cache reached its size limit. Templates parsed
// afterwards are not stored.
func LogCacheFull(logger *slog.Logger, maxEntries int) {
	if logger == nil {
		return
	}
	logger.Debug("template cache full",
		slog.Int("max_entries", maxEntries),
	)
}

// LogCatalogSaved logs a catalog entry write.
func LogCatalogSaved(logger *slog.Logger, id, source string, properties int) {
	if logger == nil {
		return
	}
	logger.Debug("catalog entry saved",
		slog.String("id", id),
		slog.String("source", source),
		slog.Int("properties", properties),
	)
}

// LogCatalogError logs a failed catalog operation (non-fatal).
func LogCatalogError(logger *slog.Logger, source, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("catalog operation failed",
		slog.String("source", source),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// LogScanComplete logs the end of a batch of templates from one source.
func LogScanComplete(logger *slog.Logger, source string, templates, properties int, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("template scan completed",
		slog.String("source", source),
		slog.Int("templates", templates),
		slog.Int("properties", properties),
		slog.Float64("duration_ms", durationMs),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Microseconds()) / 1000
	}
}
