// Package logging assembles structured slog loggers and the attribute helpers
// used across the romanization packages.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context helpers that stamp a correlation ID on every line of one CLI
// invocation. A no-op logger is provided for tests and for library callers
// that do not supply one.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits the same field names (component, event_type, error_hint, impact).
package logging
