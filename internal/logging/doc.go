// Package logging assembles the structured slog loggers used by tvlog.
//
// It owns the console and JSON handlers, level parsing, output routing and the
// standardized field keys (show, position, field, event_type, ...) so the
// loader, writer and CLI emit records with the same shape. Console output is
// written to stderr by default; stdout is reserved for command results.
//
// Use NewComponentLogger to tag a subsystem and WithContext to pick up the
// session id and show name carried on a context.
package logging
