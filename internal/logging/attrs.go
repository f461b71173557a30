package logging

import (
	"context"
	"log/slog"
	"time"
)

// Structured field keys shared by every tvlog package. Console output treats
// component, session and request ids specially; the rest print as fields.
const (
	FieldComponent = "component"
	FieldSessionID = "session_id"
	FieldRequestID = "request_id"

	// FieldShow is the worksheet name of the show a line concerns.
	FieldShow = "show"
	// FieldPosition is the zero-based episode position within a show.
	FieldPosition = "position"
	// FieldRow is the 1-based row in the backing store (position + 2).
	FieldRow = "row"
	// FieldField names a tracking field being written.
	FieldField  = "field"
	FieldFields = "fields"
	FieldReason = "reason"

	// FieldEventType classifies a warning or error, e.g. sheet_skipped.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to do next.
	FieldErrorHint = "error_hint"
	// FieldImpact is the user-facing consequence of a warning.
	FieldImpact = "impact"
)

type Attr = slog.Attr

func Int(key string, value int) Attr { return slog.Int(key, value) }

func String(key string, value string) Attr { return slog.String(key, value) }

func Strings(key string, values []string) Attr { return slog.Any(key, values) }

func Duration(key string, value time.Duration) Attr { return slog.Duration(key, value) }

func Error(err error) Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.Any("error", err)
}

// Show tags a line with the show (worksheet) name.
func Show(name string) Attr { return slog.String(FieldShow, name) }

func Position(position int) Attr { return slog.Int(FieldPosition, position) }

func Row(row int) Attr { return slog.Int(FieldRow, row) }

// Field tags a line with the tracking field it concerns.
func Field(name string) Attr { return slog.String(FieldField, name) }

func Reason(reason string) Attr { return slog.String(FieldReason, reason) }

func Hint(hint string) Attr { return slog.String(FieldErrorHint, hint) }

func Impact(impact string) Attr { return slog.String(FieldImpact, impact) }

func attrsToArgs(attrs []Attr) []any {
	args := make([]any, 0, len(attrs))
	for _, attr := range attrs {
		args = append(args, attr)
	}
	return args
}

func NewNop() *slog.Logger {
	return slog.New(NoopHandler{})
}

// NewComponentLogger tags logger with a component; nil falls back to a no-op
// logger.
func NewComponentLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	return logger.With(String(FieldComponent, component))
}

func hasKey(attrs []Attr, key string) bool {
	for _, a := range attrs {
		if a.Key == key {
			return true
		}
	}
	return false
}

// WarnWithContext logs a warning that always carries event_type, error_hint
// and impact so skipped sheets and partial writes can be filtered and acted on.
func WarnWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	if !hasKey(attrs, FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !hasKey(attrs, FieldErrorHint) {
		attrs = append(attrs, Hint("run 'tvlog doctor' to check the workbook"))
	}
	if !hasKey(attrs, FieldImpact) {
		attrs = append(attrs, Impact("results may be incomplete"))
	}
	logger.Warn(msg, attrsToArgs(attrs)...)
}

// ErrorWithContext logs an error that always carries event_type and
// error_hint.
func ErrorWithContext(logger *slog.Logger, msg, eventType string, attrs ...Attr) {
	if logger == nil {
		return
	}
	if !hasKey(attrs, FieldEventType) {
		attrs = append(attrs, String(FieldEventType, eventType))
	}
	if !hasKey(attrs, FieldErrorHint) {
		attrs = append(attrs, Hint("run 'tvlog doctor' to check the workbook"))
	}
	logger.Error(msg, attrsToArgs(attrs)...)
}

// NoopHandler discards all log output.
type NoopHandler struct{}

func (NoopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (NoopHandler) Handle(context.Context, slog.Record) error { return nil }

func (NoopHandler) WithAttrs([]slog.Attr) slog.Handler { return NoopHandler{} }

func (NoopHandler) WithGroup(string) slog.Handler { return NoopHandler{} }
