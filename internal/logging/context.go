package logging

import (
	"context"
	"log/slog"
	"strings"
)

type contextKey int

const (
	sessionIDKey contextKey = iota
	requestIDKey
	showKey
)

// WithSessionID stores the session id on ctx.
func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ensureContext(ctx), sessionIDKey, strings.TrimSpace(id))
}

// SessionIDFromContext returns the session id stored by WithSessionID.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, sessionIDKey)
}

// WithRequestID stores an edit request id on ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ensureContext(ctx), requestIDKey, strings.TrimSpace(id))
}

// RequestIDFromContext returns the request id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, requestIDKey)
}

// WithShow stores the show name being worked on.
func WithShow(ctx context.Context, show string) context.Context {
	return context.WithValue(ensureContext(ctx), showKey, show)
}

// ShowFromContext returns the show stored by WithShow.
func ShowFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, showKey)
}

// ContextFields extracts standardized slog attributes from the provided context.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	fields := make([]slog.Attr, 0, 2)
	if show, ok := ShowFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldShow, show))
	}
	if id, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldRequestID, id))
	}
	return fields
}

// WithContext returns a logger augmented with structured fields derived from the supplied context.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}

func stringValue(ctx context.Context, key contextKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	value, ok := ctx.Value(key).(string)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
