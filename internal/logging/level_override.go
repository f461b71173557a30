package logging

import (
	"context"
	"log/slog"
	"strings"
)

// componentLevelHandler enforces a per-component minimum level while
// delegating output to the wrapped handler, which is configured with the most
// verbose level needed globally. The component is picked up when a logger is
// derived with a component attribute (see NewComponentLogger).
type componentLevelHandler struct {
	next   slog.Handler
	base   slog.Level
	levels map[string]slog.Level
	level  slog.Level
}

func newComponentLevelHandler(next slog.Handler, base slog.Level, overrides map[string]string) slog.Handler {
	if next == nil {
		return NoopHandler{}
	}
	levels := make(map[string]slog.Level, len(overrides))
	for component, value := range overrides {
		component = strings.ToLower(strings.TrimSpace(component))
		if component == "" {
			continue
		}
		levels[component] = parseLevel(value)
	}
	return &componentLevelHandler{next: next, base: base, levels: levels, level: base}
}

func (h *componentLevelHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level < h.level {
		return false
	}
	return h.next.Enabled(ctx, level)
}

func (h *componentLevelHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level < h.level {
		return nil
	}
	return h.next.Handle(ctx, record)
}

func (h *componentLevelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	level := h.level
	for _, attr := range attrs {
		if attr.Key != FieldComponent {
			continue
		}
		level = h.base
		if override, ok := h.levels[strings.ToLower(attr.Value.String())]; ok {
			level = override
		}
	}
	return &componentLevelHandler{
		next:   h.next.WithAttrs(attrs),
		base:   h.base,
		levels: h.levels,
		level:  level,
	}
}

func (h *componentLevelHandler) WithGroup(name string) slog.Handler {
	return &componentLevelHandler{
		next:   h.next.WithGroup(name),
		base:   h.base,
		levels: h.levels,
		level:  h.level,
	}
}
