package logging

import (
	"context"
	"errors"
	"log/slog"
	"slices"
)

// fanoutHandler tees each record to the console and log-file handlers. Every
// target applies its own level check.
type fanoutHandler []slog.Handler

// newFanoutHandler drops nil handlers and avoids wrapping when fewer than
// two remain.
func newFanoutHandler(handlers ...slog.Handler) slog.Handler {
	targets := slices.DeleteFunc(slices.Clone(handlers), func(h slog.Handler) bool { return h == nil })
	switch len(targets) {
	case 0:
		return NoopHandler{}
	case 1:
		return targets[0]
	default:
		return fanoutHandler(targets)
	}
}

func (f fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(f, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

// Handle passes each target its own clone so one handler cannot observe
// attributes another adds. All targets are attempted; errors are joined.
func (f fanoutHandler) Handle(ctx context.Context, record slog.Record) error {
	var errs []error
	for _, h := range f {
		if !h.Enabled(ctx, record.Level) {
			continue
		}
		if err := h.Handle(ctx, record.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (f fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (f fanoutHandler) WithGroup(name string) slog.Handler {
	return f.each(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

func (f fanoutHandler) each(derive func(slog.Handler) slog.Handler) fanoutHandler {
	next := make(fanoutHandler, len(f))
	for i, h := range f {
		next[i] = derive(h)
	}
	return next
}
