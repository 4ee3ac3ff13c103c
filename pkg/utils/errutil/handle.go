package errutil

import (
	"context"
	"log/slog"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/ctxlog"
)

// Handle logs err with msg and reports it to Sentry when a Sentry client is
// configured. attrs are slog style key/value pairs or slog.Attr values; they
// are attached to the Sentry event as the "error" context. It is used for
// internal errors only, never for delivery outcomes.
func Handle(ctx context.Context, err error, msg string, attrs ...any) {
	if err == nil {
		return
	}

	args := append([]any{slog.Any("error", err)}, attrs...)
	ctxlog.From(ctx).Error(msg, args...)

	hub := sentry.CurrentHub()
	if hub.Client() == nil {
		return
	}

	hub = hub.Clone()
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		scope.SetContext("error", toContext(attrs))
		hub.CaptureException(err)
	})
}

// toContext converts slog style arguments into a Sentry context
func toContext(attrs []any) sentry.Context {
	c := sentry.Context{}
	for i := 0; i < len(attrs); i++ {
		switch v := attrs[i].(type) {
		case slog.Attr:
			c[v.Key] = v.Value.Any()
		case string:
			if i+1 < len(attrs) {
				c[v] = attrs[i+1]
				i++
			}
		}
	}
	return c
}
