package logger

import (
	"context"

	"github.com/stockpile/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type contextKey string

const (
	loggerKey    contextKey = "logger"
	requestIDKey contextKey = "request_id"
)

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext retrieves the logger from context, a no-op logger if none is attached
func FromContext(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(loggerKey).(*zap.Logger); ok {
		return logger
	}
	return zap.NewNop()
}

// WithRequestID adds request ID to context and returns the enriched logger
func WithRequestID(ctx context.Context, logger *zap.Logger, requestID string) (context.Context, *zap.Logger) {
	ctx = context.WithValue(ctx, requestIDKey, requestID)
	enriched := logger.With(zap.String("request_id", requestID))
	return WithContext(ctx, enriched), enriched
}

// GetRequestID retrieves request ID from context
func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(requestIDKey).(string); ok {
		return requestID
	}
	return ""
}

// WithActor stores the authenticated caller in ctx and returns a logger
// carrying its user and tenant ids.
func WithActor(ctx context.Context, logger *zap.Logger, actor shared.Actor) (context.Context, *zap.Logger) {
	ctx = shared.WithActor(ctx, actor)
	enriched := logger.With(ActorFields(actor)...)
	return WithContext(ctx, enriched), enriched
}

// ActorFields renders the caller as log fields.
func ActorFields(actor shared.Actor) []zap.Field {
	return []zap.Field{
		zap.Int64("user_id", actor.UserID),
		zap.String("tenant_id", actor.TenantID.String()),
	}
}

// WithTraceContext adds trace_id and span_id from the active span.
// The logger is returned unchanged when no valid span exists.
func WithTraceContext(ctx context.Context, logger *zap.Logger) *zap.Logger {
	spanCtx := trace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return logger
	}
	return logger.With(
		zap.String("trace_id", spanCtx.TraceID().String()),
		zap.String("span_id", spanCtx.SpanID().String()),
	)
}

// L returns the request logger from ctx, enriched with trace correlation.
//
// Usage: logger.L(ctx).Info("message", zap.String("key", "value"))
func L(ctx context.Context) *zap.Logger {
	return WithTraceContext(ctx, FromContext(ctx))
}
