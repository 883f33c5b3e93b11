package cache

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/flexprice/iamport-go/internal/cache"

// StartCacheSpan creates a new span for a cache operation.
// Without a registered tracer provider the span is a no-op.
func StartCacheSpan(ctx context.Context, cache, operation string, params map[string]interface{}) trace.Span {
	_, span := otel.Tracer(tracerName).Start(ctx, "cache."+cache+"."+operation)

	attrs := []attribute.KeyValue{
		attribute.String("cache", cache),
		attribute.String("operation", operation),
	}
	for k, v := range params {
		if s, ok := v.(string); ok {
			attrs = append(attrs, attribute.String(k, s))
		}
	}
	span.SetAttributes(attrs...)

	return span
}

// FinishSpan safely finishes a span, handling nil spans
func FinishSpan(span trace.Span) {
	if span != nil {
		span.End()
	}
}

// SetSpanHit records whether a lookup found its key
func SetSpanHit(span trace.Span, hit bool) {
	if span != nil {
		span.SetAttributes(attribute.Bool("cache.hit", hit))
	}
}
