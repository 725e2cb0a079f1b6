package webhook

import (
	"context"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/kroma-labs/catalyst-go/gitapi"
)

// Headers GitHub sets on every delivery, besides gitapi.EventHeader and
// SignatureHeader.
const (
	DeliveryHeader   = "X-GitHub-Delivery"
	HookIDHeader     = "X-GitHub-Hook-ID"
	TargetTypeHeader = "X-GitHub-Hook-Installation-Target-Type"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes middleware. The first one is the outermost.
func Chain(middlewares ...Middleware) Middleware {
	return func(next http.Handler) http.Handler {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

// Info is what the delivery headers say about a request.
type Info struct {
	Delivery   string
	Event      string
	HookID     string
	TargetType string
}

func infoFromHeader(h http.Header) Info {
	return Info{
		Delivery:   h.Get(DeliveryHeader),
		Event:      h.Get(gitapi.EventHeader),
		HookID:     h.Get(HookIDHeader),
		TargetType: h.Get(TargetTypeHeader),
	}
}

type infoKey struct{}

// InfoFromContext returns the Info stored by Describe. Outside a described
// request it returns the zero Info.
func InfoFromContext(ctx context.Context) Info {
	info, _ := ctx.Value(infoKey{}).(Info)
	return info
}

// DeliveryIDFromContext is InfoFromContext(ctx).Delivery.
func DeliveryIDFromContext(ctx context.Context) string {
	return InfoFromContext(ctx).Delivery
}

// describe prefers the Info already in the context and reads the headers
// otherwise, so the middleware below also works without Describe.
func describe(r *http.Request) Info {
	if info, ok := r.Context().Value(infoKey{}).(Info); ok {
		return info
	}
	return infoFromHeader(r.Header)
}

// Describe reads the delivery headers once and stores them in the request
// context.
func Describe() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), infoKey{}, infoFromHeader(r.Header))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Recovery turns a panicking event handler into a 500 reply, unless the
// handler already started writing one.
func Recovery(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := recordStatus(w)
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				info := describe(r)
				logger.Error().
					Interface("panic", v).
					Str("event", info.Event).
					Str("delivery", info.Delivery).
					Bytes("stack", debug.Stack()).
					Msg("panic recovered")
				if !rec.wrote {
					writeError(rec, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(rec, r)
		})
	}
}

func levelFor(status int) zerolog.Level {
	switch {
	case status >= 500:
		return zerolog.ErrorLevel
	case status >= 400:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}

// Logger writes one line per delivery, at warn for 4xx and error for 5xx.
func Logger(logger zerolog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := recordStatus(w)
			next.ServeHTTP(rec, r)

			info := describe(r)
			logger.WithLevel(levelFor(rec.status)).
				Str("event", info.Event).
				Str("delivery", info.Delivery).
				Str("hook_id", info.HookID).
				Int("status", rec.status).
				Int64("request_bytes", r.ContentLength).
				Int("reply_bytes", rec.written).
				Dur("duration", time.Since(start)).
				Msg("delivery handled")
		})
	}
}

// Tracing starts a server span per delivery, continuing any trace context
// in the request headers. Only 5xx replies mark the span as failed; a
// rejected delivery is the sender's problem.
func Tracing(tp trace.TracerProvider, propagator propagation.TextMapPropagator) Middleware {
	tracer := tp.Tracer(scope)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			info := describe(r)
			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.URLPath(r.URL.Path),
				semconv.UserAgentOriginal(r.UserAgent()),
				attribute.String("github.event", info.Event),
			}
			if info.Delivery != "" {
				attrs = append(attrs, attribute.String("github.delivery", info.Delivery))
			}
			if info.HookID != "" {
				attrs = append(attrs, attribute.String("github.hook_id", info.HookID))
			}

			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "webhook "+info.Event,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attrs...),
			)
			defer span.End()

			rec := recordStatus(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			span.SetAttributes(semconv.HTTPResponseStatusCode(rec.status))
			if rec.status >= 500 {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}
		})
	}
}
