package httpclient

import (
	"fmt"
	"net/http"
	"net/http/httptrace"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

var _ http.RoundTripper = (*otelTransport)(nil)

// otelTransport traces and measures each round trip to the API.
type otelTransport struct {
	base http.RoundTripper
	cfg  *internalConfig
}

func newOtelTransport(base http.RoundTripper, cfg *internalConfig) *otelTransport {
	return &otelTransport{base: base, cfg: cfg}
}

func (t *otelTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	m := t.cfg.Metrics
	common := t.cfg.baseAttributes()

	ctx, span := t.cfg.Tracer.Start(req.Context(), "HTTP "+req.Method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(t.spanAttributes(req)...),
	)
	defer span.End()

	t.cfg.Propagators.Inject(ctx, propagation.HeaderCarrier(req.Header))

	defer m.trackInflight(ctx, common)()
	if req.ContentLength > 0 {
		m.recordRequestBodySize(ctx, req.ContentLength, common)
	}

	var nt *networkTrace
	if t.cfg.EnableNetworkTrace {
		nt = &networkTrace{}
		ctx = httptrace.WithClientTrace(ctx, createClientTrace(nt))
	}

	resp, err := t.base.RoundTrip(req.WithContext(ctx))
	elapsed := time.Since(start)

	if nt != nil {
		nt.addTraceEvents(span)
		nt.recordTimingMetrics(ctx, m, common)
	}

	if err != nil {
		kind := classifyError(err)
		setSpanError(span, err, kind)
		m.recordError(ctx, kind, common)
		m.recordRequestDuration(ctx, elapsed, t.durationAttributes(req, 0, kind))
		return nil, err
	}

	span.SetAttributes(responseAttributes(resp)...)
	kind := errorTypeFromStatusCode(resp.StatusCode)
	if kind != "" {
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", resp.StatusCode))
		span.SetAttributes(attribute.String("error.type", kind))
	}

	if resp.ContentLength > 0 {
		m.recordResponseBodySize(ctx, resp.ContentLength, common)
	}
	if rl, ok := parseRateLimit(resp.Header); ok {
		m.recordRateLimit(ctx, rl, common)
	}
	m.recordRequestDuration(ctx, elapsed, t.durationAttributes(req, resp.StatusCode, kind))

	return resp, nil
}

// spanAttributes describes the outgoing request. The URL is redacted; the
// Authorization header is never recorded.
func (t *otelTransport) spanAttributes(req *http.Request) []attribute.KeyValue {
	attrs := append(t.cfg.baseAttributes(), attribute.String("http.request.method", req.Method))

	if req.URL != nil {
		attrs = append(attrs,
			attribute.String("url.full", req.URL.Redacted()),
			attribute.String("url.scheme", req.URL.Scheme),
		)
		attrs = append(attrs, serverAttributes(req)...)
	}
	if req.ContentLength > 0 {
		attrs = append(attrs, attribute.Int64("http.request.body.size", req.ContentLength))
	}
	if ua := req.UserAgent(); ua != "" {
		attrs = append(attrs, attribute.String("user_agent.original", ua))
	}
	if id := req.Header.Get(HeaderRequestID); id != "" {
		attrs = append(attrs, attribute.String("http.request.id", id))
	}
	attrs = append(attrs, attribute.Bool("github.authenticated", req.Header.Get(HeaderAuthorization) != ""))

	return attrs
}

// durationAttributes is the low-cardinality set used on the duration
// histogram. The status is left out when no response arrived.
func (t *otelTransport) durationAttributes(req *http.Request, status int, errorType string) []attribute.KeyValue {
	attrs := append(t.cfg.baseAttributes(), attribute.String("http.request.method", req.Method))
	if req.URL != nil {
		attrs = append(attrs, serverAttributes(req)...)
	}
	if status != 0 {
		attrs = append(attrs, attribute.Int("http.response.status_code", status))
	}
	if errorType != "" {
		attrs = append(attrs, attribute.String("error.type", errorType))
	}
	return attrs
}

// serverAttributes returns server.address and server.port. A missing port
// is derived from the scheme.
func serverAttributes(req *http.Request) []attribute.KeyValue {
	var attrs []attribute.KeyValue
	if host := req.URL.Hostname(); host != "" {
		attrs = append(attrs, attribute.String("server.address", host))
	}

	port, err := strconv.Atoi(req.URL.Port())
	if err != nil {
		port = map[string]int{"http": 80, "https": 443}[req.URL.Scheme]
	}
	if port != 0 {
		attrs = append(attrs, attribute.Int("server.port", port))
	}
	return attrs
}

// responseAttributes records the status, protocol, body size, and the
// API's rate limit and request ID headers.
func responseAttributes(resp *http.Response) []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.Int("http.response.status_code", resp.StatusCode)}

	if resp.ContentLength > 0 {
		attrs = append(attrs, attribute.Int64("http.response.body.size", resp.ContentLength))
	}
	if v, ok := strings.CutPrefix(resp.Proto, "HTTP/"); ok {
		attrs = append(attrs, attribute.String("network.protocol.version", strings.TrimSuffix(v, ".0")))
	}
	if rl, ok := parseRateLimit(resp.Header); ok {
		attrs = append(attrs, rl.attributes()...)
	}
	if id := resp.Header.Get(HeaderGitHubRequestID); id != "" {
		attrs = append(attrs, attribute.String("github.request_id", id))
	}
	return attrs
}
