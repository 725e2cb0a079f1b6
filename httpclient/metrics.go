package httpclient

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// metrics holds the instruments recorded by the transport. Every method is
// a no-op on a nil receiver, which is what newConfig leaves behind when the
// meter refuses an instrument.
type metrics struct {
	duration     metric.Float64Histogram
	requestSize  metric.Int64Histogram
	responseSize metric.Int64Histogram
	inflight     metric.Int64UpDownCounter
	failures     metric.Int64Counter

	// phases is populated only for phases with an instrument; network
	// tracing must be enabled for any of them to be recorded.
	phases [numPhases]metric.Float64Histogram

	// rateRemaining is the last reported X-RateLimit-Remaining per resource.
	rateRemaining metric.Int64Gauge
}

var (
	latencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30}
	phaseBuckets   = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
	sizeBuckets    = []float64{0, 256, 1 << 10, 8 << 10, 64 << 10, 512 << 10, 4 << 20, 25 << 20}
)

type phaseInstrument struct {
	name, description string
}

var phaseInstruments = [numPhases]phaseInstrument{
	phaseDNS:       {"http.client.dns.duration", "DNS lookup duration"},
	phaseConnect:   {"http.client.connection.duration", "Time to establish the TCP connection"},
	phaseTLS:       {"http.client.tls.duration", "TLS handshake duration"},
	phaseFirstByte: {"http.client.ttfb", "Time from request written to first response byte"},
}

// newMetrics registers the instruments on meter and stops at the first
// failure.
func newMetrics(meter metric.Meter) (*metrics, error) {
	b := instrumentBuilder{meter: meter}
	m := &metrics{
		duration: b.seconds("http.client.request.duration",
			"Duration of API requests", latencyBuckets),
		requestSize: b.bytes("http.client.request.body.size",
			"Size of API request bodies"),
		responseSize: b.bytes("http.client.response.body.size",
			"Size of API response bodies"),
	}
	for p, in := range phaseInstruments {
		m.phases[p] = b.seconds(in.name, in.description, phaseBuckets)
	}
	if b.err != nil {
		return nil, b.err
	}

	var err error
	if m.inflight, err = meter.Int64UpDownCounter("http.client.active_requests",
		metric.WithDescription("API requests in flight"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.failures, err = meter.Int64Counter("http.client.request.error",
		metric.WithDescription("API requests that produced no reply, by error.type"),
		metric.WithUnit("{error}"),
	); err != nil {
		return nil, err
	}
	if m.rateRemaining, err = meter.Int64Gauge("github.ratelimit.remaining",
		metric.WithDescription("Requests left in the current rate limit window"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// instrumentBuilder creates histograms until the first error, then returns
// nil for the rest.
type instrumentBuilder struct {
	meter metric.Meter
	err   error
}

func (b *instrumentBuilder) seconds(name, desc string, buckets []float64) metric.Float64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Float64Histogram(name,
		metric.WithDescription(desc),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(buckets...),
	)
	b.err = err
	return h
}

func (b *instrumentBuilder) bytes(name, desc string) metric.Int64Histogram {
	if b.err != nil {
		return nil
	}
	h, err := b.meter.Int64Histogram(name,
		metric.WithDescription(desc),
		metric.WithUnit("By"),
		metric.WithExplicitBucketBoundaries(sizeBuckets...),
	)
	b.err = err
	return h
}

func (m *metrics) recordRequestDuration(ctx context.Context, d time.Duration, attrs []attribute.KeyValue) {
	if m != nil && m.duration != nil {
		m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
	}
}

func (m *metrics) recordRequestBodySize(ctx context.Context, n int64, attrs []attribute.KeyValue) {
	if m != nil && m.requestSize != nil {
		m.requestSize.Record(ctx, n, metric.WithAttributes(attrs...))
	}
}

func (m *metrics) recordResponseBodySize(ctx context.Context, n int64, attrs []attribute.KeyValue) {
	if m != nil && m.responseSize != nil {
		m.responseSize.Record(ctx, n, metric.WithAttributes(attrs...))
	}
}

func (m *metrics) recordPhase(ctx context.Context, p netPhase, d time.Duration, attrs []attribute.KeyValue) {
	if m != nil && p < numPhases && m.phases[p] != nil {
		m.phases[p].Record(ctx, d.Seconds(), metric.WithAttributes(attrs...))
	}
}

// trackInflight increments the in-flight gauge and returns the matching
// decrement.
func (m *metrics) trackInflight(ctx context.Context, attrs []attribute.KeyValue) (done func()) {
	if m == nil || m.inflight == nil {
		return func() {}
	}
	set := metric.WithAttributes(attrs...)
	m.inflight.Add(ctx, 1, set)
	return func() { m.inflight.Add(ctx, -1, set) }
}

func (m *metrics) recordError(ctx context.Context, errorType string, attrs []attribute.KeyValue) {
	if m == nil || m.failures == nil {
		return
	}
	withType := append(attrs[:len(attrs):len(attrs)], attribute.String("error.type", errorType))
	m.failures.Add(ctx, 1, metric.WithAttributes(withType...))
}

func (m *metrics) recordRateLimit(ctx context.Context, rl RateLimit, attrs []attribute.KeyValue) {
	if m == nil || m.rateRemaining == nil {
		return
	}
	resource := rl.Resource
	if resource == "" {
		resource = "core"
	}
	withResource := append(attrs[:len(attrs):len(attrs)], attribute.String("github.ratelimit.resource", resource))
	m.rateRemaining.Record(ctx, int64(rl.Remaining), metric.WithAttributes(withResource...))
}
