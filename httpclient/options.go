package httpclient

import (
	"crypto/tls"
	"net/url"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	scope = "github.com/kroma-labs/catalyst-go/httpclient"

	// DefaultMediaType is the versioned media type sent as Accept.
	DefaultMediaType = "application/vnd.github.v3+json"

	DefaultUserAgent = "CatalystBot"
)

type internalConfig struct {
	httpConfig Config

	// Request identity.
	Credential *Credential
	UserAgent  string
	MediaType  string
	RequestID  bool

	// Telemetry. Tracer, Meter and Metrics are derived in newConfig.
	TracerProvider     trace.TracerProvider
	MeterProvider      metric.MeterProvider
	Propagators        propagation.TextMapPropagator
	ServiceName        string
	EnableNetworkTrace bool
	Tracer             trace.Tracer
	Meter              metric.Meter
	Metrics            *metrics

	TLSConfig            *tls.Config
	ProxyURL             *url.URL
	ProxyFromEnvironment bool
	MockTransport        *MockTransport

	Logger       zerolog.Logger
	Debug        bool
	GenerateCurl bool
}

func newConfig(opts ...Option) *internalConfig {
	cfg := &internalConfig{
		httpConfig:           DefaultConfig(),
		UserAgent:            DefaultUserAgent,
		MediaType:            DefaultMediaType,
		TracerProvider:       otel.GetTracerProvider(),
		MeterProvider:        otel.GetMeterProvider(),
		EnableNetworkTrace:   true,
		ProxyFromEnvironment: true,
		Logger:               debugLogger,
	}
	for _, apply := range opts {
		apply(cfg)
	}

	if cfg.Propagators == nil {
		cfg.Propagators = propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{})
	}
	cfg.Tracer = cfg.TracerProvider.Tracer(scope)
	cfg.Meter = cfg.MeterProvider.Meter(scope)
	// A meter that rejects an instrument leaves Metrics nil, which records
	// nothing.
	cfg.Metrics, _ = newMetrics(cfg.Meter)
	return cfg
}

// baseAttributes are shared by every span and measurement of the client.
func (cfg *internalConfig) baseAttributes() []attribute.KeyValue {
	if cfg.ServiceName == "" {
		return nil
	}
	return []attribute.KeyValue{attribute.String("http.client.name", cfg.ServiceName)}
}

// Option configures a Client.
type Option func(*internalConfig)

// WithConfig replaces the transport settings.
func WithConfig(c Config) Option {
	return func(cfg *internalConfig) { cfg.httpConfig = c }
}

// WithCredential sets the Authorization credential. Without one, requests
// carry no Authorization header.
func WithCredential(c Credential) Option {
	return func(cfg *internalConfig) { cfg.Credential = &c }
}

// WithToken authenticates with an OAuth or personal access token under the
// "token" scheme. An empty token leaves the client unauthenticated, so
//
//	httpclient.WithToken(os.Getenv("CATALYST_GITHUB_OAUTH_TOKEN"))
//
// is safe when the variable is unset.
func WithToken(token string) Option {
	return withSecret(token, TokenCredential)
}

// WithBearerToken authenticates under the "Bearer" scheme, as GitHub App
// installation tokens do.
func WithBearerToken(token string) Option {
	return withSecret(token, BearerCredential)
}

func withSecret(token string, mk func(string) Credential) Option {
	return func(cfg *internalConfig) {
		cfg.Credential = nil
		if token != "" {
			c := mk(token)
			cfg.Credential = &c
		}
	}
}

// WithUserAgent overrides User-Agent. Empty values are ignored.
func WithUserAgent(ua string) Option {
	return func(cfg *internalConfig) {
		if ua != "" {
			cfg.UserAgent = ua
		}
	}
}

// WithMediaType overrides Accept, e.g. to opt into a preview media type.
// Empty values are ignored.
func WithMediaType(mediaType string) Option {
	return func(cfg *internalConfig) {
		if mediaType != "" {
			cfg.MediaType = mediaType
		}
	}
}

// WithRequestID stamps every request with a random X-Request-ID.
func WithRequestID() Option {
	return func(cfg *internalConfig) { cfg.RequestID = true }
}

// WithServiceName is recorded as http.client.name on spans and metrics.
func WithServiceName(name string) Option {
	return func(cfg *internalConfig) { cfg.ServiceName = name }
}

// WithTracerProvider defaults to otel.GetTracerProvider().
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *internalConfig) { cfg.TracerProvider = tp }
}

// WithMeterProvider defaults to otel.GetMeterProvider().
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *internalConfig) { cfg.MeterProvider = mp }
}

// WithPropagators sets how trace context is injected into outgoing
// headers. Default: W3C TraceContext and Baggage.
func WithPropagators(p propagation.TextMapPropagator) Option {
	return func(cfg *internalConfig) { cfg.Propagators = p }
}

// WithDisableNetworkTrace turns off DNS, connect, TLS and first-byte
// timing.
func WithDisableNetworkTrace() Option {
	return func(cfg *internalConfig) { cfg.EnableNetworkTrace = false }
}

// WithTLSConfig is mostly useful for an Enterprise host with a private CA.
func WithTLSConfig(tlsCfg *tls.Config) Option {
	return func(cfg *internalConfig) { cfg.TLSConfig = tlsCfg }
}

// WithProxyURL sends every request through proxyURL and ignores the
// proxy environment variables.
func WithProxyURL(proxyURL *url.URL) Option {
	return func(cfg *internalConfig) {
		cfg.ProxyURL = proxyURL
		cfg.ProxyFromEnvironment = false
	}
}

// WithProxyFromEnvironment toggles HTTP_PROXY, HTTPS_PROXY and NO_PROXY
// handling. Default: true.
func WithProxyFromEnvironment(enabled bool) Option {
	return func(cfg *internalConfig) { cfg.ProxyFromEnvironment = enabled }
}

// WithLogger sets the destination of debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *internalConfig) { cfg.Logger = logger }
}

// WithDebug logs one line per request and one per response.
func WithDebug(enabled bool) Option {
	return func(cfg *internalConfig) { cfg.Debug = enabled }
}

// WithGenerateCurl logs an equivalent cURL command per request, with the
// Authorization value redacted.
func WithGenerateCurl(enabled bool) Option {
	return func(cfg *internalConfig) { cfg.GenerateCurl = enabled }
}
