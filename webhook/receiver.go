package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kroma-labs/catalyst-go/gitapi"
)

const scope = "github.com/kroma-labs/catalyst-go/webhook"

const (
	// SignatureHeader carries the HMAC-SHA256 of the body, as "sha256=<hex>".
	SignatureHeader = "X-Hub-Signature-256"

	// DefaultMaxBodyBytes is the largest payload GitHub delivers.
	DefaultMaxBodyBytes = 25 << 20

	eventPing = "ping"
)

// Delivery describes the request an event arrived in.
type Delivery struct {
	ID      string
	Event   string
	Payload []byte
}

type handlerFunc func(ctx context.Context, d Delivery, event any) error

// Receiver is an http.Handler accepting webhook deliveries. Register
// handlers before serving; the handler set is not safe to change while
// requests are in flight.
//
// Replies:
//   - 204 once the event's handler returned nil
//   - 202 for events with no registered handler
//   - 200 for ping
//   - 400 for a missing event name or a payload that does not decode
//   - 401 for a missing or wrong signature when a secret is set
//   - 405 for anything but POST
//   - 413 for bodies over the size limit
//   - 500 when the handler returned an error or panicked
type Receiver struct {
	secret   []byte
	maxBody  int64
	logger   zerolog.Logger
	handlers map[string]handlerFunc

	deliveries metric.Int64Counter
	handler    http.Handler
}

type config struct {
	secret         string
	maxBody        int64
	logger         zerolog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	propagators    propagation.TextMapPropagator
}

// Option configures a Receiver.
type Option func(*config)

// WithSecret enables signature checks against the webhook secret.
func WithSecret(secret string) Option {
	return func(c *config) {
		c.secret = secret
	}
}

// WithMaxBodyBytes limits accepted payload size. Non-positive values keep
// DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option {
	return func(c *config) {
		if n > 0 {
			c.maxBody = n
		}
	}
}

// WithLogger sets the logger for delivery lines and recovered panics.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithTracerProvider sets the tracer provider. Default: otel.GetTracerProvider().
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider. Default: otel.GetMeterProvider().
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *config) {
		c.meterProvider = mp
	}
}

// WithPropagators sets the propagator used to continue incoming traces.
// Default: otel.GetTextMapPropagator().
func WithPropagators(p propagation.TextMapPropagator) Option {
	return func(c *config) {
		c.propagators = p
	}
}

// NewReceiver creates a Receiver with no handlers.
func NewReceiver(opts ...Option) *Receiver {
	cfg := &config{
		maxBody:        DefaultMaxBodyBytes,
		logger:         zerolog.Nop(),
		tracerProvider: otel.GetTracerProvider(),
		meterProvider:  otel.GetMeterProvider(),
		propagators:    otel.GetTextMapPropagator(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	deliveries, _ := cfg.meterProvider.Meter(scope).Int64Counter(
		"webhook.deliveries",
		metric.WithDescription("Webhook deliveries received, by event and reply status"),
		metric.WithUnit("{delivery}"),
	)

	r := &Receiver{
		maxBody:    cfg.maxBody,
		logger:     cfg.logger,
		handlers:   make(map[string]handlerFunc),
		deliveries: deliveries,
	}
	if cfg.secret != "" {
		r.secret = []byte(cfg.secret)
	}

	r.handler = Chain(
		Describe(),
		Tracing(cfg.tracerProvider, cfg.propagators),
		Logger(cfg.logger),
		Recovery(cfg.logger),
	)(http.HandlerFunc(r.serve))
	return r
}

func on[E any](r *Receiver, event string, fn func(context.Context, Delivery, *E) error) {
	r.handlers[event] = func(ctx context.Context, d Delivery, v any) error {
		ev, ok := v.(*E)
		if !ok {
			return errors.New("webhook: unexpected event type for " + event)
		}
		return fn(ctx, d, ev)
	}
}

// OnPush registers the handler for push events.
func (r *Receiver) OnPush(fn func(context.Context, Delivery, *gitapi.PushEvent) error) {
	on(r, gitapi.EventPush, fn)
}

// OnPullRequest registers the handler for pull_request events.
func (r *Receiver) OnPullRequest(fn func(context.Context, Delivery, *gitapi.PullRequestEvent) error) {
	on(r, gitapi.EventPullRequest, fn)
}

// OnIssueComment registers the handler for issue_comment events.
func (r *Receiver) OnIssueComment(fn func(context.Context, Delivery, *gitapi.IssueCommentEvent) error) {
	on(r, gitapi.EventIssueComment, fn)
}

// OnPullRequestReviewComment registers the handler for
// pull_request_review_comment events.
func (r *Receiver) OnPullRequestReviewComment(
	fn func(context.Context, Delivery, *gitapi.PullRequestReviewCommentEvent) error,
) {
	on(r, gitapi.EventPullRequestReviewComment, fn)
}

func (r *Receiver) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Receiver) serve(w http.ResponseWriter, req *http.Request) {
	event := describe(req).Event
	status, message := r.handle(req, event)

	if r.deliveries != nil {
		r.deliveries.Add(req.Context(), 1, metric.WithAttributes(
			attribute.String("github.event", event),
			attribute.Int("http.response.status_code", status),
		))
	}

	switch {
	case status >= 400:
		writeError(w, status, message)
	case status == http.StatusNoContent:
		w.WriteHeader(status)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, message)
	}
}

func (r *Receiver) handle(req *http.Request, event string) (int, string) {
	if req.Method != http.MethodPost {
		return http.StatusMethodNotAllowed, "method not allowed"
	}

	body, err := io.ReadAll(io.LimitReader(req.Body, r.maxBody+1))
	if err != nil {
		return http.StatusBadRequest, "unreadable body"
	}
	if int64(len(body)) > r.maxBody {
		return http.StatusRequestEntityTooLarge, "payload too large"
	}

	if r.secret != nil && !r.validSignature(req.Header.Get(SignatureHeader), body) {
		return http.StatusUnauthorized, "signature mismatch"
	}

	switch event {
	case "":
		return http.StatusBadRequest, "missing " + gitapi.EventHeader + " header"
	case eventPing:
		return http.StatusOK, "pong"
	}

	fn, ok := r.handlers[event]
	if !ok {
		return http.StatusAccepted, "ignored"
	}

	value, err := gitapi.DecodeEvent(event, body)
	if err != nil {
		r.logger.Warn().Err(err).Str("event", event).Msg("undecodable delivery")
		return http.StatusBadRequest, "malformed payload"
	}

	d := Delivery{
		ID:      describe(req).Delivery,
		Event:   event,
		Payload: body,
	}
	if err := fn(req.Context(), d, value); err != nil {
		r.logger.Error().Err(err).Str("event", event).Str("delivery", d.ID).Msg("event handler failed")
		return http.StatusInternalServerError, "handler failed"
	}
	return http.StatusNoContent, ""
}

// validSignature compares header against the HMAC of body in constant time.
func (r *Receiver) validSignature(header string, body []byte) bool {
	hexSum, ok := strings.CutPrefix(header, "sha256=")
	if !ok {
		return false
	}
	got, err := hex.DecodeString(hexSum)
	if err != nil {
		return false
	}
	return hmac.Equal(got, Sign(r.secret, body))
}

// Sign returns the HMAC-SHA256 of body under secret, the raw form of the
// SignatureHeader value.
func Sign(secret, body []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return mac.Sum(nil)
}

// SignatureValue formats a SignatureHeader value for body.
func SignatureValue(secret, body []byte) string {
	return "sha256=" + hex.EncodeToString(Sign(secret, body))
}
