package gitapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/kroma-labs/catalyst-go/codec"
	"github.com/kroma-labs/catalyst-go/httpclient"
)

const scope = "github.com/kroma-labs/catalyst-go/gitapi"

// Transport sends one request and returns the buffered reply.
// *httpclient.Client implements it.
type Transport interface {
	Send(ctx context.Context, verb httpclient.Verb, url string, body []byte) (*httpclient.Reply, error)
}

var _ Transport = (*httpclient.Client)(nil)

// Executor runs the encode → dispatch → decode pipeline against a
// Transport. It holds no mutable state and is safe for concurrent use.
type Executor struct {
	transport Transport
	logger    zerolog.Logger
	failures  metric.Int64Counter
}

type executorConfig struct {
	logger        zerolog.Logger
	meterProvider metric.MeterProvider
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*executorConfig)

// WithExecutorLogger logs one debug line per call.
func WithExecutorLogger(logger zerolog.Logger) ExecutorOption {
	return func(cfg *executorConfig) {
		cfg.logger = logger
	}
}

// WithExecutorMeterProvider sets the provider for the failure counter.
// Default: otel.GetMeterProvider().
func WithExecutorMeterProvider(mp metric.MeterProvider) ExecutorOption {
	return func(cfg *executorConfig) {
		cfg.meterProvider = mp
	}
}

// NewExecutor creates an Executor dispatching through t.
func NewExecutor(t Transport, opts ...ExecutorOption) *Executor {
	cfg := &executorConfig{
		logger:        zerolog.Nop(),
		meterProvider: otel.GetMeterProvider(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	// A nil counter only disables the metric.
	failures, _ := cfg.meterProvider.Meter(scope).Int64Counter(
		"gitapi.request.failures",
		metric.WithDescription("API calls that failed, by error kind"),
		metric.WithUnit("{call}"),
	)

	return &Executor{
		transport: t,
		logger:    cfg.logger,
		failures:  failures,
	}
}

// SendWithoutPayload dispatches a request with no body and decodes a
// successful reply into R.
func SendWithoutPayload[R any](
	ctx context.Context,
	e *Executor,
	verb httpclient.Verb,
	endpoint string,
) (R, error) {
	return dispatch[R](ctx, e, verb, endpoint, nil)
}

// SendWithPayload encodes payload as JSON, dispatches it, and decodes a
// successful reply into R. An encode failure returns before anything is
// sent.
func SendWithPayload[R, P any](
	ctx context.Context,
	e *Executor,
	verb httpclient.Verb,
	endpoint string,
	payload P,
) (R, error) {
	body, err := codec.Encode(payload)
	if err != nil {
		var zero R
		return zero, e.fail(ctx, time.Now(), &Error{
			Kind: KindEncode,
			Op:   verb.String(),
			URL:  endpoint,
			Err:  err,
		})
	}
	return dispatch[R](ctx, e, verb, endpoint, body)
}

func dispatch[R any](
	ctx context.Context,
	e *Executor,
	verb httpclient.Verb,
	endpoint string,
	body []byte,
) (R, error) {
	var zero R
	start := time.Now()

	reply, err := e.transport.Send(ctx, verb, endpoint, body)
	if err != nil {
		return zero, e.fail(ctx, start, &Error{
			Kind: KindNetwork,
			Op:   verb.String(),
			URL:  endpoint,
			Err:  err,
		})
	}

	if !reply.IsSuccess() {
		return zero, e.fail(ctx, start, statusError(verb, endpoint, reply))
	}

	out, err := codec.Decode[R](reply.Body)
	if err != nil {
		return zero, e.fail(ctx, start, &Error{
			Kind:       KindDecode,
			Op:         verb.String(),
			URL:        endpoint,
			StatusCode: reply.StatusCode,
			Err:        err,
		})
	}

	e.logger.Debug().
		Str("verb", verb.String()).
		Str("url", endpoint).
		Int("status", reply.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api call")

	return out, nil
}

// statusError turns a non-2xx reply into a KindDecode error, keeping the
// API's error document when the body holds one.
func statusError(verb httpclient.Verb, endpoint string, reply *httpclient.Reply) *Error {
	e := &Error{
		Kind:       KindDecode,
		Op:         verb.String(),
		URL:        endpoint,
		StatusCode: reply.StatusCode,
		Err:        fmt.Errorf("%w %d", ErrUnexpectedStatus, reply.StatusCode),
	}

	if apiErr, err := codec.Decode[APIError](reply.Body); err == nil && apiErr.Message != "" {
		e.API = &apiErr
		e.Err = fmt.Errorf("%w %d: %w", ErrUnexpectedStatus, reply.StatusCode, &apiErr)
	}
	return e
}

func (e *Executor) fail(ctx context.Context, start time.Time, err *Error) error {
	if e.failures != nil {
		e.failures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("error.kind", err.Kind.String()),
			attribute.String("http.request.method", err.Op),
		))
	}

	ev := e.logger.Debug().
		Str("verb", err.Op).
		Str("url", err.URL).
		Str("kind", err.Kind.String()).
		Dur("duration", time.Since(start))
	if err.StatusCode != 0 {
		ev = ev.Int("status", err.StatusCode)
	}
	var netErr *httpclient.NetworkError
	if errors.As(err.Err, &netErr) {
		ev = ev.Str("error_type", netErr.ErrorType())
	}
	ev.Err(err.Err).Msg("api call failed")

	return err
}
