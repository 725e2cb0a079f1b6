package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client dispatches single JSON requests to the API and buffers the reply.
//
// Create a Client using New():
//
//	client := httpclient.New(
//	    httpclient.WithToken(os.Getenv("CATALYST_GITHUB_OAUTH_TOKEN")),
//	    httpclient.WithServiceName("catalyst"),
//	)
//
//	reply, err := client.Send(ctx, httpclient.Get, "https://api.github.com/repos/acme/widgets", nil)
//
// Every request carries the Accept media type, the User-Agent,
// "Connection: close", and an Authorization header when a credential was
// configured. A Client is immutable and safe for concurrent use.
type Client struct {
	// httpClient is the underlying HTTP client with transport chain.
	httpClient *http.Client

	// config holds all client configuration.
	config *internalConfig
}

// New creates a Client with OpenTelemetry instrumentation around a
// transport built from the configured Config.
func New(opts ...Option) *Client {
	cfg := newConfig(opts...)
	return newClient(cfg, cfg.buildTransport())
}

// NewWithTransport creates a Client using a custom base transport
// with OpenTelemetry instrumentation wrapped around it.
func NewWithTransport(base http.RoundTripper, opts ...Option) *Client {
	cfg := newConfig(opts...)
	if cfg.MockTransport != nil {
		base = cfg.MockTransport
	}
	if base == nil {
		base = cfg.buildTransport()
	}
	return newClient(cfg, base)
}

func newClient(cfg *internalConfig, base http.RoundTripper) *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: newOtelTransport(base, cfg),
			Timeout:   cfg.httpConfig.Timeout,
		},
		config: cfg,
	}
}

// HTTP returns the underlying *http.Client. Requests made through it are
// traced but do not get the API headers.
func (c *Client) HTTP() *http.Client {
	return c.httpClient
}

// Send performs exactly one request and returns the buffered reply.
//
// A nil body sends no payload and no Content-Type. Any failure before a
// complete response is read is returned as a *NetworkError. Non-2xx
// replies are not errors at this layer.
func (c *Client) Send(ctx context.Context, verb Verb, url string, body []byte) (*Reply, error) {
	if !verb.Valid() {
		return nil, &NetworkError{Verb: verb, URL: url, Err: ErrInvalidVerb}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, string(verb), url, reader)
	if err != nil {
		return nil, &NetworkError{Verb: verb, URL: url, Err: err}
	}
	c.config.applyHeaders(req, body != nil)

	if c.config.Debug {
		logRequest(c.config.Logger, req)
	}
	if c.config.GenerateCurl {
		c.config.Logger.Debug().
			Str("curl", generateCurlCommand(req, body)).
			Msg("HTTP request as cURL")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Verb: verb, URL: url, Err: err}
	}
	defer resp.Body.Close()

	data, err := c.readBody(resp.Body)
	if err != nil {
		return nil, &NetworkError{Verb: verb, URL: url, Err: err}
	}

	if c.config.Debug {
		logResponse(c.config.Logger, resp, len(data), time.Since(start))
	}

	return &Reply{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

func (c *Client) readBody(r io.Reader) ([]byte, error) {
	limit := c.config.httpConfig.MaxResponseBodyBytes
	if limit <= 0 {
		return io.ReadAll(r)
	}

	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, limit)
	}
	return data, nil
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
