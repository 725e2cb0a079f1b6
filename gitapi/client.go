package gitapi

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/kroma-labs/catalyst-go/httpclient"
)

type service struct {
	exec *Executor
	loc  Locator
}

// Client groups the resource services. It holds no per-call state;
// concurrent calls share only the transport.
type Client struct {
	Repos          *RepoService
	PullRequests   *PullRequestService
	CommitComments *CommitCommentService
	IssueComments  *IssueCommentService

	locator Locator
}

type clientConfig struct {
	baseURL string
	exec    []ExecutorOption
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

// WithBaseURL points the client at another API origin, such as an
// Enterprise Server instance or a test server.
func WithBaseURL(base string) ClientOption {
	return func(cfg *clientConfig) {
		cfg.baseURL = base
	}
}

// WithClientLogger is WithExecutorLogger for the client's executor.
func WithClientLogger(logger zerolog.Logger) ClientOption {
	return func(cfg *clientConfig) {
		cfg.exec = append(cfg.exec, WithExecutorLogger(logger))
	}
}

// WithClientMeterProvider is WithExecutorMeterProvider for the client's
// executor.
func WithClientMeterProvider(mp metric.MeterProvider) ClientOption {
	return func(cfg *clientConfig) {
		cfg.exec = append(cfg.exec, WithExecutorMeterProvider(mp))
	}
}

// New returns a Client sending through t.
func New(t Transport, opts ...ClientOption) *Client {
	cfg := &clientConfig{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(cfg)
	}

	common := service{
		exec: NewExecutor(t, cfg.exec...),
		loc:  NewLocator(cfg.baseURL),
	}

	return &Client{
		Repos:          (*RepoService)(&common),
		PullRequests:   (*PullRequestService)(&common),
		CommitComments: (*CommitCommentService)(&common),
		IssueComments:  (*IssueCommentService)(&common),
		locator:        common.loc,
	}
}

// NewFromHTTP builds the transport with httpclient.New.
//
// Example:
//
//	c := gitapi.NewFromHTTP(
//	    []httpclient.Option{httpclient.WithToken(os.Getenv("CATALYST_GITHUB_OAUTH_TOKEN"))},
//	)
//	comments, err := c.CommitComments.List(ctx, gitapi.PR("acme", "widgets", 21))
func NewFromHTTP(httpOpts []httpclient.Option, opts ...ClientOption) *Client {
	return New(httpclient.New(httpOpts...), opts...)
}

// Locator returns the URL builder used by the services.
func (c *Client) Locator() Locator { return c.locator }
