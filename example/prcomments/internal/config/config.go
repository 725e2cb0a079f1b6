package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

const (
	// TokenEnv holds the OAuth token. It may also come from a .env file.
	TokenEnv = "CATALYST_GITHUB_OAUTH_TOKEN"
	// WebhookSecretEnv holds the secret configured on the webhook.
	WebhookSecretEnv = "CATALYST_WEBHOOK_SECRET"

	ServiceName    = "catalyst-prcomments"
	ServiceVersion = "0.1.0"

	DefaultInterval = 30 * time.Second
)

// ErrHelp is returned by Load when -h or --help was given.
var ErrHelp = pflag.ErrHelp

// Config is the parsed command line and environment.
type Config struct {
	Owner  string
	Repo   string
	Number int

	BaseURL string
	Token   string

	// Interval between polls. Zero lists once and exits.
	Interval time.Duration

	// WebhookAddr, when set, also accepts pull_request_review_comment
	// deliveries on /webhook.
	WebhookAddr   string
	WebhookSecret string

	MetricsAddr  string
	OTLPEndpoint string
	Debug        bool
}

// Watching reports whether the process keeps running after the first poll.
func (c Config) Watching() bool {
	return c.Interval > 0 || c.WebhookAddr != ""
}

// Load parses args (without the program name). The token is read from the
// environment after loading .env, if one exists.
func Load(args []string) (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	fs := pflag.NewFlagSet(ServiceName, pflag.ContinueOnError)
	fs.StringVar(&cfg.Owner, "owner", "", "repository owner")
	fs.StringVar(&cfg.Repo, "repo", "", "repository name")
	fs.IntVar(&cfg.Number, "pr", 0, "pull request number")
	fs.StringVar(&cfg.BaseURL, "base-url", "", "API origin (default https://api.github.com)")
	fs.DurationVar(&cfg.Interval, "interval", 0, "poll for new comments at this interval; 0 lists once")
	fs.StringVar(&cfg.WebhookAddr, "webhook-addr", "", "receive review comment webhooks on this address, e.g. :8080")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while watching, e.g. :2112")
	fs.StringVar(&cfg.OTLPEndpoint, "otlp-endpoint", "", "export traces over OTLP/gRPC to this endpoint, e.g. localhost:4317")
	fs.BoolVarP(&cfg.Debug, "debug", "d", false, "log every request and response")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected argument: %s", fs.Arg(0))
	}

	cfg.Token = os.Getenv(TokenEnv)
	cfg.WebhookSecret = os.Getenv(WebhookSecretEnv)
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if c.Owner == "" {
		errs = append(errs, errors.New("--owner is required"))
	}
	if c.Repo == "" {
		errs = append(errs, errors.New("--repo is required"))
	}
	if c.Number <= 0 {
		errs = append(errs, errors.New("--pr must be a positive number"))
	}
	if c.Interval < 0 {
		errs = append(errs, errors.New("--interval must not be negative"))
	}
	return errors.Join(errs...)
}
