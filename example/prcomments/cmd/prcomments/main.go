package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"

	"github.com/kroma-labs/catalyst-go/example/prcomments/internal/config"
	"github.com/kroma-labs/catalyst-go/example/prcomments/internal/telemetry"
	"github.com/kroma-labs/catalyst-go/example/prcomments/internal/watcher"
	"github.com/kroma-labs/catalyst-go/gitapi"
	"github.com/kroma-labs/catalyst-go/httpclient"
	"github.com/kroma-labs/catalyst-go/webhook"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, config.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "prcomments:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.OTLPEndpoint)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	if cfg.Token == "" {
		logger.Warn().Msgf("%s is not set; requests are unauthenticated", config.TokenEnv)
	}

	client := gitapi.NewFromHTTP(
		[]httpclient.Option{
			httpclient.WithToken(cfg.Token),
			httpclient.WithServiceName(config.ServiceName),
			httpclient.WithLogger(logger),
			httpclient.WithDebug(cfg.Debug),
		},
		gitapi.WithBaseURL(cfg.BaseURL),
		gitapi.WithClientLogger(logger),
	)

	ref := gitapi.PR(cfg.Owner, cfg.Repo, cfg.Number)
	w := watcher.New(client.CommitComments, ref, os.Stdout, logger)
	tracer := otel.Tracer(config.ServiceName)

	poll := func() error {
		ctx, span := tracer.Start(ctx, "poll-review-comments")
		defer span.End()
		_, err := w.Poll(ctx)
		return err
	}

	if !cfg.Watching() {
		return poll()
	}

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", providers.Handler())
		defer serve(logger, "metrics", cfg.MetricsAddr, mux)()
	}
	if cfg.WebhookAddr != "" {
		rcv := webhook.NewReceiver(
			webhook.WithSecret(cfg.WebhookSecret),
			webhook.WithLogger(logger),
		)
		rcv.OnPullRequestReviewComment(w.HandleReviewComment)
		mux := http.NewServeMux()
		mux.Handle("/webhook", rcv)
		defer serve(logger, "webhook", cfg.WebhookAddr, mux)()
	}

	logger.Info().
		Str("pull_request", ref.String()).
		Dur("interval", cfg.Interval).
		Bool("webhook", cfg.WebhookAddr != "").
		Msg("watching review comments")

	// A webhook-only run still polls once, to print what is already there.
	if cfg.Interval == 0 {
		_ = poll()
		<-ctx.Done()
		logger.Info().Msg("shutting down")
		return nil
	}

	// Failed polls are logged by the watcher and retried on the next tick.
	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()
	_ = poll()
	for {
		select {
		case <-ticker.C:
			_ = poll()
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			return nil
		}
	}
}

// serve runs an HTTP server in the background and returns its shutdown.
func serve(logger zerolog.Logger, name, addr string, h http.Handler) (shutdown func()) {
	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		logger.Info().Str("addr", addr).Msgf("serving %s", name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Str("server", name).Msg("server failed")
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
