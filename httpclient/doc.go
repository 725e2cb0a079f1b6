// Package httpclient is the transport dispatcher for the GitHub API client:
// it sends one JSON request, injects the API headers, and hands back the
// fully buffered reply.
//
// # Features
//
//   - Fixed header set on every call: versioned Accept media type,
//     User-Agent, "Connection: close", and Authorization when configured
//   - Exactly one attempt per call; no retries, no backoff
//   - OpenTelemetry tracing with semconv span attributes
//   - OpenTelemetry metrics for latency, body sizes, errors
//   - Network tracing (DNS, TLS, connect, time to first byte)
//   - zerolog debug logging and cURL generation with redacted credentials
//   - MockTransport for tests
//
// # Quick Start
//
//	client := httpclient.New(
//	    httpclient.WithToken(os.Getenv("CATALYST_GITHUB_OAUTH_TOKEN")),
//	)
//
//	reply, err := client.Send(ctx, httpclient.Get,
//	    "https://api.github.com/repos/acme/widgets/pulls/21", nil)
//	if err != nil {
//	    var netErr *httpclient.NetworkError
//	    if errors.As(err, &netErr) {
//	        log.Printf("transport failed (%s): %v", netErr.ErrorType(), netErr)
//	    }
//	    return err
//	}
//	if !reply.IsSuccess() { ... }
//
// Non-2xx replies are returned as replies, not errors. Interpreting them is
// the caller's job.
//
// # Configuration Presets
//
//	httpclient.New(httpclient.WithConfig(httpclient.LowLatencyConfig()))
//	httpclient.New(httpclient.WithConfig(httpclient.ConservativeConfig()))
//
// # Testing
//
//	mock := httpclient.NewMockTransport().
//	    StubRoute(httpclient.Get, "/repos/acme/widgets", http.StatusOK, `{"id":1}`)
//	client := httpclient.New(httpclient.WithMockTransport(mock))
//
//	_, _ = client.Send(ctx, httpclient.Get, "https://api.github.com/repos/acme/widgets", nil)
//	mock.LastRequest().Header.Get("User-Agent") // "CatalystBot"
package httpclient
