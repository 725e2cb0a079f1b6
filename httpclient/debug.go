package httpclient

import (
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// debugLogger is the default logger for debug output.
var debugLogger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// redactedHeaders are printed with their value masked.
var redactedHeaders = map[string]bool{
	HeaderAuthorization: true,
}

// generateCurlCommand creates a cURL command equivalent for the given request.
//
// Example output:
//
//	curl -X POST 'https://api.github.com/repos/acme/widgets/issues/3/comments' \
//	  -H 'Accept: application/vnd.github.v3+json' \
//	  -H 'Authorization: token ***' \
//	  -d '{"body":"thanks"}'
func generateCurlCommand(req *http.Request, body []byte) string {
	parts := []string{"curl"}

	if req.Method != http.MethodGet {
		parts = append(parts, "-X", req.Method)
	}
	parts = append(parts, fmt.Sprintf("'%s'", req.URL.String()))

	keys := make([]string, 0, len(req.Header))
	for k := range req.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		for _, v := range req.Header[k] {
			if redactedHeaders[k] {
				v = redact(v)
			}
			parts = append(parts, "-H", fmt.Sprintf("'%s: %s'", k, v))
		}
	}

	if len(body) > 0 {
		escaped := strings.ReplaceAll(string(body), "'", "'\\''")
		parts = append(parts, "-d", fmt.Sprintf("'%s'", escaped))
	}

	return strings.Join(parts, " ")
}

// redact keeps the scheme of an Authorization value and masks the secret.
func redact(v string) string {
	if scheme, _, ok := strings.Cut(v, " "); ok {
		return scheme + " ***"
	}
	return "***"
}

func logRequest(logger zerolog.Logger, req *http.Request) {
	logger.Debug().
		Str("method", req.Method).
		Str("url", req.URL.String()).
		Bool("authenticated", req.Header.Get(HeaderAuthorization) != "").
		Str("request_id", req.Header.Get(HeaderRequestID)).
		Msg("HTTP request")
}

func logResponse(logger zerolog.Logger, resp *http.Response, size int, duration time.Duration) {
	ev := logger.Debug().
		Int("status", resp.StatusCode).
		Dur("duration_ms", duration).
		Int("body_bytes", size)
	if id := resp.Header.Get(HeaderGitHubRequestID); id != "" {
		ev = ev.Str("github_request_id", id)
	}
	if rl, ok := parseRateLimit(resp.Header); ok {
		ev = ev.Int("ratelimit_remaining", rl.Remaining).Str("ratelimit_resource", rl.Resource)
	}
	ev.Msg("HTTP response")
}
