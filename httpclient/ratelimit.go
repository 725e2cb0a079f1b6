package httpclient

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Response headers the API sets on every reply.
const (
	HeaderRateLimitLimit     = "X-RateLimit-Limit"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderRateLimitReset     = "X-RateLimit-Reset"
	HeaderRateLimitResource  = "X-RateLimit-Resource"
	HeaderGitHubRequestID    = "X-GitHub-Request-Id"
)

// RateLimit is the request budget reported with a reply. It is
// informational; the client never waits on it.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
	// Resource names the budget, e.g. "core" or "search".
	Resource string
}

// parseRateLimit reads the rate limit headers. ok is false when the
// remaining count is absent or malformed.
func parseRateLimit(h http.Header) (rl RateLimit, ok bool) {
	remaining, err := strconv.Atoi(h.Get(HeaderRateLimitRemaining))
	if err != nil {
		return RateLimit{}, false
	}
	rl.Remaining = remaining
	rl.Limit, _ = strconv.Atoi(h.Get(HeaderRateLimitLimit))
	if reset, err := strconv.ParseInt(h.Get(HeaderRateLimitReset), 10, 64); err == nil {
		rl.Reset = time.Unix(reset, 0).UTC()
	}
	rl.Resource = h.Get(HeaderRateLimitResource)
	return rl, true
}

func (rl RateLimit) attributes() []attribute.KeyValue {
	attrs := []attribute.KeyValue{attribute.Int("github.ratelimit.remaining", rl.Remaining)}
	if rl.Limit > 0 {
		attrs = append(attrs, attribute.Int("github.ratelimit.limit", rl.Limit))
	}
	if rl.Resource != "" {
		attrs = append(attrs, attribute.String("github.ratelimit.resource", rl.Resource))
	}
	return attrs
}
