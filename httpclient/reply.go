package httpclient

import (
	"net/http"
	"strings"
)

// Reply is a fully buffered HTTP response.
type Reply struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is 2xx.
func (r *Reply) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsJSON reports whether the server labelled the body as JSON.
func (r *Reply) IsJSON() bool {
	ct := r.Header.Get(HeaderContentType)
	return strings.Contains(ct, "json")
}

// RateLimit returns the budget reported with the reply, if any.
func (r *Reply) RateLimit() (RateLimit, bool) {
	return parseRateLimit(r.Header)
}

// RequestID returns the server-side request ID, useful when reporting
// problems to GitHub.
func (r *Reply) RequestID() string {
	return r.Header.Get(HeaderGitHubRequestID)
}

// String returns the body as a string.
func (r *Reply) String() string {
	return string(r.Body)
}
