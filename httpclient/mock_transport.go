package httpclient

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"sync"
)

// MockTransport is an http.RoundTripper for tests. It answers from canned
// replies, checked in registration order, and keeps every request it saw.
//
//	mock := httpclient.NewMockTransport().
//	    StubRoute(httpclient.Get, "/repos/acme/widgets/pulls/21/comments", 200, `[{"id":1}]`)
//	client := httpclient.New(httpclient.WithMockTransport(mock))
type MockTransport struct {
	mu       sync.Mutex
	routes   []mockRoute
	fallback *MockReply
	seen     []RecordedRequest
}

// MockReply is a canned answer. A non-nil Err fails the round trip and the
// other fields are ignored.
type MockReply struct {
	Status int
	Body   string
	Header http.Header
	Err    error
}

// Matcher selects the requests a MockReply answers.
type Matcher func(*http.Request) bool

// RecordedRequest is a snapshot of a request seen by MockTransport.
// Body holds the payload that was sent, nil for none.
type RecordedRequest struct {
	Method string
	URL    string
	Path   string
	Header http.Header
	Body   []byte
}

type mockRoute struct {
	match Matcher
	reply MockReply
}

var errNoStub = fmt.Errorf("httpclient: no mock reply")

// MatchRoute matches the verb and exact path.
func MatchRoute(verb Verb, path string) Matcher {
	return func(r *http.Request) bool { return r.Method == verb.String() && r.URL.Path == path }
}

// MatchPath matches the exact path under any verb.
func MatchPath(path string) Matcher {
	return func(r *http.Request) bool { return r.URL.Path == path }
}

// MatchVerb matches every request sent with verb.
func MatchVerb(verb Verb) Matcher {
	return func(r *http.Request) bool { return r.Method == verb.String() }
}

func NewMockTransport() *MockTransport {
	return &MockTransport{}
}

// On answers requests selected by match with reply.
func (m *MockTransport) On(match Matcher, reply MockReply) *MockTransport {
	m.mu.Lock()
	m.routes = append(m.routes, mockRoute{match: match, reply: reply})
	m.mu.Unlock()
	return m
}

// Otherwise sets the reply for requests no route matched.
func (m *MockTransport) Otherwise(reply MockReply) *MockTransport {
	m.mu.Lock()
	m.fallback = &reply
	m.mu.Unlock()
	return m
}

// StubResponse answers every otherwise unmatched request.
func (m *MockTransport) StubResponse(status int, body string) *MockTransport {
	return m.Otherwise(MockReply{Status: status, Body: body})
}

// StubError fails every otherwise unmatched request with err.
func (m *MockTransport) StubError(err error) *MockTransport {
	return m.Otherwise(MockReply{Err: err})
}

func (m *MockTransport) StubRoute(verb Verb, path string, status int, body string) *MockTransport {
	return m.On(MatchRoute(verb, path), MockReply{Status: status, Body: body})
}

func (m *MockTransport) StubPath(path string, status int, body string) *MockTransport {
	return m.On(MatchPath(path), MockReply{Status: status, Body: body})
}

// StubPathRegex answers requests whose path matches pattern. It panics on
// an invalid pattern.
func (m *MockTransport) StubPathRegex(pattern string, status int, body string) *MockTransport {
	re := regexp.MustCompile(pattern)
	return m.On(func(r *http.Request) bool { return re.MatchString(r.URL.Path) },
		MockReply{Status: status, Body: body})
}

func (m *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Path:   req.URL.Path,
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		rec.Body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	m.mu.Lock()
	m.seen = append(m.seen, rec)
	reply, ok := m.lookup(req)
	m.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w for %s %s", errNoStub, req.Method, req.URL)
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return reply.response(req), nil
}

// lookup must be called with m.mu held.
func (m *MockTransport) lookup(req *http.Request) (MockReply, bool) {
	for _, r := range m.routes {
		if r.match(req) {
			return r.reply, true
		}
	}
	if m.fallback != nil {
		return *m.fallback, true
	}
	return MockReply{}, false
}

func (r MockReply) response(req *http.Request) *http.Response {
	// Add canonicalizes keys the way net/http does for real responses.
	header := make(http.Header, len(r.Header)+1)
	for k, vs := range r.Header {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	if header.Get(HeaderContentType) == "" {
		header.Set(HeaderContentType, "application/json; charset=utf-8")
	}
	return &http.Response{
		Status:        strconv.Itoa(r.Status) + " " + http.StatusText(r.Status),
		StatusCode:    r.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewBufferString(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}

// Requests returns a copy of the recorded requests, oldest first.
func (m *MockTransport) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.seen...)
}

func (m *MockTransport) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.seen)
}

// LastRequest returns the most recent request, or nil before the first.
func (m *MockTransport) LastRequest() *RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.seen) == 0 {
		return nil
	}
	last := m.seen[len(m.seen)-1]
	return &last
}

// Reset forgets recorded requests and every reply.
func (m *MockTransport) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen, m.routes, m.fallback = nil, nil, nil
}

// WithMockTransport routes every request through mock instead of the network.
func WithMockTransport(mock *MockTransport) Option {
	return func(cfg *internalConfig) {
		cfg.MockTransport = mock
	}
}
