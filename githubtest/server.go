// Package githubtest runs an in-process stand-in for the GitHub API.
//
// Routes are chi patterns, so path parameters can be read with
// chi.URLParam inside a HandleFunc handler:
//
//	srv := githubtest.New(t)
//	srv.Handle(http.MethodGet, "/repos/{owner}/{repo}/pulls/{number}/comments",
//	    http.StatusOK, `[{"id":1}]`)
//
//	client := gitapi.New(httpclient.New(), gitapi.WithBaseURL(srv.URL()))
//
// Every request is recorded, including unrouted ones, which get a 404
// with a GitHub-style error body.
package githubtest

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is one recorded request.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// Server is a fake API origin. It is closed when the test ends.
type Server struct {
	srv    *httptest.Server
	router chi.Router

	mu       sync.Mutex
	requests []Request
}

// New starts a Server and registers its shutdown with tb.Cleanup.
func New(tb testing.TB) *Server {
	tb.Helper()

	s := &Server{router: chi.NewRouter()}
	s.router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"Not Found"}`)
	})
	s.router.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, `{"message":"Method Not Allowed"}`)
	})

	s.srv = httptest.NewServer(http.HandlerFunc(s.serve))
	tb.Cleanup(s.srv.Close)
	return s
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_ = r.Body.Close()

	s.mu.Lock()
	s.requests = append(s.requests, Request{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	s.mu.Unlock()

	r.Body = io.NopCloser(bytes.NewReader(body))
	s.router.ServeHTTP(w, r)
}

// Handle answers method+pattern with a fixed JSON body.
func (s *Server) Handle(method, pattern string, status int, body string) *Server {
	s.router.MethodFunc(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, body)
	})
	return s
}

// HandleFunc answers method+pattern with fn.
func (s *Server) HandleFunc(method, pattern string, fn http.HandlerFunc) *Server {
	s.router.MethodFunc(method, pattern, fn)
	return s
}

// URL is the origin to pass as the client base URL.
func (s *Server) URL() string { return s.srv.URL }

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or nil if none arrived.
func (s *Server) LastRequest() *Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	r := s.requests[len(s.requests)-1]
	return &r
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
