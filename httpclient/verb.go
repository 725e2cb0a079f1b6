package httpclient

import "net/http"

// Verb is the closed set of HTTP methods the API client issues.
type Verb string

const (
	Get    Verb = http.MethodGet
	Post   Verb = http.MethodPost
	Put    Verb = http.MethodPut
	Patch  Verb = http.MethodPatch
	Delete Verb = http.MethodDelete
)

// Valid reports whether v is one of the declared verbs.
func (v Verb) Valid() bool {
	switch v {
	case Get, Post, Put, Patch, Delete:
		return true
	}
	return false
}

func (v Verb) String() string { return string(v) }
