package gitapi

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies every failure an operation can return.
type Kind uint8

const (
	// KindUnknown is never produced by this package; KindOf returns it for
	// errors that did not come from here.
	KindUnknown Kind = iota
	// KindNetwork: the request never produced a complete HTTP response.
	KindNetwork
	// KindEncode: the payload could not be serialized. Nothing was sent.
	KindEncode
	// KindDecode: the response could not be turned into the expected type,
	// including every non-2xx reply.
	KindDecode
	// KindNotImplemented: the operation is declared but has no behavior yet.
	KindNotImplemented
)

var kindNames = map[Kind]string{
	KindUnknown:        "unknown",
	KindNetwork:        "network",
	KindEncode:         "encode",
	KindDecode:         "decode",
	KindNotImplemented: "not_implemented",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrNetwork        = errors.New("network failure")
	ErrEncode         = errors.New("encode failure")
	ErrDecode         = errors.New("decode failure")
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnexpectedStatus is the cause of a KindDecode error built from a
	// non-2xx reply.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNetwork:
		return ErrNetwork
	case KindEncode:
		return ErrEncode
	case KindDecode:
		return ErrDecode
	case KindNotImplemented:
		return ErrNotImplemented
	}
	return nil
}

// Error is the single error type returned by every operation.
type Error struct {
	Kind Kind

	// Op is the verb for dispatched calls, or the operation name for stubs.
	Op string

	// URL is the endpoint, empty for stubs.
	URL string

	// StatusCode is set when a response was received.
	StatusCode int

	// API holds the parsed error body of a non-2xx reply, if it had one.
	API *APIError

	// Err is the underlying cause.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("gitapi: ")
	b.WriteString(e.Op)
	if e.URL != "" {
		b.WriteString(" ")
		b.WriteString(e.URL)
	}
	b.WriteString(": ")
	if s := e.Kind.sentinel(); s != nil {
		b.WriteString(s.Error())
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.API != nil && e.API.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.API.Message)
	} else if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel of e.Kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// Retryable is always false. No failure kind is retried by this package.
func (e *Error) Retryable() bool { return false }

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// DeleteCommentStatus is the outcome of a comment deletion. The Delete
// operations do not produce it yet.
type DeleteCommentStatus uint8

const (
	CommentRemoved DeleteCommentStatus = iota + 1
	CommentNotRemoved
)

// notImplemented is returned by declared operations that have no behavior.
func notImplemented(op string) error {
	return &Error{Kind: KindNotImplemented, Op: op}
}

// APIError is the error document returned with non-2xx replies.
type APIError struct {
	Message          string           `json:"message"`
	DocumentationURL string           `json:"documentation_url,omitempty"`
	Errors           []APIErrorDetail `json:"errors,omitempty"`
}

// APIErrorDetail is one entry of APIError.Errors, typically a validation
// failure on a single field.
type APIErrorDetail struct {
	Resource string `json:"resource,omitempty"`
	Field    string `json:"field,omitempty"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		switch {
		case d.Message != "":
			parts = append(parts, d.Message)
		case d.Field != "":
			parts = append(parts, d.Resource+"."+d.Field+" "+d.Code)
		default:
			parts = append(parts, d.Code)
		}
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}
