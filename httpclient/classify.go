package httpclient

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"syscall"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Values of the error.type attribute for failures that produced no reply.
const (
	ErrorTypeTimeout           = "timeout"
	ErrorTypeConnectionRefused = "connection_refused"
	ErrorTypeDNSError          = "dns_error"
	ErrorTypeTLSError          = "tls_error"
	ErrorTypeCancelled         = "cancelled"
	ErrorTypeConnectionReset   = "connection_reset"
	ErrorTypeEOF               = "eof"
	ErrorTypeUnknown           = "unknown"
)

type errorRule struct {
	errorType string
	match     func(error) bool
}

// errorRules are tried in order; the first match wins.
var errorRules = []errorRule{
	{ErrorTypeCancelled, isAny(context.Canceled)},
	{ErrorTypeTimeout, isTimeout},
	{ErrorTypeDNSError, asType[*net.DNSError]},
	{ErrorTypeTLSError, func(err error) bool {
		return asType[*tls.RecordHeaderError](err) || asType[*tls.CertificateVerificationError](err)
	}},
	{ErrorTypeConnectionRefused, isAny(syscall.ECONNREFUSED)},
	{ErrorTypeConnectionReset, isAny(syscall.ECONNRESET)},
	{ErrorTypeEOF, isAny(io.EOF, io.ErrUnexpectedEOF)},
}

// errorMessages classify errors that were flattened to strings on the way up.
var errorMessages = []struct{ needle, errorType string }{
	{"timeout", ErrorTypeTimeout},
	{"connection refused", ErrorTypeConnectionRefused},
	{"connection reset", ErrorTypeConnectionReset},
	{"no such host", ErrorTypeDNSError},
	{"tls", ErrorTypeTLSError},
	{"x509", ErrorTypeTLSError},
	{"certificate", ErrorTypeTLSError},
	{"eof", ErrorTypeEOF},
}

func isAny(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

func asType[T error](err error) bool {
	var target T
	return errors.As(err, &target)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// classifyError maps a transport failure to an error.type value. It
// returns "" for nil.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	for _, rule := range errorRules {
		if rule.match(err) {
			return rule.errorType
		}
	}

	msg := strings.ToLower(err.Error())
	for _, m := range errorMessages {
		if strings.Contains(msg, m.needle) {
			return m.errorType
		}
	}
	return ErrorTypeUnknown
}

// errorTypeFromStatusCode follows the OTel convention of using the status
// code itself as error.type for 4xx and 5xx replies.
func errorTypeFromStatusCode(statusCode int) string {
	if statusCode >= 400 {
		return strconv.Itoa(statusCode)
	}
	return ""
}

func setSpanError(span trace.Span, err error, errorType string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errorType != "" {
		span.SetAttributes(attribute.String("error.type", errorType))
	}
}
