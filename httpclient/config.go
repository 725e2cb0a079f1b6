package httpclient

import (
	"net"
	"net/http"
	"time"
)

// Config tunes the network transport. Start from one of the presets and
// change what you need:
//
//	cfg := httpclient.DefaultConfig()
//	cfg.Timeout = 10 * time.Second
//	client := httpclient.New(httpclient.WithConfig(cfg))
//
// Every request is sent with "Connection: close", so there is no idle pool
// to tune; what is left is timeouts, dialing, buffers and limits.
type Config struct {
	// Timeout bounds a whole call, body read included. Zero leaves the
	// caller's context as the only bound.
	Timeout time.Duration

	// Dialing. A negative FallbackDelay disables Happy Eyeballs.
	DialTimeout   time.Duration
	KeepAlive     time.Duration
	FallbackDelay time.Duration

	TLSHandshakeTimeout time.Duration
	// ResponseHeaderTimeout starts once the request is written. Zero
	// defers to Timeout.
	ResponseHeaderTimeout time.Duration
	ExpectContinueTimeout time.Duration

	// MaxConnsPerHost caps simultaneous connections. Zero is unlimited.
	MaxConnsPerHost int

	WriteBufferSize int
	ReadBufferSize  int

	// MaxResponseHeaderBytes of zero uses http.DefaultMaxHeaderBytes.
	MaxResponseHeaderBytes int64
	// MaxResponseBodyBytes fails calls whose body is larger with a
	// *NetworkError wrapping ErrBodyTooLarge. Zero is unlimited.
	MaxResponseBodyBytes int64

	DisableCompression bool
	ForceHTTP2         bool
}

// DefaultConfig suits a bot or CLI calling api.github.com.
func DefaultConfig() Config {
	return Config{
		Timeout:               30 * time.Second,
		DialTimeout:           5 * time.Second,
		KeepAlive:             30 * time.Second,
		FallbackDelay:         300 * time.Millisecond,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
		MaxConnsPerHost:       50,
		WriteBufferSize:       32 << 10,
		ReadBufferSize:        32 << 10,
		MaxResponseBodyBytes:  32 << 20,
	}
}

// LowLatencyConfig fails fast, for webhook handlers that must reply
// before the sender gives up on the delivery.
func LowLatencyConfig() Config {
	c := DefaultConfig()
	c.Timeout = 5 * time.Second
	c.DialTimeout = 2 * time.Second
	c.KeepAlive = 15 * time.Second
	c.FallbackDelay = 150 * time.Millisecond
	c.TLSHandshakeTimeout = 5 * time.Second
	c.ExpectContinueTimeout = 500 * time.Millisecond
	c.ResponseHeaderTimeout = 3 * time.Second
	return c
}

// ConservativeConfig waits longer and buffers less, for slow links,
// Enterprise hosts behind proxies, or memory-constrained jobs.
func ConservativeConfig() Config {
	c := DefaultConfig()
	c.Timeout = 2 * time.Minute
	c.DialTimeout = 15 * time.Second
	c.TLSHandshakeTimeout = 30 * time.Second
	c.MaxConnsPerHost = 10
	c.WriteBufferSize = 4 << 10
	c.ReadBufferSize = 4 << 10
	c.MaxResponseBodyBytes = 8 << 20
	return c
}

// buildTransport returns the mock when one is configured, otherwise a
// fresh *http.Transport with keep-alives off.
func (cfg *internalConfig) buildTransport() http.RoundTripper {
	if cfg.MockTransport != nil {
		return cfg.MockTransport
	}

	c := cfg.httpConfig
	dial := (&net.Dialer{
		Timeout:       c.DialTimeout,
		KeepAlive:     c.KeepAlive,
		FallbackDelay: c.FallbackDelay,
	}).DialContext

	t := &http.Transport{
		DialContext:       dial,
		TLSClientConfig:   cfg.TLSConfig,
		DisableKeepAlives: true,
		MaxConnsPerHost:   c.MaxConnsPerHost,
		ForceAttemptHTTP2: c.ForceHTTP2,

		TLSHandshakeTimeout:   c.TLSHandshakeTimeout,
		ResponseHeaderTimeout: c.ResponseHeaderTimeout,
		ExpectContinueTimeout: c.ExpectContinueTimeout,

		DisableCompression:     c.DisableCompression,
		WriteBufferSize:        c.WriteBufferSize,
		ReadBufferSize:         c.ReadBufferSize,
		MaxResponseHeaderBytes: c.MaxResponseHeaderBytes,
	}

	switch {
	case cfg.ProxyURL != nil:
		t.Proxy = http.ProxyURL(cfg.ProxyURL)
	case cfg.ProxyFromEnvironment:
		t.Proxy = http.ProxyFromEnvironment
	}
	return t
}
