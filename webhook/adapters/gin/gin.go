// Package gin mounts a webhook.Receiver and its middleware on a Gin router.
//
//	r := gin.New()
//	rcv := webhook.NewReceiver(webhook.WithSecret(secret))
//	rcv.OnIssueComment(handle)
//	ginwebhook.Register(r, "/webhook", rcv)
//
// The receiver answers every method itself, so non-POST requests get its
// 405 reply instead of Gin's 404.
package gin

import (
	"net/http"

	ginlib "github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kroma-labs/catalyst-go/webhook"
)

// WrapMiddleware adapts a webhook.Middleware to Gin.
func WrapMiddleware(m webhook.Middleware) ginlib.HandlerFunc {
	return func(c *ginlib.Context) {
		var aborted bool
		h := m(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			c.Request = r
			c.Next()
			aborted = c.IsAborted()
		}))
		h.ServeHTTP(c.Writer, c.Request)
		if aborted {
			c.Abort()
		}
	}
}

// Describe stores the delivery headers in the request context, for
// handlers that read webhook.InfoFromContext.
func Describe() ginlib.HandlerFunc {
	return WrapMiddleware(webhook.Describe())
}

func Recovery(logger zerolog.Logger) ginlib.HandlerFunc {
	return WrapMiddleware(webhook.Recovery(logger))
}

func Logger(logger zerolog.Logger) ginlib.HandlerFunc {
	return WrapMiddleware(webhook.Logger(logger))
}

func Tracing(tp trace.TracerProvider, p propagation.TextMapPropagator) ginlib.HandlerFunc {
	return WrapMiddleware(webhook.Tracing(tp, p))
}

// Handler serves rcv from a Gin route.
func Handler(rcv *webhook.Receiver) ginlib.HandlerFunc {
	return func(c *ginlib.Context) {
		rcv.ServeHTTP(c.Writer, c.Request)
	}
}

// Register routes every method on path to rcv.
func Register(r ginlib.IRoutes, path string, rcv *webhook.Receiver) {
	r.Any(path, Handler(rcv))
}
