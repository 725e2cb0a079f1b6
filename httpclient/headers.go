package httpclient

import (
	"net/http"

	"github.com/google/uuid"
)

// Header names set on every outgoing request.
const (
	HeaderAccept        = "Accept"
	HeaderUserAgent     = "User-Agent"
	HeaderConnection    = "Connection"
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
	HeaderRequestID     = "X-Request-ID"
)

const contentTypeJSON = "application/json"

// Credential is an Authorization header value split into scheme and secret.
type Credential struct {
	Scheme string
	Token  string
}

// TokenCredential returns a credential using the "token" scheme accepted
// for OAuth and personal access tokens.
func TokenCredential(token string) Credential {
	return Credential{Scheme: "token", Token: token}
}

// BearerCredential returns a credential using the "Bearer" scheme.
func BearerCredential(token string) Credential {
	return Credential{Scheme: "Bearer", Token: token}
}

// Header renders the Authorization header value.
func (c Credential) Header() string {
	return c.Scheme + " " + c.Token
}

// String never prints the secret.
func (c Credential) String() string {
	return c.Scheme + " ***"
}

// applyHeaders sets the headers every call must carry. Values already on the
// request are overwritten.
func (cfg *internalConfig) applyHeaders(req *http.Request, hasBody bool) {
	h := req.Header
	h.Set(HeaderAccept, cfg.MediaType)
	h.Set(HeaderUserAgent, cfg.UserAgent)
	h.Set(HeaderConnection, "close")
	req.Close = true

	if cfg.Credential != nil {
		h.Set(HeaderAuthorization, cfg.Credential.Header())
	} else {
		h.Del(HeaderAuthorization)
	}

	if hasBody {
		h.Set(HeaderContentType, contentTypeJSON)
	}

	if cfg.RequestID {
		h.Set(HeaderRequestID, uuid.NewString())
	}
}
