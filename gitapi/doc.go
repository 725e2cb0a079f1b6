// Package gitapi is a typed client for the GitHub REST API v3.
//
// Every operation follows the same pipeline: the payload, if any, is
// encoded as JSON, one request is dispatched through a Transport, and a
// 2xx reply body is decoded into the result type. A failure in any step
// ends the call; nothing is retried.
//
// All failures are *Error values whose Kind tells the step that failed:
//
//   - KindEncode: the payload could not be encoded; nothing was sent.
//   - KindNetwork: no complete HTTP response was received.
//   - KindDecode: the body did not match the result type, or the status
//     was not 2xx. StatusCode and API describe the reply.
//   - KindNotImplemented: the operation exists but has no behavior.
//
// Match them with errors.Is against ErrEncode, ErrNetwork, ErrDecode and
// ErrNotImplemented, or with KindOf.
//
// Basic usage:
//
//	client := gitapi.NewFromHTTP([]httpclient.Option{
//	    httpclient.WithToken(token),
//	})
//
//	comments, err := client.CommitComments.List(ctx, gitapi.PR("acme", "widgets", 21))
//	if errors.Is(err, gitapi.ErrNetwork) {
//	    // ...
//	}
//
// The package-level SendWithPayload and SendWithoutPayload functions expose
// the pipeline for endpoints the services do not cover:
//
//	exec := gitapi.NewExecutor(httpclient.New(httpclient.WithToken(token)))
//	url := gitapi.NewLocator("").Repo(gitapi.Repo("acme", "widgets")) + "/subscribers"
//	users, err := gitapi.SendWithoutPayload[[]gitapi.User](ctx, exec, httpclient.Get, url)
//
// DecodeEvent turns webhook deliveries into typed events.
package gitapi
