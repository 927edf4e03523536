package api

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/kioskadmin/internal/logging"
)

// Navigator sends the user to the login entry point after the session has
// expired for good.
type Navigator func(ctx context.Context)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport client. Timeouts configured on it apply
// to every call; the client adds none of its own.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger for request and refresh events.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithNavigator sets the callback invoked on unrecoverable session expiry.
func WithNavigator(n Navigator) Option {
	return func(c *Client) {
		c.navigate = n
	}
}

// WithRequestIDs replaces the X-Request-ID generator.
func WithRequestIDs(gen func() string) Option {
	return func(c *Client) {
		if gen != nil {
			c.requestID = gen
		}
	}
}

type request struct {
	method   string
	params   Params
	body     any
	header   map[string]string
	token    string
	skipAuth bool
}

// RequestOption describes one aspect of a single call.
type RequestOption func(*request)

// WithMethod sets the HTTP method (GET by default).
func WithMethod(method string) RequestOption {
	return func(r *request) { r.method = method }
}

// WithParams sets the query parameters.
func WithParams(p Params) RequestOption {
	return func(r *request) { r.params = p }
}

// WithBody sets the request body: a *FormData or any JSON-serializable value.
// It is ignored for GET.
func WithBody(body any) RequestOption {
	return func(r *request) { r.body = body }
}

// WithHeader adds a header; it overrides the client defaults.
func WithHeader(key, value string) RequestOption {
	return func(r *request) {
		if r.header == nil {
			r.header = make(map[string]string)
		}
		r.header[key] = value
	}
}

// WithToken uses token instead of the stored access token.
func WithToken(token string) RequestOption {
	return func(r *request) { r.token = token }
}

// SkipAuth sends the request without Authorization and disables the 401
// refresh-and-retry path. Used for public endpoints such as login.
func SkipAuth() RequestOption {
	return func(r *request) { r.skipAuth = true }
}

func withExtra(opts []RequestOption, extra ...RequestOption) []RequestOption {
	out := make([]RequestOption, 0, len(opts)+len(extra))
	out = append(out, opts...)
	return append(out, extra...)
}
