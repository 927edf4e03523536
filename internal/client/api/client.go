package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/kioskadmin/internal/client/credentials"
	"github.com/dmitrijs2005/kioskadmin/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const RequestIDHeader = "X-Request-ID"

// Client is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      credentials.Store
	navigate   Navigator
	logger     logging.Logger
	requestID  func() string

	refreshes singleflight.Group
}

// New creates a client for baseURL. An empty baseURL is accepted here and
// reported by the first call. A nil store means an in-memory store.
func New(baseURL string, store credentials.Store, opts ...Option) *Client {
	if store == nil {
		store = credentials.NewMemoryStore()
	}
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: http.DefaultClient,
		store:      store,
		logger:     logging.Discard(),
		requestID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// call is a fully built request that can be sent more than once.
type call struct {
	method      string
	url         string
	header      map[string]string
	body        []byte
	contentType string
	requestID   string
}

// Request performs one logical call. On 401 (unless SkipAuth) the token pair
// is refreshed and the same request is sent once more with the new token; a
// second 401 is returned as is.
func (c *Client) Request(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	r := request{method: http.MethodGet}
	for _, opt := range opts {
		opt(&r)
	}
	r.method = strings.ToUpper(r.method)

	if c.baseURL == "" {
		return nil, &APIError{Message: ErrNoBaseURL.Error(), Err: ErrNoBaseURL}
	}

	body, contentType, err := encodeBody(r.method, r.body)
	if err != nil {
		return nil, err
	}

	cl := &call{
		method:      r.method,
		url:         c.baseURL + normalizePath(path) + r.params.Encode(),
		header:      r.header,
		body:        body,
		contentType: contentType,
		requestID:   c.requestID(),
	}

	var token string
	if !r.skipAuth {
		if token, err = c.accessToken(ctx, r.token); err != nil {
			return nil, err
		}
	}

	res, err := c.send(ctx, cl, token)
	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusUnauthorized && !r.skipAuth {
		fresh, err := c.renewedToken(ctx, r.token, token)
		if err != nil {
			if errors.Is(err, ErrSessionExpired) {
				return nil, newSessionError(err)
			}
			return nil, err
		}
		if res, err = c.send(ctx, cl, fresh); err != nil {
			return nil, err
		}
	}

	if !res.OK() {
		return nil, newResponseError(res)
	}
	return res, nil
}

// accessToken prefers the explicit override and falls back to the store.
// A missing token is not an error: the request goes out unauthenticated.
func (c *Client) accessToken(ctx context.Context, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	creds, err := c.store.Get(ctx)
	if err != nil {
		return "", err
	}
	return creds.AccessToken, nil
}

func (c *Client) send(ctx context.Context, cl *call, token string) (*Response, error) {
	var reader io.Reader
	if cl.body != nil {
		reader = bytes.NewReader(cl.body)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, cl.url, reader)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	for k, v := range cl.header {
		req.Header.Set(k, v)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	switch {
	case cl.contentType != "":
		req.Header.Set("Content-Type", cl.contentType)
	case cl.body != nil && req.Header.Get("Content-Type") == "":
		req.Header.Set("Content-Type", "application/json")
	}
	if req.Header.Get(RequestIDHeader) == "" {
		req.Header.Set(RequestIDHeader, cl.requestID)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug(ctx, "api call failed", "method", cl.method, "url", cl.url, "request_id", cl.requestID, "error", err)
		return nil, err
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug(ctx, "api call", "method", cl.method, "url", cl.url, "status", res.StatusCode, "request_id", cl.requestID)
	return newResponse(res, data), nil
}
