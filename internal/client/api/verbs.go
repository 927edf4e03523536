package api

import (
	"context"
	"net/http"
)

// Get issues a GET request. Query parameters go in WithParams.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, path, withExtra(opts, WithMethod(http.MethodGet))...)
}

// Post sends body as JSON, or as multipart when it is a *FormData.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, path, withExtra(opts, WithMethod(http.MethodPost), WithBody(body))...)
}

// Put replaces the resource at path with body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, path, withExtra(opts, WithMethod(http.MethodPut), WithBody(body))...)
}

// Patch sends a partial update.
func (c *Client) Patch(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, path, withExtra(opts, WithMethod(http.MethodPatch), WithBody(body))...)
}

// Delete issues a DELETE request. No body is sent.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Request(ctx, path, withExtra(opts, WithMethod(http.MethodDelete))...)
}
