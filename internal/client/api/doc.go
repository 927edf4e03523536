// Package api is the authenticated HTTP client for the kiosk management
// backend.
//
// # Overview
//
// Client performs one logical call against the configured base origin:
// it builds the URL and body, attaches the bearer token from the credential
// store and, when the backend answers 401, refreshes the token pair once and
// re-issues the same request with the new access token.
//
// Verb helpers (Get, Post, Put, Patch, Delete) fix the method of Request, and
// Resource exposes list/get/create/update/patch/remove for a path prefix.
//
// # Token refresh
//
// Concurrent requests that observe 401 share a single refresh episode
// (singleflight keyed by the refresh endpoint). The episode runs on a context
// detached from any caller's cancellation, so an abandoned waiter does not
// tear it down for the others. On failure the stored credentials are cleared,
// the Navigator is invoked and every waiter receives an error matching
// ErrSessionExpired.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError. Configuration problems match
// ErrNoBaseURL. Transport and context errors are returned unchanged.
package api
