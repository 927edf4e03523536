package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
)

const (
	LoginPath   = "/auth/login"
	RefreshPath = "/auth/refresh"
)

// refreshJoined is a test seam run once a caller is attached to the in-flight
// refresh.
var refreshJoined = func() {}

// renewedToken returns the token to retry with after sent was rejected. When
// the stored access token already differs from sent, an episode finished in
// between and its token is reused without another refresh. Explicit token
// overrides always refresh.
func (c *Client) renewedToken(ctx context.Context, override, sent string) (string, error) {
	if override == "" {
		current, err := c.store.Get(ctx)
		if err == nil && current.AccessToken != "" && current.AccessToken != sent {
			return current.AccessToken, nil
		}
	}
	return c.refresh(ctx)
}

// refresh joins the in-flight refresh episode or starts one. Every caller
// attached to the same episode receives the same token or the same error.
// Leaving early because ctx is done does not cancel the episode.
func (c *Client) refresh(ctx context.Context) (string, error) {
	ch := c.refreshes.DoChan(RefreshPath, func() (any, error) {
		return c.runRefresh(context.WithoutCancel(ctx))
	})
	refreshJoined()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

func (c *Client) runRefresh(ctx context.Context) (string, error) {
	current, err := c.store.Get(ctx)
	if err != nil {
		return "", c.expire(ctx, fmt.Errorf("read credentials: %w", err))
	}
	if current.RefreshToken == "" {
		return "", c.expire(ctx, ErrNoRefreshToken)
	}

	body, err := json.Marshal(map[string]string{"refresh_token": current.RefreshToken})
	if err != nil {
		return "", c.expire(ctx, err)
	}

	res, err := c.send(ctx, &call{
		method:    http.MethodPost,
		url:       c.baseURL + RefreshPath,
		body:      body,
		requestID: c.requestID(),
	}, "")
	if err != nil {
		return "", c.expire(ctx, err)
	}
	if !res.OK() {
		return "", c.expire(ctx, fmt.Errorf("%w: status %d", ErrRefreshRejected, res.StatusCode))
	}

	fresh, ok := ExtractCredentials(res.Payload)
	if !ok {
		return "", c.expire(ctx, ErrMalformedTokens)
	}
	// TODO: drop the fallback once the backend confirms it always rotates refresh tokens.
	if fresh.RefreshToken == "" {
		fresh.RefreshToken = current.RefreshToken
	}

	if err := c.store.Set(ctx, fresh); err != nil {
		return "", c.expire(ctx, fmt.Errorf("store credentials: %w", err))
	}

	c.logger.Info(ctx, "access token refreshed")
	return fresh.AccessToken, nil
}

// expire ends the session: credentials are cleared and the navigator runs
// exactly once per failed episode.
func (c *Client) expire(ctx context.Context, cause error) error {
	if err := c.store.Clear(ctx); err != nil {
		c.logger.Error(ctx, "failed to clear credentials", "error", err)
	}
	c.logger.Warn(ctx, "session expired", "cause", cause)
	if c.navigate != nil {
		c.navigate(ctx)
	}
	return fmt.Errorf("%w: %w", ErrSessionExpired, cause)
}

var (
	accessKeys  = []string{"access_token", "access", "token", "accessToken"}
	refreshKeys = []string{"refresh_token", "refresh", "refreshToken"}
)

// ExtractCredentials normalizes the token naming conventions of the login and
// refresh endpoints. Tokens may sit at the top level or under "data". ok is
// false when no access token is present; the refresh token may be empty.
func ExtractCredentials(payload any) (models.Credentials, bool) {
	m, isObject := payload.(map[string]any)
	if !isObject {
		return models.Credentials{}, false
	}
	creds := models.Credentials{
		AccessToken:  firstString(m, accessKeys),
		RefreshToken: firstString(m, refreshKeys),
	}
	if creds.AccessToken == "" {
		if data, ok := m["data"].(map[string]any); ok {
			return ExtractCredentials(data)
		}
		return creds, false
	}
	return creds, true
}

func firstString(m map[string]any, keys []string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
