// Package tokens reads the claims of access tokens issued by the backend.
//
// The console never holds the signing key, so claims are decoded without
// signature verification and are used for display only: who is signed in
// and when the current token expires. Authorization stays with the backend.
package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNotJWT = errors.New("token is not a JWT")

// Claims are the access-token claims the console knows about.
type Claims struct {
	jwt.RegisteredClaims
	Role    string `json:"role,omitempty"`
	IsSuper bool   `json:"is_super,omitempty"`
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Parse decodes the claims of token without verifying its signature.
func Parse(token string) (*Claims, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotJWT, err)
	}
	return claims, nil
}

// ExpiresIn returns the time left until expiry relative to now, and false
// when the token carries no exp claim.
func (c *Claims) ExpiresIn(now time.Time) (time.Duration, bool) {
	if c == nil || c.ExpiresAt == nil {
		return 0, false
	}
	return c.ExpiresAt.Sub(now), true
}

// Expired reports whether the token is past its exp claim at now.
func (c *Claims) Expired(now time.Time) bool {
	left, ok := c.ExpiresIn(now)
	return ok && left <= 0
}
