// Package models defines the data shapes exchanged with the kiosk management
// backend and persisted by the console: credential pairs, the session user
// and typed resources.
package models

// Credentials is the bearer token pair issued by /auth/login and rotated by
// /auth/refresh. Both tokens are present or the pair is treated as absent.
type Credentials struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Complete reports whether both tokens are set.
func (c Credentials) Complete() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// IsZero reports whether neither token is set.
func (c Credentials) IsZero() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}
