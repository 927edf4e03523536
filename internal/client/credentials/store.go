// Package credentials persists the signed-in session: the token pair and the
// cached user profile.
//
// Two implementations are provided: MemoryStore for tests and short-lived
// processes, and SQLiteStore, which keeps the session in the console's local
// database so it survives restarts. Both write the token pair atomically.
package credentials

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
)

// Storage keys, shared with the local database layout.
const (
	KeyAccessToken  = "access_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "auth_user"
)

var ErrIncompleteCredentials = errors.New("credentials must carry both tokens")

// Store is the token-pair capability consumed by the API client.
type Store interface {
	// Get returns the stored pair; the zero pair when nothing is stored.
	Get(ctx context.Context) (models.Credentials, error)
	// Set replaces both tokens at once.
	Set(ctx context.Context, c models.Credentials) error
	// Clear removes the tokens and the cached profile.
	Clear(ctx context.Context) error
}

// SessionStore adds the cached user profile written at login.
type SessionStore interface {
	Store
	// SaveSession writes the token pair and the profile together.
	SaveSession(ctx context.Context, c models.Credentials, user []byte) error
	// User returns the cached profile, nil when absent.
	User(ctx context.Context) ([]byte, error)
	// DropUser removes only the cached profile.
	DropUser(ctx context.Context) error
}
