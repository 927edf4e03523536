// Package services holds the console's application services: sign-in and
// session bookkeeping on top of the API client, and the resource catalog.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kioskadmin/internal/client/api"
	"github.com/dmitrijs2005/kioskadmin/internal/client/credentials"
	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
	"github.com/dmitrijs2005/kioskadmin/internal/client/tokens"
)

// AuthService defines the session operations of the console.
//
// Contract:
//   - Login: authenticate against /auth/login and persist the session.
//   - Logout: forget the session locally.
//   - CurrentUser: the cached profile, nil when signed out.
//   - Session: a snapshot of the signed-in state for display.
//   - Ping: check backend liveness.
//
// All methods honor context cancellation.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.SessionUser, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*models.SessionUser, error)
	Session(ctx context.Context) (*Session, error)
	Ping(ctx context.Context) error
}

// Session describes the signed-in state.
type Session struct {
	Authenticated bool
	User          *models.SessionUser
	// Claims is nil when the access token is not a JWT.
	Claims *tokens.Claims
}

// Role is the effective role: from the profile, else from token claims.
func (s *Session) Role() models.Role {
	if s == nil || !s.Authenticated {
		return ""
	}
	if s.User != nil {
		return s.User.Role()
	}
	if s.Claims != nil {
		u := &models.SessionUser{RoleName: models.Role(s.Claims.Role), IsSuper: s.Claims.IsSuper}
		return u.Role()
	}
	return models.RoleClientAdmin
}

type authService struct {
	client     *api.Client
	store      credentials.SessionStore
	healthPath string
}

// NewAuthService binds the service to the API client and the session store
// the client was built with.
func NewAuthService(client *api.Client, store credentials.SessionStore, healthPath string) AuthService {
	return &authService{client: client, store: store, healthPath: healthPath}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login validates the input, signs in and stores the token pair together with
// the returned profile. Phone-style usernames are reduced to their digits.
func (a *authService) Login(ctx context.Context, username, password string) (*models.SessionUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if looksLikePhone(username) {
		username = digitsOnly(username)
		if len(username) < 9 {
			return nil, ErrInvalidPhone
		}
	}

	res, err := a.client.Post(ctx, api.LoginPath, loginRequest{Username: username, Password: password}, api.SkipAuth())
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	creds, ok := api.ExtractCredentials(res.Payload)
	if !ok || !creds.Complete() {
		return nil, fmt.Errorf("login error: %w", api.ErrMalformedTokens)
	}

	user, raw := extractUser(res.Payload)
	if err := a.store.SaveSession(ctx, creds, raw); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}
	return user, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

// CurrentUser returns the cached profile. A profile that no longer decodes is
// removed and reported as absent.
func (a *authService) CurrentUser(ctx context.Context) (*models.SessionUser, error) {
	raw, err := a.store.User(ctx)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var u models.SessionUser
	if err := json.Unmarshal(raw, &u); err != nil {
		if err := a.store.DropUser(ctx); err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &u, nil
}

func (a *authService) Session(ctx context.Context) (*Session, error) {
	creds, err := a.store.Get(ctx)
	if err != nil {
		return nil, err
	}
	s := &Session{Authenticated: creds.AccessToken != ""}
	if !s.Authenticated {
		return s, nil
	}
	if s.User, err = a.CurrentUser(ctx); err != nil {
		return nil, err
	}
	if claims, err := tokens.Parse(creds.AccessToken); err == nil {
		s.Claims = claims
	}
	return s, nil
}

// Ping reports whether the backend answers on the health path. Any HTTP
// answer, even an error status, counts as reachable.
func (a *authService) Ping(ctx context.Context) error {
	_, err := a.client.Get(ctx, a.healthPath, api.SkipAuth())
	var apiErr *api.APIError
	if err != nil && errors.As(err, &apiErr) && apiErr.Status != 0 {
		return nil
	}
	return err
}

// extractUser returns the "user" object of a login payload, at the top level
// or under "data", decoded and as raw JSON for storage.
func extractUser(payload any) (*models.SessionUser, []byte) {
	m, ok := payload.(map[string]any)
	if !ok {
		return nil, nil
	}
	obj, ok := m["user"].(map[string]any)
	if !ok {
		if data, isObject := m["data"].(map[string]any); isObject {
			return extractUser(data)
		}
		return nil, nil
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return nil, nil
	}
	var u models.SessionUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, nil
	}
	return &u, raw
}

func looksLikePhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case isDigit(r):
			digits++
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
		default:
			return false
		}
	}
	return digits > 0
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if isDigit(r) {
			return r
		}
		return -1
	}, s)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
