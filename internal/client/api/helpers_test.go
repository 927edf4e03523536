package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/kioskadmin/internal/client/credentials"
	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newServer(t *testing.T, h http.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

// signedIn returns a memory store holding the given pair.
func signedIn(t *testing.T, access, refresh string) *credentials.MemoryStore {
	t.Helper()
	store := credentials.NewMemoryStore()
	require.NoError(t, store.Set(t.Context(), models.Credentials{AccessToken: access, RefreshToken: refresh}))
	return store
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

// onRefreshJoined installs fn as the refresh join hook for the test.
func onRefreshJoined(t *testing.T, fn func()) {
	t.Helper()
	orig := refreshJoined
	refreshJoined = fn
	t.Cleanup(func() { refreshJoined = orig })
}
