package credentials

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/kioskadmin/internal/client/localdb"
	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := localdb.Open(context.Background(), filepath.Join(t.TempDir(), "kioskadmin.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	return NewSQLiteStore(openDB(t))
}

func newSealedStore(t *testing.T) *SQLiteStore {
	t.Helper()
	db := openDB(t)
	c, err := NewPassphraseCipher(context.Background(), db, []byte("passphrase"))
	require.NoError(t, err)
	return NewSQLiteStore(db, WithCipher(c))
}

func stores(t *testing.T) map[string]SessionStore {
	return map[string]SessionStore{
		"memory": NewMemoryStore(),
		"sqlite": newSQLiteStore(t),
		"sealed": newSealedStore(t),
	}
}

func TestStore_EmptyByDefault(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			c, err := s.Get(context.Background())
			require.NoError(t, err)
			assert.True(t, c.IsZero())

			u, err := s.User(context.Background())
			require.NoError(t, err)
			assert.Nil(t, u)
		})
	}
}

func TestStore_SetGetClear(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			pair := models.Credentials{AccessToken: "a1", RefreshToken: "r1"}

			require.NoError(t, s.Set(ctx, pair))
			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, pair, got)

			require.NoError(t, s.Clear(ctx))
			got, err = s.Get(ctx)
			require.NoError(t, err)
			assert.True(t, got.IsZero())
		})
	}
}

func TestStore_RejectsHalfPair(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, s.Set(ctx, models.Credentials{AccessToken: "a1", RefreshToken: "r1"}))

			err := s.Set(ctx, models.Credentials{AccessToken: "a2"})
			require.ErrorIs(t, err, ErrIncompleteCredentials)
			err = s.SaveSession(ctx, models.Credentials{RefreshToken: "r2"}, nil)
			require.ErrorIs(t, err, ErrIncompleteCredentials)

			got, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, models.Credentials{AccessToken: "a1", RefreshToken: "r1"}, got)
		})
	}
}

func TestStore_SaveSessionAndLogoutClearsAllKeys(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			pair := models.Credentials{AccessToken: "a1", RefreshToken: "r1"}
			profile := []byte(`{"id":"u1","role":"client_admin"}`)

			require.NoError(t, s.SaveSession(ctx, pair, profile))

			u, err := s.User(ctx)
			require.NoError(t, err)
			assert.JSONEq(t, string(profile), string(u))

			require.NoError(t, s.Clear(ctx))
			u, err = s.User(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)
			c, err := s.Get(ctx)
			require.NoError(t, err)
			assert.True(t, c.IsZero())
		})
	}
}

func TestStore_RefreshKeepsProfile(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			profile := []byte(`{"id":"u1"}`)
			require.NoError(t, s.SaveSession(ctx, models.Credentials{AccessToken: "a1", RefreshToken: "r1"}, profile))

			require.NoError(t, s.Set(ctx, models.Credentials{AccessToken: "a2", RefreshToken: "r2"}))

			u, err := s.User(ctx)
			require.NoError(t, err)
			assert.Equal(t, profile, u)
		})
	}
}

func TestStore_DropUser(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			pair := models.Credentials{AccessToken: "a1", RefreshToken: "r1"}
			require.NoError(t, s.SaveSession(ctx, pair, []byte("not json")))

			require.NoError(t, s.DropUser(ctx))

			u, err := s.User(ctx)
			require.NoError(t, err)
			assert.Nil(t, u)
			c, err := s.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, pair, c)
		})
	}
}

// Readers must only ever observe one of the written pairs, never a mix.
func TestStore_PairIsAtomicUnderConcurrency(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			pairs := []models.Credentials{
				{AccessToken: "a1", RefreshToken: "r1"},
				{AccessToken: "a2", RefreshToken: "r2"},
			}
			require.NoError(t, s.Set(ctx, pairs[0]))

			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					assert.NoError(t, s.Set(ctx, pairs[i%2]))
				}(i)
			}

			for i := 0; i < 50; i++ {
				c, err := s.Get(ctx)
				require.NoError(t, err)
				assert.Contains(t, pairs, c)
			}
			wg.Wait()
		})
	}
}
