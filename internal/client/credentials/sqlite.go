package credentials

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/kioskadmin/internal/client/models"
	"github.com/dmitrijs2005/kioskadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/kioskadmin/internal/dbx"
)

// SQLiteStore keeps the session in the metadata table of the local database.
// Multi-key writes run in one transaction so readers never see a mixed pair.
type SQLiteStore struct {
	db     *sql.DB
	cipher Cipher
}

// SQLiteOption configures a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithCipher seals tokens and the profile before they are written.
func WithCipher(c Cipher) SQLiteOption {
	return func(s *SQLiteStore) {
		s.cipher = c
	}
}

// NewSQLiteStore uses db, which must already carry the metadata table (see
// localdb.Open). Values are stored as is unless WithCipher is given.
func NewSQLiteStore(db *sql.DB, opts ...SQLiteOption) *SQLiteStore {
	s := &SQLiteStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SQLiteStore) Get(ctx context.Context) (models.Credentials, error) {
	values, err := metadata.NewSQLiteRepository(s.db).GetMany(ctx, KeyAccessToken, KeyRefreshToken)
	if err != nil {
		return models.Credentials{}, err
	}
	access, err := s.open(values[KeyAccessToken])
	if err != nil {
		return models.Credentials{}, err
	}
	refresh, err := s.open(values[KeyRefreshToken])
	if err != nil {
		return models.Credentials{}, err
	}
	return models.Credentials{AccessToken: string(access), RefreshToken: string(refresh)}, nil
}

func (s *SQLiteStore) Set(ctx context.Context, c models.Credentials) error {
	if !c.Complete() {
		return ErrIncompleteCredentials
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.writePair(ctx, metadata.NewSQLiteRepository(tx), c)
	})
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, KeyAccessToken, KeyRefreshToken, KeyUser)
}

func (s *SQLiteStore) SaveSession(ctx context.Context, c models.Credentials, user []byte) error {
	if !c.Complete() {
		return ErrIncompleteCredentials
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := s.writePair(ctx, repo, c); err != nil {
			return err
		}
		if user == nil {
			return repo.Delete(ctx, KeyUser)
		}
		return s.write(ctx, repo, KeyUser, user)
	})
}

func (s *SQLiteStore) User(ctx context.Context) ([]byte, error) {
	raw, err := metadata.NewSQLiteRepository(s.db).Get(ctx, KeyUser)
	if err != nil {
		return nil, err
	}
	return s.open(raw)
}

func (s *SQLiteStore) DropUser(ctx context.Context) error {
	return metadata.NewSQLiteRepository(s.db).Delete(ctx, KeyUser)
}

func (s *SQLiteStore) writePair(ctx context.Context, repo metadata.Repository, c models.Credentials) error {
	if err := s.write(ctx, repo, KeyAccessToken, []byte(c.AccessToken)); err != nil {
		return err
	}
	return s.write(ctx, repo, KeyRefreshToken, []byte(c.RefreshToken))
}

func (s *SQLiteStore) write(ctx context.Context, repo metadata.Repository, key string, value []byte) error {
	if s.cipher != nil {
		sealed, err := s.cipher.Seal(value)
		if err != nil {
			return err
		}
		value = sealed
	}
	return repo.Set(ctx, key, value)
}

// open returns nil for a missing value.
func (s *SQLiteStore) open(value []byte) ([]byte, error) {
	if value == nil || s.cipher == nil {
		return value, nil
	}
	return s.cipher.Open(value)
}
