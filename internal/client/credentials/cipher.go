package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kioskadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/kioskadmin/internal/cryptox"
)

// KeySalt holds the Argon2 salt of the passphrase cipher. Logout keeps it; Wipe
// removes it.
const KeySalt = "store_salt"

var ErrUnreadable = errors.New("stored session cannot be decrypted")

// Cipher protects values at rest.
type Cipher interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type passphraseCipher struct {
	key []byte
}

// NewPassphraseCipher derives the at-rest key from passphrase and the salt
// kept in db. The salt is generated and saved on first use.
func NewPassphraseCipher(ctx context.Context, db *sql.DB, passphrase []byte) (Cipher, error) {
	repo := metadata.NewSQLiteRepository(db)
	salt, err := repo.Get(ctx, KeySalt)
	if err != nil {
		return nil, err
	}
	if salt == nil {
		if salt, err = cryptox.NewSalt(); err != nil {
			return nil, fmt.Errorf("failed to generate salt: %w", err)
		}
		if err := repo.Set(ctx, KeySalt, salt); err != nil {
			return nil, err
		}
	}
	return &passphraseCipher{key: cryptox.DeriveKey(passphrase, salt)}, nil
}

func (c *passphraseCipher) Seal(plaintext []byte) ([]byte, error) {
	return cryptox.Seal(c.key, plaintext)
}

func (c *passphraseCipher) Open(sealed []byte) ([]byte, error) {
	plaintext, err := cryptox.Open(c.key, sealed)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	return plaintext, nil
}

// Wipe empties the session table, the cipher salt included. Values sealed
// under an earlier passphrase become unreachable and the next
// NewPassphraseCipher starts with a fresh salt.
func Wipe(ctx context.Context, db *sql.DB) error {
	return metadata.NewSQLiteRepository(db).Clear(ctx)
}
