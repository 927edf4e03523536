// Package localdb opens the console's local SQLite database and brings its
// schema up to date.
package localdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/kioskadmin/internal/client/migrations"
	"github.com/dmitrijs2005/kioskadmin/internal/filex"
)

// RunMigrations applies the embedded migrations. Already applied versions
// are skipped.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to migrate local db: %w", err)
	}
	return nil
}

// Open opens the database file at path, creating its directory if needed, and
// migrates it. The caller owns the returned handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("failed to prepare local db directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local db: %w", err)
	}
	// a single writer keeps sqlite from returning SQLITE_BUSY under the
	// concurrent refresh path
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
