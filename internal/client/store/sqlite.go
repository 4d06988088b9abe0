package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mpetrov/taskkeeper/internal/client/migrations"
	"github.com/mpetrov/taskkeeper/internal/dbx"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db dbx.DBTX
}

func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Load(ctx context.Context, collection string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM collections WHERE collection = ?`, collection).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load collection[%s]: %w", collection, err)
	}
	return data, nil
}

func (s *SQLiteStore) Save(ctx context.Context, collection string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (collection, data) VALUES (?, ?)
		ON CONFLICT(collection) DO UPDATE SET data = excluded.data
	`, collection, data)
	if err != nil {
		return fmt.Errorf("failed to save collection[%s]: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE collection = ?`, collection)
	if err != nil {
		return fmt.Errorf("failed to delete collection[%s]: %w", collection, err)
	}
	return nil
}

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the local SQLite database at dsn,
// applies migrations, and returns the connection.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}
