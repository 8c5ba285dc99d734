package prefs

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/keyloom/internal/log"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteBackend stores preferences in a SQLite database file.
type SQLiteBackend struct {
	conn *sql.DB
	path string
}

// NewSQLiteBackend opens (creating if needed) the database at path and
// applies pending migrations. A database already at an older schema
// version is copied to path+".bak" before it is upgraded.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer, and :memory: databases are per-connection.
	conn.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	b := &SQLiteBackend{conn: conn, path: path}
	if err := b.migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return b, nil
}

// migrate applies pending migrations through golang-migrate. The migrate
// instance is not closed: its database driver would close b.conn.
func (b *SQLiteBackend) migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	defer src.Close()

	driver, err := sqlite.WithInstance(b.conn, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to prepare migrations: %w", err)
	}

	latest, err := latestVersion(src)
	if err != nil {
		return err
	}
	current, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		// fresh database
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	case dirty:
		return fmt.Errorf("schema version %d is dirty", current)
	case current < latest:
		if err := b.backup(); err != nil {
			return err
		}
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	log.Info(log.CatPrefs, "Applied migrations", "from", current, "to", latest)
	return nil
}

// latestVersion walks the source to its last migration version.
func latestVersion(src source.Driver) (uint, error) {
	version, err := src.First()
	if err != nil {
		return 0, fmt.Errorf("failed to walk migrations: %w", err)
	}
	for {
		next, err := src.Next(version)
		if errors.Is(err, os.ErrNotExist) {
			return version, nil
		}
		if err != nil {
			return 0, fmt.Errorf("failed to walk migrations: %w", err)
		}
		version = next
	}
}

// backup copies the database file to path+".bak".
func (b *SQLiteBackend) backup() error {
	if b.path == ":memory:" {
		return nil
	}
	// Fold the WAL into the main file so the copy is complete.
	if _, err := b.conn.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		return fmt.Errorf("failed to checkpoint before backup: %w", err)
	}
	info, err := os.Stat(b.path)
	if err != nil || info.Size() == 0 {
		return nil //nolint:nilerr // nothing to back up
	}

	src, err := os.Open(b.path)
	if err != nil {
		return fmt.Errorf("failed to open database for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(b.path+".bak", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("failed to write backup: %w", err)
	}
	return dst.Close()
}

func (b *SQLiteBackend) Load(ctx context.Context, key Key) (string, bool, error) {
	var value string
	err := b.conn.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, string(key)).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load preference %s: %w", key, err)
	}
	return value, true, nil
}

func (b *SQLiteBackend) Save(ctx context.Context, key Key, value string) error {
	_, err := b.conn.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		string(key), value, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

// Close closes the database connection.
func (b *SQLiteBackend) Close() error {
	return b.conn.Close()
}

// Path returns the database file path.
func (b *SQLiteBackend) Path() string {
	return b.path
}
