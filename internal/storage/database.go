package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

const createNotesTable = `CREATE TABLE IF NOT EXISTS notes (
	id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	body TEXT NOT NULL DEFAULT '',
	created_at REAL NOT NULL,
	updated_at REAL
);`

const dropNotesTable = `DROP TABLE notes;`

type dbOptions struct {
	driver  string
	maxSize int64
}

// Option configures New.
type Option func(*dbOptions)

// WithDriver overrides the database/sql driver name.
func WithDriver(name string) Option {
	return func(o *dbOptions) { o.driver = name }
}

// WithMaxSize caps the database file at roughly maxBytes using PRAGMA max_page_count.
// Writes beyond the cap fail with SQLITE_FULL. Zero means unlimited.
func WithMaxSize(maxBytes int64) Option {
	return func(o *dbOptions) { o.maxSize = maxBytes }
}

// New opens a SQLite database connection at the given path.
// It returns a *StoreError wrapping ErrUnavailable when no usable driver or path exists,
// and ErrOpenFailed when the database cannot be opened.
func New(path string, opts ...Option) (*sql.DB, error) {
	o := dbOptions{driver: DriverName}
	for _, opt := range opts {
		opt(&o)
	}

	if !slices.Contains(sql.Drivers(), o.driver) {
		return nil, newStoreError("open", ErrUnavailable, fmt.Errorf("driver %q not registered", o.driver))
	}
	if path == "" {
		return nil, newStoreError("open", ErrUnavailable, errors.New("no database path configured"))
	}

	db, err := sql.Open(o.driver, path)
	if err != nil {
		return nil, newStoreError("open", ErrOpenFailed, err)
	}

	// A single long-lived connection: the engine serializes every transaction on it
	// and per-connection pragmas stay in effect.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, newStoreError("open", ErrOpenFailed, err)
	}

	if o.maxSize > 0 {
		if err := applyMaxSize(db, o.maxSize); err != nil {
			_ = db.Close()
			return nil, newStoreError("open", ErrOpenFailed, err)
		}
	}

	return db, nil
}

func applyMaxSize(db *sql.DB, maxBytes int64) error {
	var pageSize int64
	if err := db.QueryRow("PRAGMA page_size").Scan(&pageSize); err != nil {
		return fmt.Errorf("read page size: %w", err)
	}
	pages := max(maxBytes/pageSize, 1)
	if _, err := db.Exec(fmt.Sprintf("PRAGMA max_page_count = %d", pages)); err != nil {
		return fmt.Errorf("set max page count: %w", err)
	}
	return nil
}

// Migrate creates the notes table if it does not exist.
// It is idempotent and can be run multiple times safely.
func Migrate(ctx context.Context, db *sql.DB, sink ErrorSink) error {
	return execTx(ctx, db, "create table", ErrWriteFailed, sink, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, createNotesTable)
		return err
	})
}

// execTx runs fn inside its own transaction. Failures are rolled back and
// handed to sink as a *StoreError of the given kind.
func execTx(ctx context.Context, db *sql.DB, op string, kind error, sink ErrorSink, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return sink.Handle(ctx, newStoreError(op, kind, err))
	}

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return sink.Handle(ctx, toStoreError(op, kind, err))
	}

	if err := tx.Commit(); err != nil {
		return sink.Handle(ctx, newStoreError(op, kind, err))
	}
	return nil
}

// toStoreError keeps a *StoreError raised inside fn and wraps anything else.
func toStoreError(op string, kind, err error) *StoreError {
	if storeErr, ok := AsStoreError(err); ok {
		return storeErr
	}
	return newStoreError(op, kind, err)
}
