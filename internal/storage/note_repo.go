package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"skypad/internal/contextutil"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// Field names a sortable notes column.
type Field string

const (
	FieldID        Field = "id"
	FieldTitle     Field = "title"
	FieldBody      Field = "body"
	FieldCreatedAt Field = "created_at"
	FieldUpdatedAt Field = "updated_at"
)

// Valid reports whether f is a notes column.
func (f Field) Valid() bool {
	switch f {
	case FieldID, FieldTitle, FieldBody, FieldCreatedAt, FieldUpdatedAt:
		return true
	}
	return false
}

// ListOptions controls List.
type ListOptions struct {
	Filter     string // Substring matched against title or body; empty lists everything
	OrderBy    Field  // Defaults to FieldID
	Descending bool
}

const selectNotes = "SELECT id, title, body, created_at, updated_at FROM notes"

// NoteRepo provides methods for note operations.
type NoteRepo struct {
	db   *sql.DB
	sink ErrorSink
	now  func() time.Time
}

// RepoOption configures a NoteRepo.
type RepoOption func(*NoteRepo)

// WithErrorSink replaces the default ReportingSink used by CRUD operations.
func WithErrorSink(sink ErrorSink) RepoOption {
	return func(r *NoteRepo) { r.sink = sink }
}

// WithClock sets the time source used for created_at and updated_at.
func WithClock(now func() time.Time) RepoOption {
	return func(r *NoteRepo) { r.now = now }
}

// NewNoteRepo creates a new NoteRepo.
func NewNoteRepo(db *sql.DB, opts ...RepoOption) *NoteRepo {
	r := &NoteRepo{
		db:   db,
		sink: ReportingSink{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Initialize ensures the notes table exists. Failures go to the fatal sink.
func (r *NoteRepo) Initialize(ctx context.Context) error {
	return Migrate(ctx, r.db, FatalSink{})
}

// DropNotesTable drops the notes table, reporting failures to sink.
func (r *NoteRepo) DropNotesTable(ctx context.Context, sink ErrorSink) error {
	return execTx(ctx, r.db, "drop table", ErrWriteFailed, sink, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, dropNotesTable)
		return err
	})
}

// List returns every note matching opts, fully materialized.
func (r *NoteRepo) List(ctx context.Context, opts ListOptions) ([]NoteRecord, error) {
	orderBy := opts.OrderBy
	if orderBy == "" {
		orderBy = FieldID
	}
	if !orderBy.Valid() {
		return nil, r.sink.Handle(ctx, newStoreError("list", ErrQueryFailed,
			fmt.Errorf("unknown order field %q", orderBy)))
	}

	var sb strings.Builder
	var args []any
	sb.WriteString(selectNotes)
	if opts.Filter != "" {
		pattern := "%" + escapeLike(opts.Filter) + "%"
		sb.WriteString(` WHERE title LIKE ? ESCAPE '\' OR body LIKE ? ESCAPE '\'`)
		args = append(args, pattern, pattern)
	}
	// orderBy is whitelisted above, so it is safe to splice in.
	sb.WriteString(" ORDER BY " + string(orderBy))
	if opts.Descending {
		sb.WriteString(" DESC")
	}

	var notes []NoteRecord
	err := execTx(ctx, r.db, "list", ErrQueryFailed, r.sink, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, sb.String(), args...)
		if err != nil {
			return err
		}
		notes, err = scanNotes(rows)
		return err
	})
	if err != nil {
		return nil, err
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "listed notes",
		"filter", opts.Filter, "order_by", orderBy, "descending", opts.Descending, "count", len(notes))
	return notes, nil
}

// Get returns the note with the given id, or ErrNotFound.
func (r *NoteRepo) Get(ctx context.Context, id int64) (NoteRecord, error) {
	var notes []NoteRecord
	err := execTx(ctx, r.db, "get", ErrQueryFailed, r.sink, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, selectNotes+" WHERE id = ?", id)
		if err != nil {
			return err
		}
		notes, err = scanNotes(rows)
		return err
	})
	if err != nil {
		return NoteRecord{}, err
	}
	if len(notes) == 0 {
		return NoteRecord{}, ErrNotFound
	}
	return notes[0], nil
}

// Save inserts the note when it has no ID, otherwise updates the row with its ID.
// The returned note carries the assigned ID and timestamps.
// Updating an ID with no row is not an error.
// On update, CreatedAt is taken from the stored row whatever the caller passed.
func (r *NoteRepo) Save(ctx context.Context, note NoteRecord) (NoteRecord, error) {
	now := r.now().UnixMilli()

	if note.ID == 0 {
		note.CreatedAt = now
		note.UpdatedAt = now
		err := execTx(ctx, r.db, "save", ErrWriteFailed, r.sink, func(tx *sql.Tx) error {
			result, err := tx.ExecContext(ctx,
				"INSERT INTO notes (title, body, created_at, updated_at) VALUES (?, ?, ?, ?)",
				note.Title, note.Body, note.CreatedAt, note.UpdatedAt,
			)
			if err != nil {
				return err
			}
			note.ID, err = result.LastInsertId()
			return err
		})
		if err != nil {
			return NoteRecord{}, err
		}
		contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note created", "id", note.ID)
		return note, nil
	}

	note.UpdatedAt = max(now, note.CreatedAt)
	var affected int64
	err := execTx(ctx, r.db, "save", ErrWriteFailed, r.sink, func(tx *sql.Tx) error {
		// created_at is owned by the row, not by the caller's copy.
		var raw any
		err := tx.QueryRowContext(ctx, "SELECT created_at FROM notes WHERE id = ?", note.ID).Scan(&raw)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		if note.CreatedAt, err = toInt64(raw); err != nil {
			return fmt.Errorf("read created_at: %w", err)
		}
		note.UpdatedAt = max(now, note.CreatedAt)

		result, err := tx.ExecContext(ctx,
			"UPDATE notes SET title = ?, body = ?, updated_at = ? WHERE id = ?",
			note.Title, note.Body, note.UpdatedAt, note.ID,
		)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return NoteRecord{}, err
	}

	logger := contextutil.LoggerFromContext(ctx)
	if affected == 0 {
		logger.DebugContext(ctx, "update matched no row", "id", note.ID)
	} else {
		logger.InfoContext(ctx, "note updated", "id", note.ID)
	}
	return note, nil
}

// Delete removes the row with the note's ID. Deleting a missing ID is not an error.
func (r *NoteRepo) Delete(ctx context.Context, note NoteRecord) error {
	err := execTx(ctx, r.db, "delete", ErrWriteFailed, r.sink, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", note.ID)
		return err
	})
	if err != nil {
		return err
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "note deleted", "id", note.ID)
	return nil
}

// Ping checks that the database connection is alive.
func (r *NoteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// scanNotes reads every row into a NoteRecord via FromRow and closes rows.
func scanNotes(rows *sql.Rows) ([]NoteRecord, error) {
	defer func() {
		_ = rows.Close()
	}()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var notes []NoteRecord
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			row[col] = values[i]
		}
		note, err := FromRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to map note row: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// escapeLike escapes LIKE wildcards so the filter matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
