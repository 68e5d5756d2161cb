package storage

import (
	"fmt"
	"strconv"
)

// NoteRecord represents a note row in the database.
type NoteRecord struct {
	ID        int64  // 0 until the store assigns one
	Title     string // Required, non-empty at save time
	Body      string
	CreatedAt int64 // Epoch millis, set once on insert
	UpdatedAt int64 // Epoch millis, 0 when NULL
}

// Row is a generic column-name to value mapping as produced by a query.
type Row map[string]any

// NewNote creates an unsaved note.
func NewNote(title, body string) NoteRecord {
	return NoteRecord{Title: title, Body: body}
}

// IsPersisted reports whether the store has assigned an ID.
func (n NoteRecord) IsPersisted() bool {
	return n.ID > 0
}

// String returns a debug representation listing every field.
func (n NoteRecord) String() string {
	return fmt.Sprintf("{id:%d, title:%s, body:%s, created_at:%d, updated_at:%d}",
		n.ID, n.Title, n.Body, n.CreatedAt, n.UpdatedAt)
}

// FromRow maps a row into a NoteRecord.
// id, title and created_at are required; body defaults to "" and a NULL updated_at to 0.
func FromRow(row Row) (NoteRecord, error) {
	var note NoteRecord
	var err error

	for _, col := range []string{"id", "title", "created_at"} {
		if v, ok := row[col]; !ok || v == nil {
			return NoteRecord{}, fmt.Errorf("row missing required column %q", col)
		}
	}

	if note.ID, err = toInt64(row["id"]); err != nil {
		return NoteRecord{}, fmt.Errorf("column id: %w", err)
	}
	if note.Title, err = toString(row["title"]); err != nil {
		return NoteRecord{}, fmt.Errorf("column title: %w", err)
	}
	if note.CreatedAt, err = toInt64(row["created_at"]); err != nil {
		return NoteRecord{}, fmt.Errorf("column created_at: %w", err)
	}

	if v, ok := row["body"]; ok && v != nil {
		if note.Body, err = toString(v); err != nil {
			return NoteRecord{}, fmt.Errorf("column body: %w", err)
		}
	}
	if v, ok := row["updated_at"]; ok && v != nil {
		if note.UpdatedAt, err = toInt64(v); err != nil {
			return NoteRecord{}, fmt.Errorf("column updated_at: %w", err)
		}
	}

	return note, nil
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int:
		return int64(x), nil
	case float64:
		return int64(x), nil
	case []byte:
		return parseNumber(string(x))
	case string:
		return parseNumber(x)
	default:
		return 0, fmt.Errorf("unsupported numeric type %T", v)
	}
}

func parseNumber(s string) (int64, error) {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return int64(f), nil
}

func toString(v any) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	default:
		return "", fmt.Errorf("unsupported text type %T", v)
	}
}
