package storage

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrUnavailable is returned when no persistent storage capability exists.
	ErrUnavailable = errors.New("persistent storage unavailable")
	// ErrOpenFailed is returned when the database exists as a capability but could not be opened.
	ErrOpenFailed = errors.New("failed to open database")
	// ErrWriteFailed is returned when an insert, update, delete or schema change fails.
	ErrWriteFailed = errors.New("write failed")
	// ErrQueryFailed is returned when a listing or search fails.
	ErrQueryFailed = errors.New("query failed")
)

// StoreError describes a failed store operation.
type StoreError struct {
	Op   string // e.g. "save", "list"
	Kind error  // One of the Err* sentinels above
	Code int    // SQLite result code, 0 if the failure did not come from the engine
	Err  error
}

func newStoreError(op string, kind, err error) *StoreError {
	return &StoreError{
		Op:   op,
		Kind: kind,
		Code: engineCode(err),
		Err:  err,
	}
}

func (e *StoreError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Message returns the human-readable text shown to the user.
func (e *StoreError) Message() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

// AsStoreError extracts a *StoreError from err.
func AsStoreError(err error) (*StoreError, bool) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}

func engineCode(err error) int {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return int(sqliteErr.Code)
	}
	return 0
}
