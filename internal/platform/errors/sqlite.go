package errors

// SQLite helpers for mapping driver result codes to project codes and retry semantics

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ExtractSQLiteError returns the driver error if the root cause is one
func ExtractSQLiteError(err error) (*sqlite.Error, bool) {
	var se *sqlite.Error
	if stderrs.As(err, &se) {
		return se, true
	}
	return nil, false
}

// primaryCode strips the extended bits from a sqlite result code
func primaryCode(err error) (int, bool) {
	se, ok := ExtractSQLiteError(err)
	if !ok {
		return 0, false
	}
	return se.Code() & 0xff, true
}

// IsBusy reports SQLITE_BUSY or SQLITE_LOCKED
func IsBusy(err error) bool {
	c, ok := primaryCode(err)
	return ok && (c == sqlite3.SQLITE_BUSY || c == sqlite3.SQLITE_LOCKED)
}

// IsConstraint reports a constraint violation (primary key, unique, check)
func IsConstraint(err error) bool {
	c, ok := primaryCode(err)
	return ok && c == sqlite3.SQLITE_CONSTRAINT
}

// IsCorrupt reports a damaged or foreign database file
func IsCorrupt(err error) bool {
	c, ok := primaryCode(err)
	return ok && (c == sqlite3.SQLITE_CORRUPT || c == sqlite3.SQLITE_NOTADB)
}

// DBErrorCode maps a sqlite error to an ErrorCode
// !ok means err did not come from the driver
func DBErrorCode(err error) (ErrorCode, bool) {
	c, ok := primaryCode(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch c {
	case sqlite3.SQLITE_CONSTRAINT:
		return ErrorCodeConflict, true
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeStorage, true
}

// FromSQLite wraps a driver error with a mapped code, nil stays nil
// errors that did not come from the driver are still storage failures
func FromSQLite(err error, msg string) error {
	if err == nil {
		return nil
	}
	if e, ok := As(err); ok && e.code != ErrorCodeUnknown {
		return err
	}
	if code, ok := DBErrorCode(err); ok {
		return Wrap(err, code, msg)
	}
	return Wrap(err, ErrorCodeStorage, msg)
}

// FromSQLitef is the formatted variant of FromSQLite
func FromSQLitef(err error, format string, a ...any) error {
	return FromSQLite(err, fmt.Sprintf(format, a...))
}

// IsRetryable reports whether a storage error is transient lock contention
// local cancellation is never retryable
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsBusy(err) {
		return true
	}
	s := strings.ToLower(Root(err).Error())
	return strings.Contains(s, "database is locked") || strings.Contains(s, "database table is locked")
}
