// ABOUTME: Error classification for SQLite failures
// ABOUTME: Maps driver errors onto conflict, missing-parent and unavailable sentinels
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConflict reports a UNIQUE or PRIMARY KEY violation
	ErrConflict = errors.New("sqlite: uniqueness conflict")
	// ErrMissingParent reports a FOREIGN KEY violation
	ErrMissingParent = errors.New("sqlite: referenced row does not exist")
	// ErrUnavailable reports any other store failure (I/O, busy, closed pool)
	ErrUnavailable = errors.New("sqlite: store unavailable")
)

// classify wraps err with one of the package sentinels. sql.ErrNoRows and
// already classified errors pass through unchanged.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrMissingParent),
		errors.Is(err, ErrUnavailable):
		return err
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("%w: %v", ErrMissingParent, err)
	default:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// isUniqueViolation checks if an error is a SQLite UNIQUE constraint violation.
// PRIMARY KEY violations on TEXT keys are reported with the same message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
