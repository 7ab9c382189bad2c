// ABOUTME: Error taxonomy shared by the chambers core services
// ABOUTME: Maps store-level sentinels onto the errors callers branch on
package core

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/harper/chambers/internal/storage/sqlite"
)

var (
	// ErrStoreUnavailable means the store could not be reached or failed mid-operation.
	// Nothing was written; the caller may retry.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNotFound means a referenced account or chamber does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalid means the input failed validation
	ErrInvalid = errors.New("invalid input")
	// ErrEmptySubmission means the submitted text was empty or whitespace only
	ErrEmptySubmission = errors.New("empty submission")
	// ErrSuspended means the account exists but may not sign in
	ErrSuspended = errors.New("account suspended")
)

// storeErr translates a store error for op into the core taxonomy. Anything
// that is not a missing row or parent is reported as ErrStoreUnavailable.
func storeErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows), errors.Is(err, sqlite.ErrMissingParent):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	default:
		return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
	}
}
