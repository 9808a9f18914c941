package util

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is server error 1062, raised on unique index
// violations.
const mysqlDuplicateEntry = 1062

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrQuestionNotFound = errors.New("question not found")
	ErrRunNotFound      = errors.New("run not found")
	ErrRatingNotFound   = errors.New("rating not found")

	ErrRunNotActive        = errors.New("run is no longer active")
	ErrRunExpired          = errors.New("run duration exceeded")
	ErrRunNotTerminal      = errors.New("run is still active")
	ErrRunAlreadyFinalized = errors.New("run already finalized")
	ErrDuplicateAnswer     = errors.New("answer already submitted for this position")
	ErrOutOfOrderAnswer    = errors.New("answer sequence out of order")

	// ErrVersionConflict marks a lost-update detected on the Run or Rating
	// row. Retryable; the engine retries a bounded number of times before
	// surfacing it.
	ErrVersionConflict = errors.New("concurrent update conflict")
)

// IsDuplicateKey reports whether err is a MySQL unique-key violation,
// anywhere in the wrap chain.
func IsDuplicateKey(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry
}
