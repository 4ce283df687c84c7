// Package pgerrs maps Postgres driver errors onto the errs taxonomy.
package pgerrs

import (
	"errors"

	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes handled by Translate.
const (
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	CheckViolation       = "23514"
)

// Translate converts err for the entity identified by param and id.
//
//   - gorm.ErrRecordNotFound becomes an ObjectNotFoundError
//   - serialization failures, deadlocks, lock timeouts and duplicate keys
//     become a ConflictError
//   - foreign key and check violations become a ValueIsInvalidError
//
// Any other error is returned unchanged.
func Translate(param string, id any, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(param, id)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case SerializationFailure, DeadlockDetected, LockNotAvailable, UniqueViolation:
		return errs.NewConflictErrorWithCause(param, id, err)
	case ForeignKeyViolation, CheckViolation:
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	default:
		return err
	}
}

// IsConflict reports whether err is a Postgres error that Translate turns
// into a ConflictError.
func IsConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case SerializationFailure, DeadlockDetected, LockNotAvailable, UniqueViolation:
		return true
	default:
		return false
	}
}
