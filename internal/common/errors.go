package common

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound marks lookups whose target row does not exist.
var ErrNotFound = errors.New("not found")

// ValidationError reports a malformed or missing request field. It is raised
// before anything reaches storage.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConstraintViolationError reports a foreign-key, uniqueness or check
// constraint failure during a write. It is a client error: the referenced
// row is missing or the value conflicts, not a storage fault.
type ConstraintViolationError struct {
	Constraint string
	Table      string
	Err        error
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("constraint %q violated on %s", e.Constraint, e.Table)
}

func (e *ConstraintViolationError) Unwrap() error { return e.Err }

// TransientStorageError wraps connection or transaction failures. The caller
// may retry; the operation was rolled back and nothing was applied.
type TransientStorageError struct {
	Op  string
	Err error
}

func (e *TransientStorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *TransientStorageError) Unwrap() error { return e.Err }

// Postgres error codes for the constraint classes we translate.
const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// MapStorageError translates a pgx error into the repository error taxonomy.
// Row absence becomes ErrNotFound, constraint failures become
// ConstraintViolationError, and everything else is treated as transient.
func MapStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation:
			return &ConstraintViolationError{
				Constraint: pgErr.ConstraintName,
				Table:      pgErr.TableName,
				Err:        err,
			}
		}
	}
	return &TransientStorageError{Op: op, Err: err}
}

// IsClientError reports whether err should surface as a 4xx response.
func IsClientError(err error) bool {
	var ve *ValidationError
	var cve *ConstraintViolationError
	return errors.As(err, &ve) || errors.As(err, &cve)
}
