package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

func wrapQueryErr(entity string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to query %s: %w", entity, err)
}

// IsUniqueViolation reports whether err is a unique-constraint
// violation, optionally narrowed to a single constraint name. Handlers
// use this to turn storage-level rejections (duplicate primary
// contact, duplicate agent user) into form errors.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != "23505" {
			return false
		}
		return constraint == "" || pgErr.ConstraintName == constraint
	}
	if err == nil {
		return false
	}
	// Wrapped or text-only errors still carry the constraint name.
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") &&
		strings.Contains(msg, constraint)
}

// IsForeignKeyViolation reports whether err is a foreign-key
// violation, i.e. a reference to a row that does not exist.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return err != nil && strings.Contains(err.Error(), "violates foreign key constraint")
}

// IsCheckViolation reports whether err is a CHECK-constraint
// violation (out-of-range coordinate, non-positive area and the like
// that slipped past request validation).
func IsCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23514"
	}
	return err != nil && strings.Contains(err.Error(), "violates check constraint")
}
