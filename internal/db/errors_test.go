package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolationPrimaryContact(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "contacts_one_primary_per_company",
		Message:        `duplicate key value violates unique constraint "contacts_one_primary_per_company"`,
	}
	wrapped := fmt.Errorf("failed to insert contact: %w", pgErr)

	assert.True(t, IsUniqueViolation(wrapped, "contacts_one_primary_per_company"))
	assert.True(t, IsUniqueViolation(wrapped, ""))
	assert.False(t, IsUniqueViolation(wrapped, "agents_one_per_user"))
}

func TestIsUniqueViolationAgentUser(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "agents_one_per_user"}
	wrapped := fmt.Errorf("failed to insert agent: %w", pgErr)

	assert.True(t, IsUniqueViolation(wrapped, "agents_one_per_user"))
	assert.False(t, IsUniqueViolation(wrapped, "contacts_one_primary_per_company"))
}

func TestIsUniqueViolationRejectsOtherCodes(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "contacts_company_id_fkey"}

	assert.False(t, IsUniqueViolation(fkErr, ""))
	assert.False(t, IsUniqueViolation(nil, "contacts_one_primary_per_company"))
	assert.False(t, IsUniqueViolation(errors.New("connection refused"), ""))
}

func TestIsUniqueViolationTextFallback(t *testing.T) {
	// Errors that lost the pgconn type still carry the constraint name
	// in the message.
	err := errors.New(`ERROR: duplicate key value violates unique constraint "contacts_one_primary_per_company" (SQLSTATE 23505)`)

	assert.True(t, IsUniqueViolation(err, "contacts_one_primary_per_company"))
	assert.False(t, IsUniqueViolation(err, "agents_one_per_user"))
}

func TestIsForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503", ConstraintName: "offers_object_id_fkey"}

	assert.True(t, IsForeignKeyViolation(fmt.Errorf("failed to insert offer: %w", pgErr)))
	assert.True(t, IsForeignKeyViolation(errors.New(`insert or update on table "offers" violates foreign key constraint "offers_object_id_fkey"`)))
	assert.False(t, IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsForeignKeyViolation(nil))
}

func TestIsCheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", ConstraintName: "objects_latitude_check"}

	assert.True(t, IsCheckViolation(fmt.Errorf("failed to insert object: %w", pgErr)))
	assert.True(t, IsCheckViolation(errors.New(`new row for relation "objects" violates check constraint "objects_latitude_check"`)))
	assert.False(t, IsCheckViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsCheckViolation(nil))
}

func TestWrapQueryErr(t *testing.T) {
	assert.ErrorIs(t, wrapQueryErr("contact", pgx.ErrNoRows), ErrNotFound)

	err := wrapQueryErr("contact", errors.New("connection refused"))
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "failed to query contact")
}
