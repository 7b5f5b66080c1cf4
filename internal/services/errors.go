package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ValidationError is returned before any write when input is missing or
// malformed.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError names the entity that does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return e.Entity + " not found"
}

// ConflictError is a request that contradicts current state, such as
// deleting the default route status.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// DuplicateError is a unique constraint violation.
type DuplicateError struct {
	Entity string
}

func (e *DuplicateError) Error() string {
	return e.Entity + " already exists"
}

var ErrInvalidCredentials = errors.New("invalid username or password")

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// storeErr maps store errors on entity to service errors and wraps the rest
// with op.
func storeErr(op, entity string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return &NotFoundError{Entity: entity}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &DuplicateError{Entity: entity}
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &ConflictError{Message: entity + " references a missing record or is still referenced"}
	}
	var (
		ve *ValidationError
		ne *NotFoundError
		ce *ConflictError
		de *DuplicateError
	)
	if errors.As(err, &ve) || errors.As(err, &ne) || errors.As(err, &ce) || errors.As(err, &de) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
