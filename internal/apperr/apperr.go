// Package apperr defines the error kinds shared by repositories, services and
// handlers. Callers wrap a kind with fmt.Errorf("...: %w", kind) and test for it
// with errors.Is.
package apperr

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrValidation marks malformed or missing input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrForbidden marks an action the actor is not allowed to perform.
	ErrForbidden = errors.New("forbidden")
	// ErrConstraintViolation marks a foreign-key failure in the store.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrInvalidOperation marks a request that can never succeed, such as following oneself.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidCredentials is returned for any failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// FromDB converts a GORM error into one of the kinds above and keeps the
// original error in the chain. Unknown errors are returned unchanged.
func FromDB(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, args...)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", msg, ErrNotFound)
	case IsDuplicate(err):
		return fmt.Errorf("%s: %w: %v", msg, ErrConflict, err)
	case IsForeignKey(err):
		return fmt.Errorf("%s: %w: %v", msg, ErrConstraintViolation, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// IsDuplicate reports whether err is a unique-constraint failure. Drivers
// without error translation are matched on their message.
func IsDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// IsForeignKey reports whether err is a foreign-key failure.
func IsForeignKey(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}
