package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced record does not exist or is tombstoned.
	ErrNotFound = errors.New("record not found")

	// ErrIntegrityConflict is returned when a mutation would break a relationship:
	// a payment whose order belongs to another party, or deleting a currency,
	// product or party that historical records still reference.
	ErrIntegrityConflict = errors.New("integrity conflict")
)

// ValidationError reports malformed or missing input. Nothing was written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// PersistenceError wraps a storage failure. The surrounding transaction was rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("ledger: %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

func notFound(entity string, id uint) error {
	return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
}

func conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrIntegrityConflict)
}

// classify leaves domain errors untouched and turns everything else into a
// PersistenceError for op.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var ve *ValidationError
	var pe *PersistenceError
	switch {
	case errors.As(err, &ve), errors.As(err, &pe):
		return err
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrIntegrityConflict):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gorm.ErrForeignKeyViolated), errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %v: %w", op, err, ErrIntegrityConflict)
	}
	return &PersistenceError{Op: op, Err: err}
}

func fmtField(list string, i int, name string) string {
	return fmt.Sprintf("%s[%d].%s", list, i, name)
}
