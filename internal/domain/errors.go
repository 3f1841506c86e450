package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrStorage           = errors.New("storage error")

	ErrTermNotFound      = fmt.Errorf("term %w", ErrNotFound)
	ErrChargeNotFound    = fmt.Errorf("charge %w", ErrNotFound)
	ErrWalletNotFound    = fmt.Errorf("wallet %w", ErrNotFound)
	ErrEnrolmentNotFound = fmt.Errorf("enrolment %w", ErrNotFound)
	ErrTutorNotFound     = fmt.Errorf("tutor %w", ErrNotFound)

	ErrLockTimeout = fmt.Errorf("lock wait timed out: %w", ErrStorage)
)

type FieldViolation struct {
	Field string
	Rule  string
}

// ValidationError lists every rejected request field. It matches ErrValidation
// under errors.Is.
type ValidationError struct {
	Violations []FieldViolation
}

func NewValidationError(violations ...FieldViolation) *ValidationError {
	return &ValidationError{Violations: violations}
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.Field + ": " + v.Rule
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// IsDomainError reports whether err belongs to the engine's own taxonomy
// rather than an unclassified storage failure.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrStorage)
}
