package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no experiment exists for an id.
	ErrNotFound = errors.New("experiment not found")
	// ErrUnsupportedFormat is returned for export formats other than docx and pdf.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ValidationError carries a message safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// Stage names a step of the submission, view or export flow.
type Stage string

const (
	StageRender  Stage = "render"
	StagePersist Stage = "persist"
	StageExport  Stage = "export"
	StageList    Stage = "list"
	StageFetch   Stage = "fetch"
)

// StageError wraps a failure with the step it happened in.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
