package services

import (
	"errors"
	"fmt"

	"careercrafter/career-crafter-api/internal/repositories"
)

type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindExtraction        ErrorKind = "extraction"
	KindNoMatch           ErrorKind = "no_match"
	KindInternal          ErrorKind = "internal"
)

var (
	ErrNotFound          = repositories.ErrNotFound
	ErrUserAlreadyExists = errors.New("user already exists")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// UnsupportedFormatError is returned before any parser runs.
type UnsupportedFormatError struct {
	Filename    string
	ContentType string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported document type %q (%s): only PDF and DOCX files are accepted", e.Filename, e.ContentType)
}

type ExtractionError struct {
	Message string
	Err     error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// NoMatchError marks an empty but valid result.
type NoMatchError struct {
	Message string
}

func (e *NoMatchError) Error() string { return e.Message }

// KindOf classifies err for callers that map errors to responses.
func KindOf(err error) ErrorKind {
	var (
		validationErr  *ValidationError
		unsupportedErr *UnsupportedFormatError
		extractionErr  *ExtractionError
		noMatchErr     *NoMatchError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &unsupportedErr):
		return KindUnsupportedFormat
	case errors.As(err, &extractionErr):
		return KindExtraction
	case errors.As(err, &noMatchErr):
		return KindNoMatch
	default:
		return KindInternal
	}
}
