package service

import (
	"errors"
	"sort"
	"strings"

	"gorm.io/gorm"

	"festive-births-svc/internal/capture"
)

var (
	ErrNotFound               = errors.New("record not found")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrInvalidCredentials     = errors.New("invalid persal number or password")
	ErrPasswordChangeRequired = errors.New("password change required")
)

// ValidationError carries per-field messages for a rejected submission
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add appends a message for field
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// NewValidationError builds a ValidationError with a single field message
func NewValidationError(field, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, message)
	return e
}

// translateError maps store and capture errors into the service error set
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var fe capture.FieldErrors
	if errors.As(err, &fe) {
		return &ValidationError{Fields: fe}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func (e *ValidationError) hasField(field string) bool {
	return len(e.Fields[field]) > 0
}
