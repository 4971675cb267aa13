package serializer

import (
	"errors"
	"strings"
)

// ErrValidation matches every *ValidationError through errors.Is.
var ErrValidation = errors.New("validation error")

const (
	CodeRequired = "required"
	CodeType     = "type"
	CodeInvalid  = "invalid"
	CodeNull     = "null"

	// FieldBody names the payload as a whole.
	FieldBody = "body"
)

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError is returned when a payload cannot become the requested shape.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError builds a ValidationError with a single field error.
func NewValidationError(field, code, message string) *ValidationError {
	e := &ValidationError{}
	e.Add(field, code, message)
	return e
}

// Add appends a field error.
func (e *ValidationError) Add(field, code, message string) {
	e.Errors = append(e.Errors, FieldError{Field: field, Code: code, Message: message})
}

// Empty reports whether no field error was recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Errors) == 0
}

func (e *ValidationError) Error() string {
	if e.Empty() {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HasField reports whether field was rejected with code.
func (e *ValidationError) HasField(field, code string) bool {
	if e == nil {
		return false
	}
	for _, fe := range e.Errors {
		if fe.Field == field && fe.Code == code {
			return true
		}
	}
	return false
}
