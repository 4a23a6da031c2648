// Package errors provides sentinel errors for gencontrol.
package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for known conditions.
var (
	// ErrMissingKey indicates a required configuration lookup found no value
	// at any dimension level.
	ErrMissingKey = errors.New("missing configuration key")

	// ErrUnresolvedVariable indicates a template placeholder without a
	// matching substitution variable.
	ErrUnresolvedVariable = errors.New("unresolved variable")

	// ErrDuplicatePackageConflict indicates two descriptors with the same
	// package name disagree on a field other than Architecture.
	ErrDuplicatePackageConflict = errors.New("duplicate package conflict")

	// ErrValidation indicates malformed input (defines, templates, config).
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a template, file, or section was not found.
	ErrNotFound = errors.New("not found")
)

// DetailError captures structured error information.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path or configuration key (optional).
	Location string

	// Field is the field name involved (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Type)
	b.WriteString("\n")

	if e.Location != "" {
		b.WriteString("  Location: ")
		b.WriteString(e.Location)
		b.WriteString("\n")
	}
	if e.Field != "" {
		b.WriteString("  Field: ")
		b.WriteString(e.Field)
		b.WriteString("\n")
	}

	// Map iteration is random; keep the rendering stable.
	keys := make([]string, 0, len(e.Context))
	for k := range e.Context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString("  ")
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(e.Context[k])
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(e.Message)
	b.WriteString("\n")

	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
		b.WriteString("\n")
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewMissingKeyError creates a missing key error for a section/field lookup.
// location is the rendered dimension chain that was searched.
func NewMissingKeyError(section, field, location string) error {
	return &DetailError{
		Type:     "missing configuration key",
		Message:  fmt.Sprintf("no value for %s.%s at any level", section, field),
		Location: location,
		Field:    field,
		Hint:     "define the key globally or for the architecture being generated",
		Cause:    ErrMissingKey,
	}
}

// NewUnresolvedVariableError creates an error for a placeholder with no value.
func NewUnresolvedVariableError(name, input string) error {
	return &DetailError{
		Type:    "unresolved variable",
		Message: fmt.Sprintf("placeholder @%s@ has no value", name),
		Field:   name,
		Context: map[string]string{"input": input},
		Cause:   ErrUnresolvedVariable,
	}
}

// NewConflictError creates a duplicate package conflict error.
func NewConflictError(pkg, field, first, second string) error {
	return &DetailError{
		Type:    "duplicate package conflict",
		Message: fmt.Sprintf("package %s generated with different %s values", pkg, field),
		Field:   field,
		Context: map[string]string{
			"first":  first,
			"second": second,
		},
		Hint:  "make the template field independent of the architecture, or disable strict mode",
		Cause: ErrDuplicatePackageConflict,
	}
}

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// Wrap wraps an error with a sentinel error type.
func Wrap(sentinel error, message string) error {
	return fmt.Errorf("%s: %w", message, sentinel)
}
