//nolint:revive // Package name matches the package it tests
package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitCodeFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain", errors.New("boom"), ExitGeneralError},
		{"validation", NewValidationError("bad", "", "", ""), ExitValidationError},
		{"missing key", fmt.Errorf("variant: %w", NewMissingKeyError("base", "arches", "base")), ExitMissingKey},
		{"unresolved", NewUnresolvedVariableError("flavour", "@flavour@"), ExitUnresolvedVariable},
		{"conflict", NewConflictError("linux-image-generic", "Depends", "a", "b"), ExitConflict},
		{"not found", NewNotFoundError("gone", "defines.yaml", ""), ExitNotFound},
		{"exit error wins", &ExitError{Code: ExitConflict, Err: NewValidationError("x", "", "", "")}, ExitConflict},
		{"wrapped exit error", fmt.Errorf("outer: %w", NewExitError(errors.New("inner"), 7)), 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitError(t *testing.T) {
	inner := NewNotFoundError("gone", "", "")
	e := NewExitError(inner, ExitNotFound)

	assert.Equal(t, inner.Error(), e.Error())
	assert.True(t, errors.Is(e, ErrNotFound))
	assert.Equal(t, "exit status 1", (&ExitError{Code: ExitGeneralError}).Error())
}
