package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
	"github.com/kernelmeta/gencontrol/internal/rules"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Unwrap lets callers match the validation sentinel.
func (e ValidationErrors) Unwrap() error {
	return gerrors.ErrValidation
}

// Validate checks cfg for values the generator cannot use.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if strings.TrimSpace(cfg.Defines) == "" {
		errs = append(errs, ValidationError{Field: "defines", Message: "must not be empty"})
	}
	if cfg.Output != "" && strings.TrimSpace(cfg.Output) == "" {
		errs = append(errs, ValidationError{Field: "output", Message: "must not be empty or whitespace only"})
	}

	for _, group := range []struct {
		field string
		kinds []string
	}{
		{"links.flavour", cfg.Links.Flavour},
		{"links.extra", cfg.Links.Extra},
	} {
		for i, kind := range group.kinds {
			if err := validateKind(kind); err != "" {
				errs = append(errs, ValidationError{Field: fmt.Sprintf("%s[%d]", group.field, i), Message: err})
			}
		}
	}

	roles := make([]string, 0, len(cfg.Canonical))
	for role := range cfg.Canonical {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	known := KnownRoles()
	for _, role := range roles {
		field := "canonical." + role
		if !slices.Contains(known, role) {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("unknown role; expected one of %s", strings.Join(known, ", ")),
			})
			continue
		}
		for _, prefix := range cfg.Canonical[role] {
			if strings.TrimSpace(prefix) == "" || strings.ContainsAny(prefix, " \t/") {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: fmt.Sprintf("invalid package name prefix %q", prefix),
				})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateKind(kind string) string {
	switch {
	case strings.TrimSpace(kind) == "":
		return "must not be empty"
	case kind != filepath.Base(kind) || strings.HasPrefix(kind, "."):
		return fmt.Sprintf("%q must be a plain file suffix", kind)
	}
	return ""
}

// KnownRoles returns the package roles canonical prefixes can be set for.
func KnownRoles() []string {
	roles := []string{"xen"}
	for role := range rules.DefaultPrefixes() {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// ValidateFile validates a configuration file at the given path.
func ValidateFile(path string) error {
	exists, err := ConfigFileExists(path)
	if err != nil {
		return err
	}
	if !exists {
		return gerrors.NewNotFoundError("config file does not exist", path, "run 'gencontrol config init' to create one")
	}

	cfg, err := NewLoader().LoadWithDefaults(path)
	if err != nil {
		return gerrors.NewValidationError(err.Error(), path, "", "")
	}
	return Validate(cfg)
}
