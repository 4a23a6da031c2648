package templates

import (
	"errors"
	"fmt"

	"github.com/kernelmeta/gencontrol/internal/control"
	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// Problem is one validation finding.
type Problem struct {
	Template string
	Message  string
}

// Validate checks every registered template: required ones must exist,
// control templates must parse and every entry must name its package
// (or its source for control.source).
func Validate(c *Catalog) []Problem {
	var problems []Problem

	for _, t := range List() {
		if !c.Has(t.Name) {
			if t.Required {
				problems = append(problems, Problem{Template: t.Name, Message: "required template is missing"})
			}
			continue
		}

		if t.Kind == KindText {
			if _, err := c.Text(t.Name); err != nil {
				problems = append(problems, Problem{Template: t.Name, Message: err.Error()})
			}
			continue
		}

		entries, err := c.Entries(t.Name)
		if err != nil {
			problems = append(problems, Problem{Template: t.Name, Message: err.Error()})
			continue
		}
		if len(entries) == 0 && t.Required {
			problems = append(problems, Problem{Template: t.Name, Message: "template has no entries"})
		}

		key := control.FieldPackage
		if t.Name == Source {
			key = control.FieldSource
		}
		for i, e := range entries {
			if e.Str(key) == "" {
				problems = append(problems, Problem{
					Template: t.Name,
					Message:  fmt.Sprintf("entry %d has no %s field", i, key),
				})
			}
		}
	}
	return problems
}

// ValidationError folds problems into a single error, or nil.
func ValidationError(problems []Problem) error {
	if len(problems) == 0 {
		return nil
	}
	errs := make([]error, 0, len(problems)+1)
	errs = append(errs, gerrors.ErrValidation)
	for _, p := range problems {
		errs = append(errs, fmt.Errorf("%s: %s", p.Template, p.Message))
	}
	return errors.Join(errs...)
}
