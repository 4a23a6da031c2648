package generate

import (
	"fmt"
	"slices"

	gerrors "github.com/kernelmeta/gencontrol/internal/errors"
)

// Phase is a step of a generation run.
type Phase int

const (
	// PhaseNew is a generator that has not started.
	PhaseNew Phase = iota
	// PhaseSetup resets side files and emits the main packages and rules.
	PhaseSetup
	// PhaseVariant runs once per (arch, featureset, flavour).
	PhaseVariant
	// PhaseExtra emits the architecture-only dummy packages.
	PhaseExtra
	// PhaseDone is a finished run.
	PhaseDone
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseSetup:
		return "setup"
	case PhaseVariant:
		return "variant"
	case PhaseExtra:
		return "extra"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// transitions lists the phases reachable from each phase. Setup may go
// straight to Extra when no variant is declared.
var transitions = map[Phase][]Phase{
	PhaseNew:     {PhaseSetup},
	PhaseSetup:   {PhaseVariant, PhaseExtra},
	PhaseVariant: {PhaseVariant, PhaseExtra},
	PhaseExtra:   {PhaseDone},
}

// CanTransition reports whether a run may move from one phase to another.
func CanTransition(from, to Phase) bool {
	return slices.Contains(transitions[from], to)
}

func transitionError(from, to Phase) error {
	return gerrors.NewValidationError(
		fmt.Sprintf("cannot enter %s phase from %s", to, from), "", "",
		"phases run in order: setup, variants, extra")
}
