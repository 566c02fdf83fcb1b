package ui

import (
	"fmt"

	"github.com/eddieland/twig/internal/cascade"
)

const (
	optionContinue  = "Continue (I've resolved the conflict)"
	optionAbortOrig = "Abort cascade, return to starting branch"
	optionAbortHere = "Abort this rebase, stay on this branch"
	optionSkip      = "Skip this branch and continue the cascade"
)

// CascadeConflictPrompter adapts a Prompter into cascade.ConflictPrompter.
type CascadeConflictPrompter struct {
	Prompter Prompter
}

// ResolveConflict asks the user how to proceed after a rebase conflict.
func (c CascadeConflictPrompter) ResolveConflict(branch, parent string) (cascade.ConflictResolution, error) {
	title := fmt.Sprintf("Conflict rebasing %s onto %s", branch, parent)
	options := []string{optionContinue, optionAbortOrig, optionAbortHere, optionSkip}

	choice, err := c.Prompter.Select(title, options)
	if err != nil {
		return cascade.ResolutionAbortToOriginal, err
	}

	switch choice {
	case optionContinue:
		return cascade.ResolutionContinue, nil
	case optionAbortHere:
		return cascade.ResolutionAbortStayHere, nil
	case optionSkip:
		return cascade.ResolutionSkip, nil
	default:
		return cascade.ResolutionAbortToOriginal, nil
	}
}
