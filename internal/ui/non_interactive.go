package ui

// NonInteractivePrompter answers prompts without a terminal: Confirm
// auto-approves when Flags.Yes is set and otherwise fails closed; Select
// and Input consult Answers (keyed by the prompt title) when supplied,
// else fail closed. Used for scripted/CI invocations and wherever stdout
// is not a TTY.
type NonInteractivePrompter struct {
	Flags   NonInteractiveFlags
	Answers map[string]string
}

// Confirm auto-approves under --yes; otherwise it refuses, since silently
// assuming "no" on a destructive operation (e.g. tidy) would be worse than
// failing loudly.
func (p NonInteractivePrompter) Confirm(title, message string) (bool, error) {
	if p.Flags.Yes {
		return true, nil
	}
	return false, &ErrInteractionRequired{Title: title, Message: message}
}

// Select returns the scripted answer for title, if any.
func (p NonInteractivePrompter) Select(title string, options []string) (string, error) {
	if answer, ok := p.Answers[title]; ok {
		for _, o := range options {
			if o == answer {
				return answer, nil
			}
		}
	}
	return "", &ErrInteractionRequired{Title: title, Message: "no scripted answer provided"}
}

// Input returns the scripted answer for title, if any.
func (p NonInteractivePrompter) Input(title, placeholder string) (string, error) {
	if answer, ok := p.Answers[title]; ok {
		return answer, nil
	}
	return "", &ErrInteractionRequired{Title: title, Message: "no scripted answer provided"}
}
