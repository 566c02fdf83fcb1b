package ui

import "github.com/charmbracelet/huh"

// InteractivePrompter drives terminal prompts with huh, for use when
// stdout/stdin are attached to a TTY (see go-isatty detection in main.go).
type InteractivePrompter struct{}

// Confirm asks a yes/no question.
func (InteractivePrompter) Confirm(title, message string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Description(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()
	return confirm, err
}

// Select asks the user to pick one of options.
func (InteractivePrompter) Select(title string, options []string) (string, error) {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}
	var choice string
	err := huh.NewSelect[string]().
		Title(title).
		Options(opts...).
		Value(&choice).
		Run()
	return choice, err
}

// Input asks the user to type a free-form value.
func (InteractivePrompter) Input(title, placeholder string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value).
		Run()
	return value, err
}
