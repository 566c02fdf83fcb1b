// Package ui is the interactive/non-interactive presentation layer: an
// injected Prompter seam (spec's "model the prompt as an injected
// function" design note), styled terminal output, and a bubbletea-backed
// cascade progress view.
package ui

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// OutputMode controls how command output is rendered.
type OutputMode int

const (
	OutputNormal OutputMode = iota // default: styled terminal output
	OutputQuiet                    // minimal output
	OutputJSON                     // structured JSON on stdout
)

// NonInteractiveFlags groups the flags that steer non-interactive runs.
type NonInteractiveFlags struct {
	Yes  bool
	Mode OutputMode
}

// JSONOutput is the structured shape emitted in OutputJSON mode.
type JSONOutput struct {
	Status  string                 `json:"status"` // "success", "error", "warning"
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *JSONError             `json:"error,omitempty"`
}

// JSONError is the error shape nested in JSONOutput.
type JSONError struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// EmitJSON writes output to stdout as pretty-printed JSON.
func EmitJSON(output JSONOutput) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	styleErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// StyleTitle renders a section title in the tree/plan output.
func StyleTitle(text string) string { return styleTitle.Render(text) }

// PrintError prints a styled error line to stdout.
func PrintError(title, msg string) {
	fmt.Println(styleErr.Render("✖ " + title))
	fmt.Println(msg)
}

// PrintSuccess prints a styled success line to stdout.
func PrintSuccess(msg string) { fmt.Println(styleSuccess.Render("✔ " + msg)) }

// PrintWarning prints a styled warning line to stdout.
func PrintWarning(title, msg string) {
	fmt.Println(styleWarn.Render("! " + title))
	fmt.Println(msg)
}

// PrintDim prints a de-emphasized line, used for secondary detail (ahead/behind
// counts, Jira/PR annotations) alongside a tree node.
func PrintDim(msg string) { fmt.Println(styleDim.Render(msg)) }
