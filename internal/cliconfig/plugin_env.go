package cliconfig

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// PluginContext is the subset of runtime state twig exposes to `twig-<name>`
// plugin executables via environment variables.
type PluginContext struct {
	Version       string
	CurrentRepo   string
	CurrentBranch string
	Verbosity     int

	// InvocationID correlates one `twig` command with the plugin process it
	// launches, for log correlation across the two processes.
	// NewPluginContext generates a fresh one; a zero value is left out of
	// Env.
	InvocationID uuid.UUID
}

// NewPluginContext builds a PluginContext with a freshly generated
// InvocationID.
func NewPluginContext(version, currentRepo, currentBranch string, verbosity int) PluginContext {
	return PluginContext{
		Version:       version,
		CurrentRepo:   currentRepo,
		CurrentBranch: currentBranch,
		Verbosity:     verbosity,
		InvocationID:  uuid.New(),
	}
}

// JiraHost returns JIRA_HOST from the environment, prefixing "https://" if
// the value is missing a scheme. Returns "" if unset.
func JiraHost() string {
	host := os.Getenv("JIRA_HOST")
	if host == "" {
		return ""
	}
	if !strings.Contains(host, "://") {
		return "https://" + host
	}
	return host
}

// Env renders the plugin environment variables as "KEY=VALUE" pairs
// suitable for appending to exec.Cmd.Env.
func (c PluginContext) Env() []string {
	env := []string{
		fmt.Sprintf("TWIG_VERSION=%s", c.Version),
		fmt.Sprintf("TWIG_CURRENT_REPO=%s", c.CurrentRepo),
		fmt.Sprintf("TWIG_CURRENT_BRANCH=%s", c.CurrentBranch),
		fmt.Sprintf("TWIG_VERBOSITY=%d", c.Verbosity),
	}
	if c.InvocationID != uuid.Nil {
		env = append(env, fmt.Sprintf("TWIG_INVOCATION_ID=%s", c.InvocationID))
	}
	return env
}
