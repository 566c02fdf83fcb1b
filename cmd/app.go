// Package cmd implements twig's per-command handlers: each exported
// function parses its own flags from the remaining argv and returns a
// process exit code, mirroring the hand-rolled dispatch style of the
// teacher CLI rather than a flag-parsing framework.
package cmd

import (
	"context"
	"fmt"

	"github.com/eddieland/twig/internal/cliconfig"
	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/graph"
	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/ui"
)

// Exit codes per the CLI surface contract: 0 success, 1 domain errors
// (missing repo, cycle, cascade stopped), 2 argument errors.
const (
	ExitSuccess = 0
	ExitDomain  = 1
	ExitUsage   = 2
)

// App bundles everything a command handler needs: the resolved repo path,
// the config directories, and the interactive/non-interactive presentation
// seam.
type App struct {
	RepoPath    string
	Dirs        cliconfig.Dirs
	Prompter    ui.Prompter
	Flags       ui.NonInteractiveFlags
	Interactive bool // true when stdout is a TTY, Flags.Yes was not forced, and the output mode is normal
}

// newProgressTracker picks a ProgressTracker matching the output mode:
// silent in quiet/JSON mode, a bubbletea bar on an interactive TTY,
// plain text lines otherwise.
func (a *App) newProgressTracker(total int, label string) ui.ProgressTracker {
	switch {
	case a.Flags.Mode == ui.OutputQuiet || a.Flags.Mode == ui.OutputJSON:
		return ui.NoOpProgressTracker{}
	case a.Interactive:
		return ui.NewBubbleteaProgressTracker(total, label)
	default:
		return ui.NewTextProgressTracker(total, label)
	}
}

func (a *App) git() *gitwire.Git {
	return gitwire.New(a.RepoPath)
}

// GitForPlugins exposes the same gitwire.Git main.go uses to populate the
// environment it hands to a "twig-<name>" plugin executable.
func (a *App) GitForPlugins() *gitwire.Git {
	return a.git()
}

func (a *App) openStore() (*store.RepoStore, *store.RepoState, error) {
	repoStore := store.NewRepoStore(a.RepoPath)
	state, err := repoStore.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading repository state: %w", err)
	}
	for _, w := range repoStore.Warnings {
		ui.PrintWarning("State Warning", w)
	}
	return repoStore, state, nil
}

func (a *App) buildGraph(ctx context.Context, state *store.RepoState, includeRemote bool) (*graph.Graph, error) {
	return graph.Build(ctx, a.RepoPath, state, includeRemote)
}

// reportError prints a one-line error summary (and, in JSON mode, a
// structured document) and returns the matching exit code.
func (a *App) reportError(title string, err error) int {
	if a.Flags.Mode == ui.OutputJSON {
		_ = ui.EmitJSON(ui.JSONOutput{
			Status: "error",
			Error:  &ui.JSONError{Title: title, Message: err.Error()},
		})
	} else {
		ui.PrintError(title, err.Error())
	}
	return ExitDomain
}
