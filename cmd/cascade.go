package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/eddieland/twig/internal/cascade"
	"github.com/eddieland/twig/internal/graph"
	"github.com/eddieland/twig/internal/ui"
)

// Cascade implements `twig cascade [--force] [--force-push] [--show-graph]
// [--autostash] [--max-depth N] [--repo PATH]`: rebases every descendant
// of the current branch onto its parent, in dependency order.
func (a *App) Cascade(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("cascade", flag.ContinueOnError)
	force := fs.Bool("force", false, "rebase even branches already up to date")
	forcePush := fs.Bool("force-push", false, "push each rebased branch with --force-with-lease")
	showGraph := fs.Bool("show-graph", false, "print the topological order before running")
	autostash := fs.Bool("autostash", false, "stash pending changes for the duration of the cascade")
	maxDepth := fs.Int("max-depth", 0, "limit the cascade to N levels below the current branch")
	repoPath := fs.String("repo", "", "run the cascade against a different repository path")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 0 {
		ui.PrintError("Invalid arguments", "cascade takes no positional arguments")
		return ExitUsage
	}

	if *repoPath != "" {
		a.RepoPath = *repoPath
	}
	workdir := a.RepoPath

	repoStore, state, err := a.openStore()
	if err != nil {
		return a.reportError("Loading repository state", err)
	}

	dependencyGraph, err := a.buildGraph(ctx, state, false)
	if err != nil {
		return a.reportError("Building branch graph", err)
	}

	root := dependencyGraph.CurrentBranch
	if root == "" {
		ui.PrintError("Cannot cascade", "repository is in a detached HEAD state")
		return ExitDomain
	}
	if _, ok := dependencyGraph.Nodes[root]; !ok {
		ui.PrintError("Cannot cascade", fmt.Sprintf("current branch %q is not tracked in the graph", root))
		return ExitDomain
	}

	order := cascade.TopologicalOrder(dependencyGraph, root, *maxDepth)
	if *showGraph {
		ui.RenderTree(dependencyGraph, root, "")
	}
	if len(order) == 0 {
		ui.PrintWarning("Nothing to cascade", fmt.Sprintf("branch %q has no descendants", root))
		return ExitSuccess
	}

	prompter := ui.CascadeConflictPrompter{Prompter: a.Prompter}
	engine := cascade.New(workdir, prompter)
	tracker := a.newProgressTracker(len(order), fmt.Sprintf("Cascading from %s", root))

	result, err := engine.Run(ctx, dependencyGraph, root, cascade.Options{
		MaxDepth:  *maxDepth,
		Force:     *force,
		ForcePush: *forcePush,
		Autostash: *autostash,
	})
	if err != nil {
		tracker.Fail(err)
		var ambiguous *graph.AmbiguousParentError
		if errors.As(err, &ambiguous) {
			ui.PrintError("AmbiguousParent", fmt.Sprintf("branch %q has multiple recorded parents (%v); resolve with `twig branch dep remove` before cascading", ambiguous.Branch, ambiguous.Parents))
			return ExitDomain
		}
		return a.reportError("Cascade failed", err)
	}

	for _, branchResult := range result.Branches {
		tracker.Increment(describeBranchOutcome(branchResult))
	}

	if err := repoStore.Save(state); err != nil {
		return a.reportError("Saving repository state", err)
	}

	if result.Stopped {
		tracker.Fail(fmt.Errorf("stopped at %s", result.StoppedAt))
		ui.PrintError("Cascade stopped", fmt.Sprintf("halted at branch %q; resolve and re-run", result.StoppedAt))
		return ExitDomain
	}

	tracker.Complete()
	if result.StashPopWarn != "" {
		ui.PrintWarning("Stash pop conflicted", result.StashPopWarn)
	}
	ui.PrintSuccess(fmt.Sprintf("Cascaded %d branch(es) from %s", len(result.Branches), root))
	ui.PrintDim(fmt.Sprintf("Run ID: %s", result.RunID))
	return ExitSuccess
}

func describeBranchOutcome(r cascade.BranchResult) string {
	switch r.Outcome {
	case cascade.OutcomeSuccess:
		msg := fmt.Sprintf("%s rebased onto %s", r.Branch, r.Parent)
		if r.Pushed {
			msg += " (pushed)"
		}
		return msg
	case cascade.OutcomeUpToDate:
		return fmt.Sprintf("%s already up to date", r.Branch)
	case cascade.OutcomeSkippedDepth:
		return fmt.Sprintf("%s skipped (max depth)", r.Branch)
	case cascade.OutcomeConflictResolved:
		return fmt.Sprintf("%s rebased onto %s after resolving a conflict", r.Branch, r.Parent)
	default:
		return fmt.Sprintf("%s: %s", r.Branch, r.ErrorMsg)
	}
}
