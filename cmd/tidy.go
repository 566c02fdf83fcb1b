package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/eddieland/twig/internal/tidy"
	"github.com/eddieland/twig/internal/ui"
)

// Tidy implements `twig tidy clean [--dry-run] [--force] [--aggressive]`:
// deletes merged leaf branches, re-parenting their children first in
// aggressive mode.
func (a *App) Tidy(ctx context.Context, args []string) int {
	if len(args) == 0 || args[0] != "clean" {
		ui.PrintError("Invalid arguments", `tidy requires a subcommand: "clean"`)
		return ExitUsage
	}

	fs := flag.NewFlagSet("tidy clean", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "print the plan without deleting anything")
	force := fs.Bool("force", false, "apply the plan without confirmation")
	aggressive := fs.Bool("aggressive", false, "also delete merged intermediate branches, re-parenting their children")
	if err := fs.Parse(args[1:]); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 0 {
		ui.PrintError("Invalid arguments", "tidy clean takes no positional arguments")
		return ExitUsage
	}

	mode := tidy.ModeStandard
	if *aggressive {
		mode = tidy.ModeAggressive
	}

	repoStore, state, err := a.openStore()
	if err != nil {
		return a.reportError("Loading repository state", err)
	}

	dependencyGraph, err := a.buildGraph(ctx, state, false)
	if err != nil {
		return a.reportError("Building branch graph", err)
	}

	plan := tidy.Plan(dependencyGraph, mode)
	if len(plan) == 0 {
		ui.PrintSuccess("No branches eligible for tidying")
		return ExitSuccess
	}

	ui.StyleTitle("Tidy plan")
	for _, action := range plan {
		if len(action.Children) > 0 {
			fmt.Printf("  delete %s, re-parent %v onto %s\n", action.Branch, action.Children, action.Parent)
		} else {
			fmt.Printf("  delete %s\n", action.Branch)
		}
	}

	if *dryRun {
		return ExitSuccess
	}

	if !*force {
		ok, err := a.promptConfirm("Delete these branches?", fmt.Sprintf("%d branch(es) will be deleted", len(plan)))
		if err != nil {
			return a.reportError("Confirmation failed", err)
		}
		if !ok {
			ui.PrintWarning("Aborted", "tidy plan not applied")
			return ExitSuccess
		}
	}

	results, err := tidy.Apply(ctx, a.git(), state, plan)
	if err != nil {
		if saveErr := repoStore.Save(state); saveErr != nil {
			ui.PrintWarning("Failed to persist partial tidy results", saveErr.Error())
		}
		return a.reportError("Applying tidy plan", err)
	}
	if err := repoStore.Save(state); err != nil {
		return a.reportError("Saving repository state", err)
	}

	deleted := 0
	for _, r := range results {
		if r.RolledBack {
			ui.PrintWarning("Skipped", r.RollbackWarn)
			continue
		}
		deleted++
	}
	ui.PrintSuccess(fmt.Sprintf("Deleted %d branch(es)", deleted))
	return ExitSuccess
}
