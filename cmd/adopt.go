package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/uuid"

	"github.com/eddieland/twig/internal/adopt"
	"github.com/eddieland/twig/internal/ui"
)

// Adopt implements `twig adopt [--mode auto|default-root|branch] [--parent
// BRANCH] [--yes] [--max-depth N]`: assigns a parent to every branch the
// graph could not place (no recorded dependency and no matching root).
func (a *App) Adopt(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("adopt", flag.ContinueOnError)
	modeFlag := fs.String("mode", "auto", "adoption mode: auto, default-root, or branch")
	parent := fs.String("parent", "", "explicit parent branch, required by --mode=branch")
	yes := fs.Bool("yes", false, "apply the plan without confirmation")
	fs.Int("max-depth", 0, "reserved for symmetry with cascade; adopt does not currently bound depth")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 0 {
		ui.PrintError("Invalid arguments", "adopt takes no positional arguments")
		return ExitUsage
	}

	var mode adopt.Mode
	switch *modeFlag {
	case "auto":
		mode = adopt.ModeAuto
	case "default-root":
		mode = adopt.ModeDefaultRoot
	case "branch":
		mode = adopt.ModeBranch
		if *parent == "" {
			ui.PrintError("Invalid arguments", "--mode=branch requires --parent BRANCH")
			return ExitUsage
		}
	default:
		ui.PrintError("Invalid arguments", fmt.Sprintf("unknown --mode %q", *modeFlag))
		return ExitUsage
	}

	repoStore, state, err := a.openStore()
	if err != nil {
		return a.reportError("Loading repository state", err)
	}

	dependencyGraph, err := a.buildGraph(ctx, state, false)
	if err != nil {
		return a.reportError("Building branch graph", err)
	}

	if len(dependencyGraph.Orphaned) == 0 {
		ui.PrintSuccess("No orphaned branches to adopt")
		return ExitSuccess
	}

	plan, err := adopt.BuildPlan(ctx, a.git(), dependencyGraph, state, mode, *parent)
	if err != nil {
		return a.reportError("Building adoption plan", err)
	}
	if len(plan) == 0 {
		ui.PrintSuccess("No orphaned branches to adopt")
		return ExitSuccess
	}

	planID := uuid.NewString()
	ui.StyleTitle("Adoption plan")
	for _, edge := range plan {
		fmt.Printf("  %s -> %s (%s)\n", edge.Child, edge.Parent, edge.Reason)
	}

	if !*yes {
		ok, err := a.promptConfirm("Apply this adoption plan?", fmt.Sprintf("%d branch(es) will be re-parented", len(plan)))
		if err != nil {
			return a.reportError("Confirmation failed", err)
		}
		if !ok {
			ui.PrintWarning("Aborted", "adoption plan not applied")
			return ExitSuccess
		}
	}

	if err := adopt.Apply(state, plan); err != nil {
		return a.reportError("Applying adoption plan", err)
	}
	if err := repoStore.Save(state); err != nil {
		return a.reportError("Saving repository state", err)
	}

	ui.PrintSuccess(fmt.Sprintf("Adopted %d branch(es)", len(plan)))
	ui.PrintDim(fmt.Sprintf("Plan ID: %s", planID))
	return ExitSuccess
}

// promptConfirm asks the configured Prompter for confirmation, or treats
// Flags.Yes as an implicit yes when set (so `--yes` works the same way
// whether or not a Prompter is wired in).
func (a *App) promptConfirm(title, detail string) (bool, error) {
	if a.Flags.Yes {
		return true, nil
	}
	if a.Prompter == nil {
		return false, fmt.Errorf("confirmation required but no prompter is configured")
	}
	return a.Prompter.Confirm(title, detail)
}
