package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/switcher"
	"github.com/eddieland/twig/internal/ui"
)

// Flow implements `twig flow [TARGET] [--root] [--parent] [--include PAT]`:
// an optional pre-render navigation step (switch to TARGET, the configured
// root, or the current branch's parent) followed by rendering the
// dependency tree from the resulting (or default) render root.
func (a *App) Flow(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("flow", flag.ContinueOnError)
	root := fs.Bool("root", false, "switch to the configured root branch before rendering")
	parent := fs.Bool("parent", false, "switch to the current branch's parent before rendering")
	include := fs.String("include", "", "only render branches whose name contains PATTERN")
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if *root && *parent {
		ui.PrintError("Invalid flags", "--root and --parent are mutually exclusive")
		return ExitUsage
	}
	var target string
	if fs.NArg() > 1 {
		ui.PrintError("Invalid arguments", "flow accepts at most one TARGET")
		return ExitUsage
	}
	if fs.NArg() == 1 {
		target = fs.Arg(0)
	}

	repoStore, state, err := a.openStore()
	if err != nil {
		return a.reportError("Loading repository state", err)
	}

	g := a.git()
	defaultRoot := store.GetDefaultRoot(state)
	renderRootOverride := ""

	switch {
	case target != "":
		d := switcher.New(g, state)
		result, err := d.Switch(ctx, target, switcher.Options{AllowCreate: true, DefaultRoot: defaultRoot})
		if err != nil {
			return a.reportError("Switch failed", err)
		}
		if err := repoStore.Save(state); err != nil {
			return a.reportError("Saving repository state", err)
		}
		if result.Created {
			ui.PrintSuccess(fmt.Sprintf("Created and switched to branch %q", result.Branch))
		} else {
			ui.PrintSuccess(fmt.Sprintf("Switched to branch %q", result.Branch))
		}
		renderRootOverride = result.Branch

	case *root:
		if defaultRoot == "" {
			ui.PrintWarning("No root branches configured", "staying on the current branch")
			break
		}
		if err := g.CheckoutBranch(ctx, defaultRoot); err != nil {
			return a.reportError("Switching to root branch", err)
		}
		ui.PrintSuccess(fmt.Sprintf("Switched to branch %q (root)", defaultRoot))
		renderRootOverride = defaultRoot

	case *parent:
		current, err := g.CurrentBranch(ctx)
		if err != nil {
			ui.PrintWarning("Repository is in a detached HEAD state", "cannot determine parent branch")
			break
		}
		parents := store.GetDependencyParents(state, current)
		switch len(parents) {
		case 0:
			ui.PrintWarning("No parent branch configured", "for the current branch")
		case 1:
			if err := g.CheckoutBranch(ctx, parents[0]); err != nil {
				return a.reportError("Switching to parent branch", err)
			}
			ui.PrintSuccess(fmt.Sprintf("Switched to parent branch %q", parents[0]))
			renderRootOverride = parents[0]
		default:
			ui.PrintError("Multiple parents configured",
				fmt.Sprintf("refine dependencies before using --parent: %v", parents))
			return ExitDomain
		}
	}

	dependencyGraph, err := a.buildGraph(ctx, state, false)
	if err != nil {
		return a.reportError("Building branch graph", err)
	}
	if len(dependencyGraph.Nodes) == 0 {
		ui.PrintWarning("No branches found to render", "")
		return ExitSuccess
	}

	renderRoot := dependencyGraph.RenderRoot(defaultRoot)
	if renderRootOverride != "" {
		if _, ok := dependencyGraph.Nodes[renderRootOverride]; ok {
			renderRoot = renderRootOverride
		}
	}

	ui.RenderTree(dependencyGraph, renderRoot, *include)

	if len(dependencyGraph.Orphaned) > 0 {
		ui.PrintDim(fmt.Sprintf("Orphaned branches (no recorded parent): %v", dependencyGraph.Orphaned))
	}

	return ExitSuccess
}
