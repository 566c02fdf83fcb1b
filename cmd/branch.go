package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/ui"
)

// Branch implements the plumbing subcommands that operate directly on the
// state store: `twig branch root add/remove/list/default` and `twig
// branch dep add/remove/list`. These expose the same mutators that
// adopt/tidy/switch call internally, as standalone CLI verbs.
func (a *App) Branch(ctx context.Context, args []string) int {
	if len(args) < 1 {
		ui.PrintError("Invalid arguments", `branch requires a subcommand: "root" or "dep"`)
		return ExitUsage
	}

	switch args[0] {
	case "root":
		return a.branchRoot(args[1:])
	case "dep":
		return a.branchDep(args[1:])
	default:
		ui.PrintError("Invalid arguments", fmt.Sprintf("unknown branch subcommand %q", args[0]))
		return ExitUsage
	}
}

func (a *App) branchRoot(args []string) int {
	if len(args) < 1 {
		ui.PrintError("Invalid arguments", `branch root requires a subcommand: add, remove, list, or default`)
		return ExitUsage
	}

	repoStore, state, err := a.openStore()
	if err != nil {
		return a.reportError("Loading repository state", err)
	}

	switch args[0] {
	case "add":
		fs := flag.NewFlagSet("branch root add", flag.ContinueOnError)
		isDefault := fs.Bool("default", false, "mark this root as the default render/create-from root")
		if err := fs.Parse(args[1:]); err != nil {
			return ExitUsage
		}
		if fs.NArg() != 1 {
			ui.PrintError("Invalid arguments", "branch root add requires exactly one BRANCH")
			return ExitUsage
		}
		store.AddRoot(state, fs.Arg(0), *isDefault)
		if err := repoStore.Save(state); err != nil {
			return a.reportError("Saving repository state", err)
		}
		ui.PrintSuccess(fmt.Sprintf("Added root %q", fs.Arg(0)))
		return ExitSuccess

	case "remove":
		if len(args) != 2 {
			ui.PrintError("Invalid arguments", "branch root remove requires exactly one BRANCH")
			return ExitUsage
		}
		store.RemoveRoot(state, args[1])
		if err := repoStore.Save(state); err != nil {
			return a.reportError("Saving repository state", err)
		}
		ui.PrintSuccess(fmt.Sprintf("Removed root %q", args[1]))
		return ExitSuccess

	case "list":
		roots := store.GetRootBranches(state)
		if len(roots) == 0 {
			ui.PrintWarning("No root branches configured", "")
			return ExitSuccess
		}
		for _, r := range roots {
			if r.IsDefault {
				fmt.Printf("  %s (default)\n", r.Branch)
			} else {
				fmt.Printf("  %s\n", r.Branch)
			}
		}
		return ExitSuccess

	case "default":
		if len(args) != 2 {
			ui.PrintError("Invalid arguments", "branch root default requires exactly one BRANCH")
			return ExitUsage
		}
		store.AddRoot(state, args[1], true)
		if err := repoStore.Save(state); err != nil {
			return a.reportError("Saving repository state", err)
		}
		ui.PrintSuccess(fmt.Sprintf("Set %q as the default root", args[1]))
		return ExitSuccess

	default:
		ui.PrintError("Invalid arguments", fmt.Sprintf("unknown branch root subcommand %q", args[0]))
		return ExitUsage
	}
}

func (a *App) branchDep(args []string) int {
	if len(args) < 1 {
		ui.PrintError("Invalid arguments", `branch dep requires a subcommand: add, remove, or list`)
		return ExitUsage
	}

	repoStore, state, err := a.openStore()
	if err != nil {
		return a.reportError("Loading repository state", err)
	}

	switch args[0] {
	case "add":
		if len(args) != 3 {
			ui.PrintError("Invalid arguments", "branch dep add requires CHILD PARENT")
			return ExitUsage
		}
		if err := store.AddDependency(state, args[1], args[2]); err != nil {
			return a.reportError("Adding dependency", err)
		}
		if err := repoStore.Save(state); err != nil {
			return a.reportError("Saving repository state", err)
		}
		ui.PrintSuccess(fmt.Sprintf("%s now depends on %s", args[1], args[2]))
		return ExitSuccess

	case "remove":
		if len(args) != 3 {
			ui.PrintError("Invalid arguments", "branch dep remove requires CHILD PARENT")
			return ExitUsage
		}
		store.RemoveDependency(state, args[1], args[2])
		if err := repoStore.Save(state); err != nil {
			return a.reportError("Saving repository state", err)
		}
		ui.PrintSuccess(fmt.Sprintf("Removed dependency %s -> %s", args[1], args[2]))
		return ExitSuccess

	case "list":
		if len(args) != 2 {
			ui.PrintError("Invalid arguments", "branch dep list requires exactly one BRANCH")
			return ExitUsage
		}
		parents := store.GetDependencyParents(state, args[1])
		if len(parents) == 0 {
			ui.PrintWarning("No recorded parents", args[1])
			return ExitSuccess
		}
		for _, p := range parents {
			fmt.Printf("  %s\n", p)
		}
		return ExitSuccess

	default:
		ui.PrintError("Invalid arguments", fmt.Sprintf("unknown branch dep subcommand %q", args[0]))
		return ExitUsage
	}
}
