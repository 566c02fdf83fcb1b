// Package main implements the twig CLI: a tool for managing stacks of
// interdependent Git branches.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/eddieland/twig/cmd"
	"github.com/eddieland/twig/internal/cliconfig"
	"github.com/eddieland/twig/internal/gitobj"
	"github.com/eddieland/twig/internal/ui"
	"github.com/eddieland/twig/internal/version"
	"github.com/mattn/go-isatty"
)

func printHelp() {
	fmt.Println(ui.StyleTitle("twig - manage stacks of interdependent Git branches"))
	fmt.Println()
	fmt.Println("Usage: twig <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  flow [TARGET] [--root] [--parent] [--include PAT]   render or switch-then-render the branch tree")
	fmt.Println("  cascade [--force] [--force-push] [--show-graph]     rebase descendants of the current branch")
	fmt.Println("          [--autostash] [--max-depth N] [--repo PATH]")
	fmt.Println("  adopt [--mode auto|default-root|branch]             assign parents to orphaned branches")
	fmt.Println("        [--parent BRANCH] [--yes] [--max-depth N]")
	fmt.Println("  tidy clean [--dry-run] [--force] [--aggressive]     delete merged branches")
	fmt.Println("  switch <token>                                      switch to a branch, Jira issue, or PR")
	fmt.Println("  branch root add/remove/list/default                manage recorded root branches")
	fmt.Println("  branch dep add/remove/list                         manage recorded branch dependencies")
	fmt.Println()
	fmt.Println("Global flags: --yes/-y, --quiet/-q, --json")
}

// parseCommonFlags extracts the flags shared by every command (output
// mode, confirmation bypass) from args, returning the remainder.
func parseCommonFlags(args []string) (ui.NonInteractiveFlags, []string) {
	var flags ui.NonInteractiveFlags
	var remaining []string
	for _, arg := range args {
		switch arg {
		case "--yes", "-y":
			flags.Yes = true
		case "--quiet", "-q":
			flags.Mode = ui.OutputQuiet
		case "--json":
			flags.Mode = ui.OutputJSON
		default:
			remaining = append(remaining, arg)
		}
	}
	return flags, remaining
}

func main() {
	if len(os.Args) < 2 {
		printHelp()
		os.Exit(0)
	}

	command := os.Args[1]
	switch command {
	case "--help", "-h", "help":
		printHelp()
		os.Exit(0)
	case "--version":
		fmt.Printf("twig %s\n", version.GetFullVersion())
		os.Exit(0)
	}

	flags, rest := parseCommonFlags(os.Args[2:])

	cwd, err := os.Getwd()
	if err != nil {
		ui.PrintError("Cannot determine working directory", err.Error())
		os.Exit(cmd.ExitDomain)
	}
	repoPath, err := gitobj.ResolveMainRepoPath(cwd)
	if err != nil {
		ui.PrintError("Not in a git repository", err.Error())
		os.Exit(cmd.ExitDomain)
	}

	dirs, err := cliconfig.Resolve()
	if err != nil {
		ui.PrintError("Cannot resolve configuration directories", err.Error())
		os.Exit(cmd.ExitDomain)
	}
	if err := dirs.Init(); err != nil {
		ui.PrintError("Cannot initialize configuration directories", err.Error())
		os.Exit(cmd.ExitDomain)
	}

	interactive := isatty.IsTerminal(os.Stdout.Fd()) && !flags.Yes && flags.Mode == ui.OutputNormal
	var prompter ui.Prompter
	if interactive {
		prompter = ui.InteractivePrompter{}
	} else {
		prompter = ui.NonInteractivePrompter{Flags: flags}
	}

	app := &cmd.App{
		RepoPath:    repoPath,
		Dirs:        dirs,
		Prompter:    prompter,
		Flags:       flags,
		Interactive: interactive,
	}

	ctx := context.Background()
	var code int
	switch command {
	case "flow":
		code = app.Flow(ctx, rest)
	case "cascade":
		code = app.Cascade(ctx, rest)
	case "adopt":
		code = app.Adopt(ctx, rest)
	case "tidy":
		code = app.Tidy(ctx, rest)
	case "switch":
		code = app.Switch(ctx, rest)
	case "branch":
		code = app.Branch(ctx, rest)
	default:
		code = runAsPlugin(ctx, app, command, rest)
	}

	os.Exit(code)
}

// runAsPlugin handles a command that does not match a built-in: it looks
// for a "twig-<command>" executable on PATH and execs it with the
// remaining argv, per the plugin host contract. An unrecognized, non-
// plugin command reports ExitUsage.
func runAsPlugin(ctx context.Context, app *cmd.App, command string, args []string) int {
	currentBranch, _ := app.GitForPlugins().CurrentBranch(ctx)
	pluginCtx := cliconfig.NewPluginContext(version.GetVersion(), app.RepoPath, currentBranch, 0)

	code, err := cliconfig.RunPlugin(command, args, pluginCtx)
	if err == nil {
		return code
	}
	if errors.Is(err, cliconfig.ErrPluginNotFound) {
		ui.PrintError("Unknown command", fmt.Sprintf("%q; run `twig --help` for usage", command))
		return cmd.ExitUsage
	}
	ui.PrintError("Plugin failed", err.Error())
	return cmd.ExitDomain
}
