package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/switcher"
	"github.com/eddieland/twig/internal/ui"
)

// Switch implements `twig switch <token>`: classifies token (branch name,
// Jira key/URL, or GitHub PR id/URL) and dispatches to the matching
// pipeline.
func (a *App) Switch(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("switch", flag.ContinueOnError)
	create := fs.Bool("create", true, "create the branch if it doesn't exist locally or on the remote")
	base := fs.String("base", "", "base branch for a newly created branch (defaults to the default root, then the current branch)")
	remote := fs.String("remote", "", `git remote to fetch from (defaults to "origin")`)
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() != 1 {
		ui.PrintError("Invalid arguments", "switch requires exactly one TOKEN")
		return ExitUsage
	}
	token := fs.Arg(0)

	repoStore, state, err := a.openStore()
	if err != nil {
		return a.reportError("Loading repository state", err)
	}

	d := switcher.New(a.git(), state)
	result, err := d.Switch(ctx, token, switcher.Options{
		Remote:      *remote,
		AllowCreate: *create,
		BaseBranch:  *base,
		DefaultRoot: store.GetDefaultRoot(state),
	})
	if err != nil {
		return a.reportError("Switch failed", err)
	}

	if err := repoStore.Save(state); err != nil {
		return a.reportError("Saving repository state", err)
	}

	if a.Flags.Mode == ui.OutputJSON {
		data := map[string]interface{}{"branch": result.Branch, "created": result.Created}
		if result.JiraIssue != "" {
			data["jira_issue"] = result.JiraIssue
		}
		if result.GithubPR != nil {
			data["github_pr"] = *result.GithubPR
		}
		return a.succeedJSON(fmt.Sprintf("switched to %s", result.Branch), data)
	}

	if result.Created {
		ui.PrintSuccess(fmt.Sprintf("Created and switched to branch %q", result.Branch))
	} else {
		ui.PrintSuccess(fmt.Sprintf("Switched to branch %q", result.Branch))
	}
	return ExitSuccess
}

// succeedJSON emits a JSONOutput success document with the given message
// and data, and returns ExitSuccess.
func (a *App) succeedJSON(message string, data map[string]interface{}) int {
	_ = ui.EmitJSON(ui.JSONOutput{Status: "success", Message: message, Data: data})
	return ExitSuccess
}
