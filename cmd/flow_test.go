package cmd

import (
	"context"
	"testing"

	"github.com/eddieland/twig/internal/testutil"
	"github.com/eddieland/twig/internal/ui"
)

func newTestApp(workdir string) *App {
	return &App{
		RepoPath: workdir,
		Prompter: ui.NonInteractivePrompter{Flags: ui.NonInteractiveFlags{Yes: true}},
		Flags:    ui.NonInteractiveFlags{Yes: true},
	}
}

func TestFlowRendersSingleBranchRepo(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")

	app := newTestApp(dir)
	code := app.Flow(context.Background(), nil)
	if code != ExitSuccess {
		t.Fatalf("Flow exit = %d, want %d", code, ExitSuccess)
	}
}

func TestFlowRejectsRootAndParentTogether(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")

	app := newTestApp(dir)
	code := app.Flow(context.Background(), []string{"--root", "--parent"})
	if code != ExitUsage {
		t.Fatalf("Flow exit = %d, want %d", code, ExitUsage)
	}
}

func TestFlowRejectsExtraPositionalArgs(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")

	app := newTestApp(dir)
	code := app.Flow(context.Background(), []string{"one", "two"})
	if code != ExitUsage {
		t.Fatalf("Flow exit = %d, want %d", code, ExitUsage)
	}
}

func TestFlowSwitchesToTargetBranch(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")
	testutil.Branch(t, dir, "feature-a")
	testutil.Checkout(t, dir, "main")

	app := newTestApp(dir)
	code := app.Flow(context.Background(), []string{"feature-a"})
	if code != ExitSuccess {
		t.Fatalf("Flow exit = %d, want %d", code, ExitSuccess)
	}

	current, err := app.git().CurrentBranch(context.Background())
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if current != "feature-a" {
		t.Fatalf("current branch = %q, want feature-a", current)
	}
}
