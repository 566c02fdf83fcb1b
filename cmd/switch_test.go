package cmd

import (
	"context"
	"testing"

	"github.com/eddieland/twig/internal/testutil"
)

func TestSwitchChecksOutExistingLocalBranch(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")
	testutil.Branch(t, dir, "feature-a")
	testutil.Checkout(t, dir, "main")

	app := newTestApp(dir)
	code := app.Switch(context.Background(), []string{"feature-a"})
	if code != ExitSuccess {
		t.Fatalf("Switch exit = %d, want %d", code, ExitSuccess)
	}

	current, err := app.git().CurrentBranch(context.Background())
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if current != "feature-a" {
		t.Fatalf("current branch = %q, want feature-a", current)
	}
}

func TestSwitchCreatesNewBranchFromCurrent(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")

	app := newTestApp(dir)
	code := app.Switch(context.Background(), []string{"brand-new-branch"})
	if code != ExitSuccess {
		t.Fatalf("Switch exit = %d, want %d", code, ExitSuccess)
	}

	current, err := app.git().CurrentBranch(context.Background())
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if current != "brand-new-branch" {
		t.Fatalf("current branch = %q, want brand-new-branch", current)
	}
}

func TestSwitchRejectsWrongArgCount(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")

	app := newTestApp(dir)
	if code := app.Switch(context.Background(), nil); code != ExitUsage {
		t.Fatalf("Switch() exit = %d, want %d", code, ExitUsage)
	}
	if code := app.Switch(context.Background(), []string{"a", "b"}); code != ExitUsage {
		t.Fatalf("Switch(a, b) exit = %d, want %d", code, ExitUsage)
	}
}
