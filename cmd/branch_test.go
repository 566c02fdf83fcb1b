package cmd

import (
	"context"
	"testing"

	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/testutil"
)

func TestBranchRootAddListDefault(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")

	app := newTestApp(dir)
	if code := app.Branch(context.Background(), []string{"root", "add", "--default", "main"}); code != ExitSuccess {
		t.Fatalf("branch root add exit = %d, want %d", code, ExitSuccess)
	}
	if code := app.Branch(context.Background(), []string{"root", "list"}); code != ExitSuccess {
		t.Fatalf("branch root list exit = %d, want %d", code, ExitSuccess)
	}

	state, err := store.NewRepoStore(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.GetDefaultRoot(state) != "main" {
		t.Fatalf("default root = %q, want main", store.GetDefaultRoot(state))
	}

	if code := app.Branch(context.Background(), []string{"root", "remove", "main"}); code != ExitSuccess {
		t.Fatalf("branch root remove exit = %d, want %d", code, ExitSuccess)
	}
	state, err = store.NewRepoStore(dir).Load()
	if err != nil {
		t.Fatalf("Load after remove: %v", err)
	}
	if len(store.GetRootBranches(state)) != 0 {
		t.Fatalf("expected no root branches after remove, got %v", store.GetRootBranches(state))
	}
}

func TestBranchDepAddRemoveList(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")
	testutil.Branch(t, dir, "feature-a")
	testutil.Checkout(t, dir, "main")

	app := newTestApp(dir)
	if code := app.Branch(context.Background(), []string{"dep", "add", "feature-a", "main"}); code != ExitSuccess {
		t.Fatalf("branch dep add exit = %d, want %d", code, ExitSuccess)
	}
	if code := app.Branch(context.Background(), []string{"dep", "list", "feature-a"}); code != ExitSuccess {
		t.Fatalf("branch dep list exit = %d, want %d", code, ExitSuccess)
	}

	state, err := store.NewRepoStore(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if parents := store.GetDependencyParents(state, "feature-a"); len(parents) != 1 || parents[0] != "main" {
		t.Fatalf("parents = %v, want [main]", parents)
	}

	if code := app.Branch(context.Background(), []string{"dep", "remove", "feature-a", "main"}); code != ExitSuccess {
		t.Fatalf("branch dep remove exit = %d, want %d", code, ExitSuccess)
	}
	state, err = store.NewRepoStore(dir).Load()
	if err != nil {
		t.Fatalf("Load after remove: %v", err)
	}
	if parents := store.GetDependencyParents(state, "feature-a"); len(parents) != 0 {
		t.Fatalf("parents = %v, want []", parents)
	}
}

func TestBranchRequiresSubcommand(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "README.md", "hello", "initial commit")

	app := newTestApp(dir)
	if code := app.Branch(context.Background(), nil); code != ExitUsage {
		t.Fatalf("Branch() exit = %d, want %d", code, ExitUsage)
	}
	if code := app.Branch(context.Background(), []string{"bogus"}); code != ExitUsage {
		t.Fatalf("Branch(bogus) exit = %d, want %d", code, ExitUsage)
	}
}
