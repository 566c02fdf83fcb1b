package adopt

import (
	"context"
	"testing"

	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/graph"
	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/testutil"
)

func TestPlanDefaultRoot(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "base")
	testutil.Branch(t, dir, "orphan")
	testutil.CommitFile(t, dir, "b.txt", "2", "orphan work")
	testutil.Checkout(t, dir, "main")

	state := store.NewRepoState()
	store.AddRoot(state, "main", true)
	g, err := graph.Build(context.Background(), dir, state, false)
	testutil.AssertNoError(t, err, "Build")

	plan, err := BuildPlan(context.Background(), gitwire.New(dir), g, state, ModeDefaultRoot, "")
	testutil.AssertNoError(t, err, "BuildPlan default root")
	testutil.AssertEqual(t, len(plan), 1, "one orphan planned")
	testutil.AssertEqual(t, plan[0].Parent, "main", "adopts default root")
}

func TestPlanDefaultRootErrorsWithoutOne(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "base")
	testutil.Branch(t, dir, "orphan")
	testutil.CommitFile(t, dir, "b.txt", "2", "orphan work")
	testutil.Checkout(t, dir, "main")

	state := store.NewRepoState()
	g, err := graph.Build(context.Background(), dir, state, false)
	testutil.AssertNoError(t, err, "Build")

	_, err = BuildPlan(context.Background(), gitwire.New(dir), g, state, ModeDefaultRoot, "")
	if err != ErrNoDefaultRoot {
		t.Fatalf("expected ErrNoDefaultRoot, got %v", err)
	}
}

func TestPlanAutoAdoptsOnlyViableParent(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "base")
	testutil.Branch(t, dir, "orphan")
	testutil.CommitFile(t, dir, "b.txt", "2", "orphan work")
	testutil.Checkout(t, dir, "main")

	state := store.NewRepoState()
	store.AddRoot(state, "main", true)
	g, err := graph.Build(context.Background(), dir, state, false)
	testutil.AssertNoError(t, err, "Build")

	plan, err := BuildPlan(context.Background(), gitwire.New(dir), g, state, ModeAuto, "")
	testutil.AssertNoError(t, err, "BuildPlan auto")
	testutil.AssertEqual(t, len(plan), 1, "one orphan planned")
	// "main" is both the only candidate and the fallback root, so either
	// the discovery heuristic or the fallback lands on it.
	testutil.AssertEqual(t, plan[0].Parent, "main", "adopts main, the only viable branch")
}

func TestApplyRollsBackOnRejection(t *testing.T) {
	state := store.NewRepoState()
	testutil.AssertNoError(t, store.AddDependency(state, "b", "a"), "seed b->a")

	plan := []PlannedEdge{
		{Child: "c", Parent: "b"},
		{Child: "a", Parent: "c"}, // closes a cycle a->c->b->a
	}
	err := Apply(state, plan)
	testutil.AssertError(t, err, "second edge closes a cycle")
	testutil.AssertEqual(t, len(state.Dependencies), 1, "the c->b edge was rolled back")
}
