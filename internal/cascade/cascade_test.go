package cascade

import (
	"context"
	"errors"
	"testing"

	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/graph"
	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/testutil"
)

// scriptedPrompter returns a fixed sequence of resolutions, one per call.
type scriptedPrompter struct {
	resolutions []ConflictResolution
	calls       int
}

func (p *scriptedPrompter) ResolveConflict(branch, parent string) (ConflictResolution, error) {
	if p.calls >= len(p.resolutions) {
		return ResolutionAbortStayHere, nil
	}
	r := p.resolutions[p.calls]
	p.calls++
	return r, nil
}

func buildGraph(t *testing.T, dir string, edges [][2]string, roots []string) *graph.Graph {
	t.Helper()
	state := store.NewRepoState()
	for _, e := range edges {
		testutil.AssertNoError(t, store.AddDependency(state, e[0], e[1]), "add dependency "+e[0]+"->"+e[1])
	}
	for _, r := range roots {
		store.AddRoot(state, r, true)
	}
	g, err := graph.Build(context.Background(), dir, state, false)
	testutil.AssertNoError(t, err, "Build")
	return g
}

func TestCascadeCleanRebase(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "base")
	testutil.Branch(t, dir, "feature")
	testutil.CommitFile(t, dir, "b.txt", "2", "feature commit")
	testutil.Checkout(t, dir, "main")
	testutil.CommitFile(t, dir, "c.txt", "3", "main moves on")
	testutil.Checkout(t, dir, "feature")

	g := buildGraph(t, dir, [][2]string{{"feature", "main"}}, []string{"main"})

	e := New(dir, &scriptedPrompter{})
	result, err := e.Run(context.Background(), g, "main", Options{})
	testutil.AssertNoError(t, err, "cascade run")

	if result.Stopped {
		t.Fatalf("expected cascade to complete, got stopped at %s", result.StoppedAt)
	}
	testutil.AssertEqual(t, len(result.Branches), 1, "one branch rebased")
	testutil.AssertEqual(t, result.Branches[0].Outcome, OutcomeSuccess, "clean rebase succeeds")
	if result.RunID == "" {
		t.Error("expected a non-empty RunID")
	}
}

func TestCascadeConflictAbortToOriginal(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "base\n", "base")
	testutil.Branch(t, dir, "feature")
	testutil.CommitFile(t, dir, "a.txt", "feature change\n", "feature edits a.txt")
	testutil.Checkout(t, dir, "main")
	testutil.CommitFile(t, dir, "a.txt", "main change\n", "main edits a.txt")
	testutil.Checkout(t, dir, "main")

	g := buildGraph(t, dir, [][2]string{{"feature", "main"}}, []string{"main"})
	g.CurrentBranch = "main"

	e := New(dir, &scriptedPrompter{resolutions: []ConflictResolution{ResolutionAbortToOriginal}})
	result, err := e.Run(context.Background(), g, "main", Options{})
	testutil.AssertNoError(t, err, "cascade run")

	if !result.Stopped || result.StoppedAt != "feature" {
		t.Fatalf("expected cascade to stop at feature, got stopped=%v at=%q", result.Stopped, result.StoppedAt)
	}

	current, err := gitwire.New(dir).CurrentBranch(context.Background())
	testutil.AssertNoError(t, err, "read HEAD after abort")
	testutil.AssertEqual(t, current, "main", "AbortToOriginal returns to the branch the cascade started on")
}

func TestRunRefusesAmbiguousParent(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "base")
	testutil.Branch(t, dir, "feature")
	testutil.CommitFile(t, dir, "b.txt", "2", "feature commit")
	testutil.Checkout(t, dir, "main")
	testutil.Branch(t, dir, "other-root")
	testutil.Checkout(t, dir, "main")

	g := buildGraph(t, dir, [][2]string{
		{"feature", "main"},
		{"feature", "other-root"},
	}, []string{"main"})

	e := New(dir, &scriptedPrompter{})
	_, err := e.Run(context.Background(), g, "main", Options{})
	if err == nil {
		t.Fatal("expected AmbiguousParentError, got nil")
	}
	var ambiguous *graph.AmbiguousParentError
	if !errors.As(err, &ambiguous) || ambiguous.Branch != "feature" {
		t.Fatalf("Run err = %v, want *graph.AmbiguousParentError for branch %q", err, "feature")
	}
}

func TestTopologicalOrderRespectsDependencyAndSiblingOrder(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "base")
	testutil.Branch(t, dir, "b-feature")
	testutil.Checkout(t, dir, "main")
	testutil.Branch(t, dir, "a-feature")
	testutil.Checkout(t, dir, "main")
	testutil.Branch(t, dir, "a-feature-child")
	testutil.Checkout(t, dir, "main")

	g := buildGraph(t, dir, [][2]string{
		{"a-feature", "main"},
		{"b-feature", "main"},
		{"a-feature-child", "a-feature"},
	}, []string{"main"})

	order := TopologicalOrder(g, "main", 0)
	testutil.AssertEqual(t, order, []string{"a-feature", "a-feature-child", "b-feature"}, "parent precedes child, siblings lexicographic")
}
