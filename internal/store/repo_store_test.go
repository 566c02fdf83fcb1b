package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eddieland/twig/internal/testutil"
)

func TestLoadMissingStateReturnsDefaultWithoutCreatingFile(t *testing.T) {
	dir := t.TempDir()
	rs := NewRepoStore(dir)
	state, err := rs.Load()
	testutil.AssertNoError(t, err, "load of a repo with no .twig/")
	testutil.AssertEqual(t, len(state.Branches), 0, "empty branches")
	if _, err := os.Stat(rs.Path()); err == nil {
		t.Fatalf("expected Load to not create %s", rs.Path())
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rs := NewRepoStore(dir)

	state := NewRepoState()
	testutil.AssertNoError(t, AddDependency(state, "feature", "main"), "add dependency")
	AddRoot(state, "main", true)
	AddBranchIssue(state, BranchMetadata{Branch: "feature", JiraIssue: "PROJ-7", CreatedAt: "2026-01-01T00:00:00Z"})

	testutil.AssertNoError(t, rs.Save(state), "save")

	reloaded, err := rs.Load()
	testutil.AssertNoError(t, err, "reload")
	testutil.AssertEqual(t, reloaded.Dependencies, state.Dependencies, "dependencies round-trip")
	testutil.AssertEqual(t, reloaded.RootBranches, state.RootBranches, "roots round-trip")
	testutil.AssertEqual(t, reloaded.Branches["feature"].JiraIssue, "PROJ-7", "branch metadata round-trips")
}

func TestSaveCreatesStateDirOnDemand(t *testing.T) {
	dir := t.TempDir()
	rs := NewRepoStore(dir)
	testutil.AssertNoError(t, rs.Save(NewRepoState()), "save")
	if !StateDirExists(dir) {
		t.Fatalf("expected %s to exist after Save", filepath.Join(dir, stateDirName))
	}
}

func TestLoadSanitizesSelfAndDuplicateEdges(t *testing.T) {
	dir := t.TempDir()
	rs := NewRepoStore(dir)

	state := NewRepoState()
	state.Dependencies = []DependencyEdge{
		{Child: "a", Parent: "a"},
		{Child: "b", Parent: "main"},
		{Child: "b", Parent: "main"},
	}
	testutil.AssertNoError(t, rs.Save(state), "save unsanitized state directly")

	loaded, err := rs.Load()
	testutil.AssertNoError(t, err, "load")
	testutil.AssertEqual(t, len(loaded.Dependencies), 1, "self and duplicate edges dropped")
	if len(rs.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %v", len(rs.Warnings), rs.Warnings)
	}
}
