package gitobj

import (
	"testing"

	"github.com/go-git/go-git/v5/plumbing"

	"github.com/eddieland/twig/internal/testutil"
)

func TestAheadBehind(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	baseSHA := testutil.CommitFile(t, dir, "a.txt", "1", "base")
	testutil.Branch(t, dir, "feature")
	featureSHA := testutil.CommitFile(t, dir, "b.txt", "2", "feature commit 1")
	featureSHA2 := testutil.CommitFile(t, dir, "c.txt", "3", "feature commit 2")
	testutil.Checkout(t, dir, "main")
	mainSHA := testutil.CommitFile(t, dir, "d.txt", "4", "main commit")

	repo, err := Open(dir)
	testutil.AssertNoError(t, err, "Open")

	ahead, behind, err := repo.AheadBehind(plumbing.NewHash(featureSHA2), plumbing.NewHash(mainSHA))
	testutil.AssertNoError(t, err, "AheadBehind")
	testutil.AssertEqual(t, ahead, 2, "feature is 2 commits ahead of merge-base")
	testutil.AssertEqual(t, behind, 1, "feature is 1 commit behind main")

	base, err := repo.MergeBase(plumbing.NewHash(featureSHA), plumbing.NewHash(mainSHA))
	testutil.AssertNoError(t, err, "MergeBase")
	testutil.AssertEqual(t, base.String(), baseSHA, "merge-base is the shared initial commit")
}

func TestIsAncestor(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	baseSHA := testutil.CommitFile(t, dir, "a.txt", "1", "base")
	tipSHA := testutil.CommitFile(t, dir, "b.txt", "2", "tip")

	repo, err := Open(dir)
	testutil.AssertNoError(t, err, "Open")

	ok, err := repo.IsAncestor(plumbing.NewHash(baseSHA), plumbing.NewHash(tipSHA))
	testutil.AssertNoError(t, err, "IsAncestor")
	if !ok {
		t.Fatalf("expected base to be an ancestor of tip")
	}

	ok, err = repo.IsAncestor(plumbing.NewHash(tipSHA), plumbing.NewHash(baseSHA))
	testutil.AssertNoError(t, err, "IsAncestor reversed")
	if ok {
		t.Fatalf("expected tip to not be an ancestor of base")
	}
}
