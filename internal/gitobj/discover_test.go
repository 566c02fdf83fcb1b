package gitobj

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eddieland/twig/internal/testutil"
)

func TestDiscoverRepoRootFromNestedDir(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")

	nested := filepath.Join(dir, "sub", "dir")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	root, err := DiscoverRepoRoot(nested)
	testutil.AssertNoError(t, err, "DiscoverRepoRoot")
	if !samePath(root, dir) {
		t.Fatalf("DiscoverRepoRoot = %q, want %q", root, dir)
	}
}

func TestResolveMainRepoPathNonWorktree(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")

	root, err := ResolveMainRepoPath(dir)
	testutil.AssertNoError(t, err, "ResolveMainRepoPath")
	if !samePath(root, dir) {
		t.Fatalf("ResolveMainRepoPath = %q, want %q", root, dir)
	}
}

func TestResolveMainRepoPathLinkedWorktree(t *testing.T) {
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")
	testutil.Branch(t, dir, "feature")
	testutil.Checkout(t, dir, "main")

	worktreeDir := filepath.Join(filepath.Dir(dir), filepath.Base(dir)+"-wt")
	testutil.RunGit(t, dir, "worktree", "add", worktreeDir, "feature")

	root, err := ResolveMainRepoPath(worktreeDir)
	testutil.AssertNoError(t, err, "ResolveMainRepoPath")
	if !samePath(root, dir) {
		t.Fatalf("ResolveMainRepoPath(worktree) = %q, want main repo %q", root, dir)
	}
}

func samePath(a, b string) bool {
	aa, errA := filepath.Abs(a)
	bb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return filepath.Clean(aa) == filepath.Clean(bb)
}
