package gitobj

import (
	"os"
	"path/filepath"
	"strings"
)

// DiscoverRepoRoot walks up from path looking for a repository, returning
// its working tree root. Returns ErrNotARepo if none is found.
func DiscoverRepoRoot(path string) (string, error) {
	repo, err := Open(path)
	if err != nil {
		return "", err
	}
	return repo.Path(), nil
}

// ResolveMainRepoPath resolves path to the working directory of the MAIN
// repository, even when path is inside a linked worktree. For a regular
// (non-worktree) repository this is identical to DiscoverRepoRoot.
//
// Worktrees store a file at ".git" (instead of a directory) pointing at
// <main>/.git/worktrees/<name>, which in turn contains a "commondir" file
// pointing back at <main>/.git. We resolve through both indirections by
// hand, since go-git's PlainOpenWithOptions does not expose commondir.
func ResolveMainRepoPath(path string) (string, error) {
	root, err := DiscoverRepoRoot(path)
	if err != nil {
		return "", err
	}

	dotGit := filepath.Join(root, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return root, nil
	}

	// Linked worktree: .git is a file containing "gitdir: <path>".
	gitDirPath, err := readGitdirPointer(dotGit)
	if err != nil {
		return "", err
	}

	commonDirFile := filepath.Join(gitDirPath, "commondir")
	commonDirRaw, err := os.ReadFile(commonDirFile)
	if err != nil {
		// Not a linked worktree after all (unusual .git file layout); fall
		// back to the discovered root.
		return root, nil
	}
	commonDir := strings.TrimSpace(string(commonDirRaw))
	if !filepath.IsAbs(commonDir) {
		commonDir = filepath.Join(gitDirPath, commonDir)
	}

	mainRoot := filepath.Dir(filepath.Clean(commonDir))
	abs, err := filepath.Abs(mainRoot)
	if err != nil {
		return mainRoot, nil
	}
	return abs, nil
}

func readGitdirPointer(dotGitFile string) (string, error) {
	data, err := os.ReadFile(dotGitFile)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	const prefix = "gitdir:"
	if !strings.HasPrefix(line, prefix) {
		return "", ErrNotARepo
	}
	gitDir := strings.TrimSpace(strings.TrimPrefix(line, prefix))
	if !filepath.IsAbs(gitDir) {
		gitDir = filepath.Join(filepath.Dir(dotGitFile), gitDir)
	}
	return filepath.Clean(gitDir), nil
}
