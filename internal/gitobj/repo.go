// Package gitobj is the object-level git adapter: repository discovery,
// branch enumeration, and commit-graph walks via go-git, used wherever
// twig can answer a question by reading the object database directly
// instead of shelling out to `git`.
package gitobj

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

var (
	// ErrMissingWorkdir is returned when the path has no working tree
	// (e.g. a bare repository, which twig does not support).
	ErrMissingWorkdir = errors.New("repository has no working tree")

	// ErrMissingHead is returned when HEAD cannot be resolved, which
	// happens for a freshly initialized repository with no commits.
	ErrMissingHead = errors.New("repository has no commits")

	// ErrNotARepo is returned when the path is not inside a git repository.
	ErrNotARepo = errors.New("not a git repository")
)

// Repo wraps a go-git repository opened from a working directory.
type Repo struct {
	repo *git.Repository
	path string
}

// Open discovers and opens the repository containing path, walking up
// through parent directories the way `git` itself does.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, ErrNotARepo
		}
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, ErrMissingWorkdir
	}
	return &Repo{repo: repo, path: wt.Filesystem.Root()}, nil
}

// Path returns the absolute path to the repository's working tree root.
func (r *Repo) Path() string { return r.path }

// CurrentBranch returns the short name of the branch HEAD points to.
// Returns ErrMissingHead if HEAD does not resolve (e.g. an unborn branch).
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", ErrMissingHead
		}
		return "", err
	}
	if !head.Name().IsBranch() {
		return "", errors.New("HEAD is detached")
	}
	return head.Name().Short(), nil
}

// HeadCommit returns the hash HEAD currently points to.
func (r *Repo) HeadCommit() (plumbing.Hash, error) {
	head, err := r.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return plumbing.ZeroHash, ErrMissingHead
		}
		return plumbing.ZeroHash, err
	}
	return head.Hash(), nil
}

// ResolveBranch returns the tip commit hash of the given local branch.
func (r *Repo) ResolveBranch(name string) (plumbing.Hash, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving branch %q: %w", name, err)
	}
	return ref.Hash(), nil
}

// BranchExists reports whether a local branch with the given name exists.
func (r *Repo) BranchExists(name string) bool {
	_, err := r.repo.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}
