package gitobj

import (
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// MergeBase returns the best common ancestor commit of a and b. go-git
// can return more than one candidate for a criss-cross merge history;
// twig only needs one, so the first is used, matching `git merge-base`'s
// single-answer behavior for the common case.
func (r *Repo) MergeBase(a, b plumbing.Hash) (plumbing.Hash, error) {
	commitA, err := r.repo.CommitObject(a)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	commitB, err := r.repo.CommitObject(b)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	bases, err := commitA.MergeBase(commitB)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if len(bases) == 0 {
		return plumbing.ZeroHash, nil
	}
	return bases[0].Hash, nil
}

// AheadBehind reports how many commits `from` has that `to` lacks (ahead)
// and vice versa (behind), relative to their merge-base. This mirrors
// `git rev-list --left-right --count to...from`.
func (r *Repo) AheadBehind(from, to plumbing.Hash) (ahead, behind int, err error) {
	base, err := r.MergeBase(from, to)
	if err != nil {
		return 0, 0, err
	}
	ahead, err = r.countCommitsSince(from, base)
	if err != nil {
		return 0, 0, err
	}
	behind, err = r.countCommitsSince(to, base)
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

func (r *Repo) countCommitsSince(tip, base plumbing.Hash) (int, error) {
	if tip == base {
		return 0, nil
	}
	commit, err := r.repo.CommitObject(tip)
	if err != nil {
		return 0, err
	}
	count := 0
	iter := object.NewCommitPreorderIter(commit, nil, nil)
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == base {
			return object.ErrCanceled
		}
		count++
		return nil
	})
	if err != nil && err != object.ErrCanceled {
		return 0, err
	}
	return count, nil
}

// IsAncestor reports whether ancestor is a direct ancestor of (or equal
// to) descendant.
func (r *Repo) IsAncestor(ancestor, descendant plumbing.Hash) (bool, error) {
	if ancestor == descendant {
		return true, nil
	}
	commit, err := r.repo.CommitObject(descendant)
	if err != nil {
		return false, err
	}
	target, err := r.repo.CommitObject(ancestor)
	if err != nil {
		return false, err
	}
	return target.IsAncestor(commit)
}
