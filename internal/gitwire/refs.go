package gitwire

import (
	"context"
	"errors"
)

// HEAD returns the full SHA of the current HEAD commit.
func (g *Git) HEAD(ctx context.Context) (string, error) {
	return g.Run(ctx, "rev-parse", "HEAD")
}

// CurrentBranch returns the short name of the current branch, or
// ErrDetachedHead if HEAD is not on a branch.
func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.Run(ctx, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", ErrDetachedHead
	}
	return out, nil
}

// IsDetached reports whether HEAD is in a detached state.
func (g *Git) IsDetached(ctx context.Context) (bool, error) {
	_, err := g.CurrentBranch(ctx)
	if errors.Is(err, ErrDetachedHead) {
		return true, nil
	}
	return false, err
}

// ResolveRef resolves a ref name to its full SHA. Returns ErrRefNotFound if
// the ref does not exist.
func (g *Git) ResolveRef(ctx context.Context, ref string) (string, error) {
	out, err := g.Run(ctx, "rev-parse", ref)
	if err != nil {
		return "", ErrRefNotFound
	}
	return out, nil
}

// ShowRefVerify reports whether ref exists, via `git show-ref --verify`.
func (g *Git) ShowRefVerify(ctx context.Context, ref string) bool {
	err := g.RunSilent(ctx, "show-ref", "--verify", "--quiet", ref)
	return err == nil
}

// MergeBase returns the merge-base commit of a and b.
func (g *Git) MergeBase(ctx context.Context, a, b string) (string, error) {
	out, err := g.Run(ctx, "merge-base", a, b)
	if err != nil {
		return "", ErrRefNotFound
	}
	return out, nil
}

// RevListCount returns the number of commits reachable from `from` but not
// from `to` (i.e. `git rev-list --count to..from`). Used to compute the
// ahead/behind counts of a branch relative to a base.
func (g *Git) RevListCount(ctx context.Context, from, to string) (int, error) {
	out, err := g.Run(ctx, "rev-list", "--count", to+".."+from)
	if err != nil {
		return 0, err
	}
	return parseNonNegativeInt(out)
}

// AheadBehind reports how many commits branch has that base lacks (ahead)
// and vice versa (behind), relative to their merge-base.
func (g *Git) AheadBehind(ctx context.Context, branch, base string) (ahead, behind int, err error) {
	mergeBase, err := g.MergeBase(ctx, branch, base)
	if err != nil {
		return 0, 0, err
	}
	ahead, err = g.RevListCount(ctx, branch, mergeBase)
	if err != nil {
		return 0, 0, err
	}
	behind, err = g.RevListCount(ctx, base, mergeBase)
	if err != nil {
		return 0, 0, err
	}
	return ahead, behind, nil
}

func parseNonNegativeInt(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errors.New("rev-list --count returned non-numeric output: " + s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
