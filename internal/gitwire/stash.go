package gitwire

import (
	"context"
	"strings"
)

// StashPush stashes local changes, including untracked files, under the
// given message. Returns false if there was nothing to stash.
func (g *Git) StashPush(ctx context.Context, message string) (bool, error) {
	args := []string{"stash", "push", "--include-untracked"}
	if message != "" {
		args = append(args, "-m", message)
	}
	result, err := g.ExecuteGit(ctx, args...)
	if err != nil {
		return false, err
	}
	if !result.Success {
		return false, &GitError{Args: args, Stderr: result.Output, Err: ErrStashFailed}
	}
	return !strings.Contains(result.Output, "No local changes to save"), nil
}

// StashPop applies and drops the most recent stash entry.
func (g *Git) StashPop(ctx context.Context) error {
	return g.RunSilent(ctx, "stash", "pop")
}

// IsDirty reports whether the working tree has uncommitted changes
// (tracked modifications or staged changes; untracked files are ignored).
func (g *Git) IsDirty(ctx context.Context) (bool, error) {
	out, err := g.Run(ctx, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return out != "", nil
}
