package gitwire

import (
	"context"
	"os"
	"path/filepath"
	"strings"
)

// RebaseOutcome classifies the result of a rebase invocation per spec §4.4:
// output containing "up to date" is UpToDate (even though it exits 0),
// output containing "CONFLICT" is Conflict (even though it exits non-zero),
// anything else follows the exit status.
type RebaseOutcome int

const (
	RebaseSuccess RebaseOutcome = iota
	RebaseUpToDate
	RebaseConflict
	RebaseError
)

// Rebase runs `git rebase [--autostash] <onto>` against the currently
// checked-out branch and classifies the outcome.
func (g *Git) Rebase(ctx context.Context, onto string, autostash bool) (RebaseOutcome, CommandResult, error) {
	args := []string{"rebase"}
	if autostash {
		args = append(args, "--autostash")
	}
	args = append(args, onto)
	result, err := g.ExecuteGit(ctx, args...)
	if err != nil {
		return RebaseError, result, err
	}
	return classifyRebase(result), result, nil
}

func classifyRebase(result CommandResult) RebaseOutcome {
	switch {
	case strings.Contains(result.Output, "up to date"):
		return RebaseUpToDate
	case strings.Contains(result.Output, "CONFLICT"):
		return RebaseConflict
	case result.Success:
		return RebaseSuccess
	default:
		return RebaseError
	}
}

// RebaseContinueOutcome classifies `git rebase --continue`/`--skip`.
type RebaseContinueOutcome int

const (
	RebaseContinueCompleted RebaseContinueOutcome = iota
	RebaseContinueMoreConflicts
	RebaseContinueFailed
)

// RebaseContinue runs `git rebase --continue` with inherited stdio (it may
// spawn an editor for a reword or merge commit message).
func (g *Git) RebaseContinue(ctx context.Context) (RebaseContinueOutcome, error) {
	return g.rebaseAction(ctx, "--continue")
}

// RebaseSkip runs `git rebase --skip`.
func (g *Git) RebaseSkip(ctx context.Context) (RebaseContinueOutcome, error) {
	return g.rebaseAction(ctx, "--skip")
}

func (g *Git) rebaseAction(ctx context.Context, action string) (RebaseContinueOutcome, error) {
	result, err := g.ExecuteGitInteractive(ctx, "rebase", action)
	if err != nil {
		return RebaseContinueFailed, err
	}
	if result.Success {
		return RebaseContinueCompleted, nil
	}
	// ExecuteGitInteractive inherits stdio, so Output is never populated;
	// a still-in-progress rebase (another conflict) is distinguished from a
	// hard failure by checking the rebase state directories directly.
	if g.RebaseInProgress(ctx) {
		return RebaseContinueMoreConflicts, nil
	}
	return RebaseContinueFailed, nil
}

// RebaseAbort runs `git rebase --abort`.
func (g *Git) RebaseAbort(ctx context.Context) error {
	return g.RunSilent(ctx, "rebase", "--abort")
}

// RebaseInProgress reports whether a rebase is currently in progress by
// checking for the rebase-merge/rebase-apply state directories.
func (g *Git) RebaseInProgress(ctx context.Context) bool {
	return g.gitPathExists(ctx, "rebase-merge") || g.gitPathExists(ctx, "rebase-apply")
}

func (g *Git) gitPathExists(ctx context.Context, relPath string) bool {
	out, err := g.Run(ctx, "rev-parse", "--git-path", relPath)
	if err != nil {
		return false
	}
	path := out
	if !filepath.IsAbs(path) {
		path = filepath.Join(g.Dir, out)
	}
	_, err = os.Stat(path)
	return err == nil
}
