package gitwire

// Fetch and FetchAll run with inherited stdio so the user's credential
// helper (SSH agent prompt, credential.helper, GCM) can interact with the
// terminal, and so the human sees fetch progress. Pull and the push
// helpers capture combined output instead, so callers can inspect it.

import "context"

// Fetch runs `git fetch <remote> <branch>`. An empty branch fetches the
// remote's default refspec.
func (g *Git) Fetch(ctx context.Context, remote, branch string) error {
	args := []string{"fetch", remote}
	if branch != "" {
		args = append(args, branch)
	}
	_, err := g.ExecuteGitInteractive(ctx, args...)
	return err
}

// FetchAll runs `git fetch --all --prune`, refreshing every configured
// remote and pruning stale remote-tracking refs.
func (g *Git) FetchAll(ctx context.Context) error {
	_, err := g.ExecuteGitInteractive(ctx, "fetch", "--all", "--prune")
	return err
}

// Pull runs `git pull --ff-only <remote> <branch>`. Twig never performs a
// merge pull; a non-fast-forward pull surfaces as a RebaseError-equivalent
// failure for the caller to report.
func (g *Git) Pull(ctx context.Context, remote, branch string) (CommandResult, error) {
	return g.ExecuteGit(ctx, "pull", "--ff-only", remote, branch)
}

// PushForceWithLease runs `git push --force-with-lease <remote> <branch>`,
// the cascade engine's push primitive: it fails closed if the remote tip
// moved since the engine last observed it, rather than clobbering someone
// else's push.
func (g *Git) PushForceWithLease(ctx context.Context, remote, branch string) (CommandResult, error) {
	return g.ExecuteGit(ctx, "push", "--force-with-lease", remote, branch)
}

// Push runs a plain `git push <remote> <branch>`, optionally setting the
// upstream tracking reference.
func (g *Git) Push(ctx context.Context, remote, branch string, setUpstream bool) (CommandResult, error) {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "--set-upstream")
	}
	args = append(args, remote, branch)
	return g.ExecuteGit(ctx, args...)
}
