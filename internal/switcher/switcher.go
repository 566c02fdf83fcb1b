package switcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eddieland/twig/internal/collab"
	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/hostdetect"
	"github.com/eddieland/twig/internal/jiraparse"
	"github.com/eddieland/twig/internal/store"
)

// ErrNoRemote is returned by a PR switch when origin is not configured.
var ErrNoRemote = errors.New("no \"origin\" remote configured")

// ErrCannotParseRemote is returned when the origin URL does not look like
// a GitHub remote.
var ErrCannotParseRemote = errors.New("could not determine owner/repo from the origin remote")

// Options configures a single switch invocation.
type Options struct {
	Remote      string          // git remote to fetch from; defaults to "origin"
	AllowCreate bool            // create a new local branch when none exists anywhere
	BaseBranch  string          // explicit create-from base; "" uses the fallback chain
	DefaultRoot string          // store default root, used in the base fallback chain
	JiraMode    jiraparse.Mode
}

func (o Options) remote() string {
	if o.Remote == "" {
		return "origin"
	}
	return o.Remote
}

// Result reports what a switch actually did.
type Result struct {
	Branch    string
	Created   bool
	JiraIssue string
	GithubPR  *int
}

// Dispatcher is the switch entry point. Jira and GitHub are optional; a nil
// value is treated as "no credentials configured" for that collaborator.
type Dispatcher struct {
	Git    *gitwire.Git
	State  *store.RepoState
	Jira   collab.JiraClient
	GitHub collab.GitHubClient
}

// New returns a Dispatcher backed by git, bare of any collaborator clients.
func New(git *gitwire.Git, state *store.RepoState) *Dispatcher {
	return &Dispatcher{Git: git, State: state}
}

// Switch classifies token and runs the matching pipeline.
func (d *Dispatcher) Switch(ctx context.Context, token string, opts Options) (Result, error) {
	exists := func(name string) bool { return d.localBranchExists(ctx, name) }
	c := Resolve(token, opts.JiraMode, exists)

	switch c.Kind {
	case KindBranchName:
		return d.switchBranch(ctx, c.Token, opts, "", nil)
	case KindJiraIssueKey, KindJiraIssueURL:
		return d.switchJira(ctx, c.JiraKey, opts)
	case KindGitHubPRID:
		return d.switchPR(ctx, "", "", c.PRNumber, opts)
	case KindGitHubPRURL:
		return d.switchPR(ctx, c.PROwner, c.PRRepo, c.PRNumber, opts)
	default:
		return Result{}, fmt.Errorf("unrecognized switch token %q", token)
	}
}

func (d *Dispatcher) localBranchExists(ctx context.Context, name string) bool {
	branches, err := d.Git.Branches(ctx)
	if err != nil {
		return false
	}
	for _, b := range branches {
		if b.Name == name {
			return true
		}
	}
	return false
}

func (d *Dispatcher) remoteBranchExists(ctx context.Context, remote, name string) bool {
	remotes, err := d.Git.RemoteBranches(ctx)
	if err != nil {
		return false
	}
	want := remote + "/" + name
	for _, r := range remotes {
		if r == want {
			return true
		}
	}
	return false
}

// switchBranch implements the branch-name pipeline: local, then
// remote-tracking, then fetch-and-create, recording any association the
// caller passed in (a Jira key or a PR number).
func (d *Dispatcher) switchBranch(ctx context.Context, name string, opts Options, jiraIssue string, githubPR *int) (Result, error) {
	remote := opts.remote()
	created := false

	switch {
	case d.localBranchExists(ctx, name):
		if err := d.Git.CheckoutBranch(ctx, name); err != nil {
			return Result{}, fmt.Errorf("checking out %s: %w", name, err)
		}
	case d.remoteBranchExists(ctx, remote, name):
		if err := d.Git.CreateTrackingBranch(ctx, name, remote+"/"+name); err != nil {
			return Result{}, fmt.Errorf("creating tracking branch %s: %w", name, err)
		}
		if err := d.Git.CheckoutBranch(ctx, name); err != nil {
			return Result{}, fmt.Errorf("checking out %s: %w", name, err)
		}
	case opts.AllowCreate:
		_ = d.Git.Fetch(ctx, remote, "")
		if d.remoteBranchExists(ctx, remote, name) {
			if err := d.Git.CreateTrackingBranch(ctx, name, remote+"/"+name); err != nil {
				return Result{}, fmt.Errorf("creating tracking branch %s: %w", name, err)
			}
			if err := d.Git.CheckoutBranch(ctx, name); err != nil {
				return Result{}, fmt.Errorf("checking out %s: %w", name, err)
			}
		} else {
			base := d.resolveBase(ctx, opts)
			if err := d.Git.CheckoutNewBranch(ctx, name, base); err != nil {
				return Result{}, fmt.Errorf("creating branch %s from %s: %w", name, base, err)
			}
			created = true
		}
	default:
		return Result{}, fmt.Errorf("branch %q not found locally or on %s", name, remote)
	}

	if jiraIssue != "" || githubPR != nil {
		d.recordMetadata(name, jiraIssue, githubPR)
	}

	return Result{Branch: name, Created: created, JiraIssue: jiraIssue, GithubPR: githubPR}, nil
}

// resolveBase implements the create-from-base fallback chain: an explicit
// base, else the store's default root, else the current branch.
func (d *Dispatcher) resolveBase(ctx context.Context, opts Options) string {
	if opts.BaseBranch != "" {
		return opts.BaseBranch
	}
	if opts.DefaultRoot != "" {
		return opts.DefaultRoot
	}
	current, err := d.Git.CurrentBranch(ctx)
	if err != nil {
		return ""
	}
	return current
}

func (d *Dispatcher) recordMetadata(branch, jiraIssue string, githubPR *int) {
	if d.State == nil {
		return
	}
	meta, ok := d.State.Branches[branch]
	if !ok {
		meta = store.BranchMetadata{Branch: branch, CreatedAt: time.Now().UTC().Format(time.RFC3339)}
	}
	if jiraIssue != "" {
		meta.JiraIssue = jiraIssue
	}
	if githubPR != nil {
		meta.GithubPR = githubPR
	}
	d.State.Branches[branch] = meta
}

// switchJira normalizes key, derives a branch name (using the Jira client
// when configured, else the bare key), and runs the branch-name pipeline.
func (d *Dispatcher) switchJira(ctx context.Context, key string, opts Options) (Result, error) {
	branchName := key
	if d.Jira != nil {
		issue, err := d.Jira.GetIssue(ctx, key)
		if err == nil && issue.Summary != "" {
			branchName = key + "-" + kebabCase(issue.Summary)
		}
	}
	return d.switchBranch(ctx, branchName, opts, key, nil)
}

// switchPR resolves owner/repo (from origin, if not already known from the
// URL), fetches the PR head into a local pr-<number> branch (fast-forwarding
// that branch when it already exists), checks it out, and records the PR
// number.
func (d *Dispatcher) switchPR(ctx context.Context, owner, repo string, number int, opts Options) (Result, error) {
	remote := opts.remote()

	if owner == "" || repo == "" {
		url, err := d.Git.RemoteURL(ctx, remote)
		if err != nil {
			return Result{}, ErrNoRemote
		}
		owner, repo, err = parseGitHubOwnerRepo(url)
		if err != nil {
			return Result{}, err
		}
	}

	if d.GitHub == nil {
		return Result{}, &collab.ErrCredentialsMissing{Host: "github.com"}
	}

	pr, err := d.GitHub.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return Result{}, fmt.Errorf("fetching PR #%d: %w", number, err)
	}

	branchName := fmt.Sprintf("pr-%d", number)
	refspec := fmt.Sprintf("%s:refs/heads/%s", pr.HeadRef, branchName)

	if d.localBranchExists(ctx, branchName) {
		if err := d.Git.Fetch(ctx, remote, pr.HeadRef); err != nil {
			return Result{}, fmt.Errorf("fetching PR head: %w", err)
		}
		if err := d.Git.CheckoutBranch(ctx, branchName); err != nil {
			return Result{}, fmt.Errorf("checking out %s: %w", branchName, err)
		}
		if _, err := d.Git.Pull(ctx, remote, pr.HeadRef); err != nil {
			return Result{}, fmt.Errorf("fast-forwarding %s: %w", branchName, err)
		}
	} else {
		if err := d.Git.Fetch(ctx, remote, refspec); err != nil {
			return Result{}, fmt.Errorf("fetching PR head: %w", err)
		}
		if err := d.Git.CheckoutBranch(ctx, branchName); err != nil {
			return Result{}, fmt.Errorf("checking out %s: %w", branchName, err)
		}
	}

	n := number
	d.recordMetadata(branchName, "", &n)
	return Result{Branch: branchName, GithubPR: &n}, nil
}

// parseGitHubOwnerRepo extracts owner/repo from an origin remote URL,
// rejecting remotes that do not resolve to github.com (hostdetect also
// recognizes GitHub Enterprise hosts, which PR switch does not support).
func parseGitHubOwnerRepo(remoteURL string) (owner, repo string, err error) {
	info := hostdetect.FromURL(normalizeSCPLikeURL(remoteURL))
	if info == nil || info.Provider != hostdetect.ProviderGitHub || info.Host != "github.com" {
		return "", "", ErrCannotParseRemote
	}
	return info.Owner, info.Repo, nil
}

// normalizeSCPLikeURL rewrites an SSH "scp-like" remote
// ("git@github.com:owner/repo.git") into a URL hostdetect.FromURL can
// parse ("ssh://git@github.com/owner/repo.git"); URLs that already have a
// scheme pass through unchanged.
func normalizeSCPLikeURL(remoteURL string) string {
	if strings.Contains(remoteURL, "://") {
		return remoteURL
	}
	at := strings.Index(remoteURL, "@")
	colon := strings.Index(remoteURL, ":")
	if at == -1 || colon == -1 || colon < at {
		return remoteURL
	}
	return "ssh://" + remoteURL[:colon] + "/" + remoteURL[colon+1:]
}

func kebabCase(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
