package switcher

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/eddieland/twig/internal/collab"
	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/jiraparse"
	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/testutil"
)

type fakeJiraClient struct {
	summary string
}

func (f fakeJiraClient) GetIssue(ctx context.Context, key string) (collab.JiraIssue, error) {
	return collab.JiraIssue{Key: key, Summary: f.summary}, nil
}

type fakeGitHubClient struct {
	headRef string
}

func (f fakeGitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (collab.PullRequest, error) {
	return collab.PullRequest{Number: number, HeadRef: f.headRef}, nil
}

func TestSwitchBranchChecksOutExistingLocal(t *testing.T) {
	ctx := context.Background()
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")
	testutil.Branch(t, dir, "feature")
	testutil.Checkout(t, dir, "main")

	git := gitwire.New(dir)
	d := New(git, store.NewRepoState())

	res, err := d.Switch(ctx, "feature", Options{})
	testutil.AssertNoError(t, err, "Switch")
	if res.Branch != "feature" || res.Created {
		t.Fatalf("got %+v", res)
	}
	current, _ := git.CurrentBranch(ctx)
	testutil.AssertEqual(t, current, "feature", "current branch after switch")
}

func TestSwitchBranchCreatesFromBaseWhenAllowed(t *testing.T) {
	ctx := context.Background()
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")

	git := gitwire.New(dir)
	d := New(git, store.NewRepoState())

	res, err := d.Switch(ctx, "new-feature", Options{AllowCreate: true, BaseBranch: "main"})
	testutil.AssertNoError(t, err, "Switch")
	if !res.Created || res.Branch != "new-feature" {
		t.Fatalf("got %+v", res)
	}
}

func TestSwitchBranchFailsWithoutCreate(t *testing.T) {
	ctx := context.Background()
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")

	git := gitwire.New(dir)
	d := New(git, store.NewRepoState())

	_, err := d.Switch(ctx, "does-not-exist", Options{})
	testutil.AssertError(t, err, "Switch without AllowCreate")
}

func TestSwitchJiraDerivesBranchNameFromSummary(t *testing.T) {
	ctx := context.Background()
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")

	git := gitwire.New(dir)
	state := store.NewRepoState()
	d := New(git, state)
	d.Jira = fakeJiraClient{summary: "Fix the Thing!"}

	res, err := d.Switch(ctx, "PROJ-9", Options{AllowCreate: true, BaseBranch: "main", JiraMode: jiraparse.ModeStrict})
	testutil.AssertNoError(t, err, "Switch")
	testutil.AssertEqual(t, res.Branch, "PROJ-9-fix-the-thing", "derived branch name")
	testutil.AssertEqual(t, res.JiraIssue, "PROJ-9", "recorded jira issue")

	meta := state.Branches[res.Branch]
	testutil.AssertEqual(t, meta.JiraIssue, "PROJ-9", "state metadata jira issue")
}

func TestSwitchJiraFallsBackToBareKeyWithoutClient(t *testing.T) {
	ctx := context.Background()
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")

	git := gitwire.New(dir)
	d := New(git, store.NewRepoState())

	res, err := d.Switch(ctx, "PROJ-9", Options{AllowCreate: true, BaseBranch: "main"})
	testutil.AssertNoError(t, err, "Switch")
	testutil.AssertEqual(t, res.Branch, "PROJ-9", "bare key branch name")
}

func TestSwitchPRFetchesHeadAndChecksOut(t *testing.T) {
	ctx := context.Background()
	remoteSrc := testutil.NewGitRepo(t)
	testutil.CommitFile(t, remoteSrc, "a.txt", "1", "initial")
	testutil.Branch(t, remoteSrc, "contributor-feature")
	testutil.CommitFile(t, remoteSrc, "b.txt", "2", "pr work")
	testutil.Checkout(t, remoteSrc, "main")

	bareDir := filepath.Join(filepath.Dir(remoteSrc), filepath.Base(remoteSrc)+"-bare.git")
	testutil.RunGit(t, remoteSrc, "clone", "--bare", ".", bareDir)

	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")
	testutil.RunGit(t, dir, "remote", "add", "origin", bareDir)

	git := gitwire.New(dir)
	state := store.NewRepoState()
	d := New(git, state)
	d.GitHub = fakeGitHubClient{headRef: "contributor-feature"}

	res, err := d.Switch(ctx, "https://github.com/acme/widgets/pull/5", Options{})
	testutil.AssertNoError(t, err, "Switch PR")
	testutil.AssertEqual(t, res.Branch, "pr-5", "PR branch name")
	if res.GithubPR == nil || *res.GithubPR != 5 {
		t.Fatalf("GithubPR = %v, want 5", res.GithubPR)
	}

	current, _ := git.CurrentBranch(ctx)
	testutil.AssertEqual(t, current, "pr-5", "current branch after PR switch")
}

func TestSwitchPRWithoutGitHubClientIsCredentialsMissing(t *testing.T) {
	ctx := context.Background()
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")

	git := gitwire.New(dir)
	d := New(git, store.NewRepoState())

	_, err := d.Switch(ctx, "https://github.com/acme/widgets/pull/5", Options{})
	if !collab.IsCredentialsMissing(err) {
		t.Fatalf("expected IsCredentialsMissing, got %v", err)
	}
}

func TestParseGitHubOwnerRepo(t *testing.T) {
	tests := []struct {
		url   string
		owner string
		repo  string
	}{
		{"git@github.com:acme/widgets.git", "acme", "widgets"},
		{"https://github.com/acme/widgets.git", "acme", "widgets"},
		{"https://github.com/acme/widgets", "acme", "widgets"},
	}
	for _, tt := range tests {
		owner, repo, err := parseGitHubOwnerRepo(tt.url)
		testutil.AssertNoError(t, err, "parseGitHubOwnerRepo")
		testutil.AssertEqual(t, owner, tt.owner, "owner")
		testutil.AssertEqual(t, repo, tt.repo, "repo")
	}
}
