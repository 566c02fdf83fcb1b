package switcher

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/eddieland/twig/internal/collab"
	"github.com/eddieland/twig/internal/collab/mocks"
	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/store"
	"github.com/eddieland/twig/internal/testutil"
)

func TestSwitchJiraUsesMockedClientSummary(t *testing.T) {
	ctx := context.Background()
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")

	ctrl := gomock.NewController(t)
	jira := mocks.NewMockJiraClient(ctrl)
	jira.EXPECT().GetIssue(ctx, "PROJ-42").Return(collab.JiraIssue{Key: "PROJ-42", Summary: "Ship the widget"}, nil)

	d := New(gitwire.New(dir), store.NewRepoState())
	d.Jira = jira

	res, err := d.Switch(ctx, "PROJ-42", Options{AllowCreate: true, BaseBranch: "main"})
	testutil.AssertNoError(t, err, "Switch")
	testutil.AssertEqual(t, res.Branch, "PROJ-42-ship-the-widget", "derived branch name")
}

func TestSwitchPRPropagatesMockedGitHubError(t *testing.T) {
	ctx := context.Background()
	dir := testutil.NewGitRepo(t)
	testutil.CommitFile(t, dir, "a.txt", "1", "initial")
	testutil.RunGit(t, dir, "remote", "add", "origin", "git@github.com:acme/widgets.git")

	ctrl := gomock.NewController(t)
	github := mocks.NewMockGitHubClient(ctrl)
	fetchErr := errors.New("boom: upstream unavailable")
	github.EXPECT().GetPullRequest(ctx, "acme", "widgets", 7).Return(collab.PullRequest{}, fetchErr)

	d := New(gitwire.New(dir), store.NewRepoState())
	d.GitHub = github

	_, err := d.Switch(ctx, "#7", Options{})
	if err == nil || !errors.Is(err, fetchErr) {
		t.Fatalf("Switch() error = %v, want wrapped %v", err, fetchErr)
	}
}
