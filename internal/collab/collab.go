// Package collab defines the narrow seams twig uses to reach external
// collaborators (Jira, GitHub). No HTTP client lives here: concrete
// implementations of credential storage, the Jira REST client, and the
// GitHub API client are out of scope (spec Non-goals), so callers depend
// only on these interfaces and are expected to inject a real
// implementation, a stub, or a mock in tests.
package collab

import (
	"context"
	"errors"
	"fmt"
)

// ErrCredentialsMissing is returned by a CredentialProvider when no
// credential is configured for a host.
type ErrCredentialsMissing struct {
	Host string
}

func (e *ErrCredentialsMissing) Error() string {
	return fmt.Sprintf("no credentials configured for %s", e.Host)
}

// IsCredentialsMissing reports whether err is (or wraps) ErrCredentialsMissing.
func IsCredentialsMissing(err error) bool {
	var e *ErrCredentialsMissing
	return errors.As(err, &e)
}

// CredentialProvider resolves a secret (API token, PAT) for a given host.
type CredentialProvider interface {
	CredentialFor(host string) (string, error)
}

// JiraIssue is the subset of a Jira issue twig needs to derive a branch name.
type JiraIssue struct {
	Key     string
	Summary string
}

// JiraClient reaches a Jira instance to resolve issue summaries. Switch
// falls back to the bare issue key when no client is configured or the
// lookup fails.
type JiraClient interface {
	GetIssue(ctx context.Context, key string) (JiraIssue, error)
}

// PullRequest is the subset of a GitHub pull request twig needs to check
// out its head branch.
type PullRequest struct {
	Number   int
	HeadRef  string
	HeadRepo string // "owner/repo" of the ref's origin, which may be a fork
}

// GitHubClient reaches the GitHub API to resolve a pull request's head ref.
type GitHubClient interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (PullRequest, error)
}
