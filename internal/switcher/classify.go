// Package switcher implements the single entry point that turns a user
// token (a branch name, a Jira issue key or URL, or a GitHub PR id or URL)
// into a checked-out local branch, recording any issue/PR association
// along the way.
package switcher

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/eddieland/twig/internal/jiraparse"
)

// Kind is the classification of a switch token.
type Kind int

const (
	KindBranchName Kind = iota
	KindJiraIssueKey
	KindJiraIssueURL
	KindGitHubPRID
	KindGitHubPRURL
)

func (k Kind) String() string {
	switch k {
	case KindJiraIssueKey:
		return "jira-issue-key"
	case KindJiraIssueURL:
		return "jira-issue-url"
	case KindGitHubPRID:
		return "github-pr-id"
	case KindGitHubPRURL:
		return "github-pr-url"
	default:
		return "branch-name"
	}
}

// Classification is the result of inspecting a switch token.
type Classification struct {
	Kind     Kind
	Token    string // the original, unmodified token
	JiraKey  string // set for Kind == KindJiraIssueKey/KindJiraIssueURL
	PRNumber int    // set for Kind == KindGitHubPRID/KindGitHubPRURL
	PROwner  string // set for Kind == KindGitHubPRURL
	PRRepo   string // set for Kind == KindGitHubPRURL
}

var (
	githubPRURLPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+)/pull/([0-9]+)/?$`)
	githubPRIDPattern  = regexp.MustCompile(`^#?([0-9]+)$`)
)

// Classify inspects token and reports what kind of switch target it is.
// Detection order is URL patterns, then ID/key patterns, then branch name,
// per the dispatcher's classification rules.
func Classify(token string, jiraMode jiraparse.Mode) Classification {
	trimmed := strings.TrimSpace(token)

	if key, ok := jiraparse.ParseIssueURL(trimmed, jiraMode); ok {
		return Classification{Kind: KindJiraIssueURL, Token: token, JiraKey: key}
	}
	if m := githubPRURLPattern.FindStringSubmatch(trimmed); m != nil {
		n, _ := strconv.Atoi(m[3])
		return Classification{Kind: KindGitHubPRURL, Token: token, PROwner: m[1], PRRepo: m[2], PRNumber: n}
	}
	if m := githubPRIDPattern.FindStringSubmatch(trimmed); m != nil {
		n, _ := strconv.Atoi(m[1])
		return Classification{Kind: KindGitHubPRID, Token: token, PRNumber: n}
	}
	if key, ok := jiraparse.ParseKey(trimmed, jiraMode); ok {
		return Classification{Kind: KindJiraIssueKey, Token: token, JiraKey: key}
	}
	return Classification{Kind: KindBranchName, Token: token}
}

// Resolve classifies token, then breaks the Jira-key/branch-name ambiguity:
// a token that parses as a Jira key but names an existing local branch is
// treated as a branch name instead.
func Resolve(token string, jiraMode jiraparse.Mode, localBranchExists func(string) bool) Classification {
	c := Classify(token, jiraMode)
	if c.Kind == KindJiraIssueKey && localBranchExists(token) {
		return Classification{Kind: KindBranchName, Token: token}
	}
	return c
}
