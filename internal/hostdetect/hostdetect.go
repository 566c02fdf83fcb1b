// Package hostdetect resolves a git remote URL down to a hosting provider
// and an owner/repo pair. twig's switch dispatcher uses it to turn an
// `origin` remote into the owner/repo a GitHub PR number is fetched
// against (see internal/switcher), and to reject remotes pointing at a
// host PR switch doesn't support with a clearer error than a generic
// parse failure.
package hostdetect

import (
	"net/url"
	"strings"
)

// Provider identifies a git hosting service.
type Provider string

const (
	ProviderGitHub    Provider = "github"
	ProviderGitLab    Provider = "gitlab"
	ProviderBitbucket Provider = "bitbucket"
	ProviderUnknown   Provider = "unknown"
)

// Info is what FromURL extracts from a remote URL.
type Info struct {
	Provider Provider
	Host     string // e.g. "github.com", "github.internal.corp"
	Owner    string // repository owner/org (nested groups joined with "/" for GitLab)
	Repo     string // repository name, with any ".git" suffix stripped
}

// FromURL extracts provider/owner/repo from a git remote URL. Returns nil
// if the URL is empty, unparseable, or has fewer than two path segments.
//
// Supports:
//   - https://github.com/owner/repo[.git]
//   - https://gitlab.com/group/subgroup/repo
//   - https://bitbucket.org/owner/repo
//   - ssh://git@github.internal.corp:8443/team/project
func FromURL(repoURL string) *Info {
	if repoURL == "" {
		return nil
	}

	u, err := url.Parse(repoURL)
	if err != nil || u.Host == "" {
		return nil
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 {
		return nil
	}

	host := strings.ToLower(u.Host)
	provider := DetectProvider(host)

	var owner, repo string
	if len(parts) > 2 {
		owner = strings.Join(parts[:len(parts)-1], "/")
		repo = parts[len(parts)-1]
	} else {
		owner = parts[0]
		repo = parts[1]
	}
	repo = strings.TrimSuffix(repo, ".git")

	return &Info{Provider: provider, Host: host, Owner: owner, Repo: repo}
}

// DetectProvider classifies a hostname, matching well-known hosts first
// (github.com, gitlab.com, bitbucket.org), then enterprise/self-hosted
// instances that carry the provider's name (github.corp.internal,
// my-gitlab.corp), so an enterprise PR remote still resolves to the right
// provider instead of falling through to ProviderUnknown.
func DetectProvider(host string) Provider {
	host = strings.ToLower(host)
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}

	switch host {
	case "github.com":
		return ProviderGitHub
	case "gitlab.com":
		return ProviderGitLab
	case "bitbucket.org":
		return ProviderBitbucket
	}

	switch {
	case strings.HasSuffix(host, ".github.com"):
		return ProviderGitHub
	case strings.HasSuffix(host, ".gitlab.com"):
		return ProviderGitLab
	case strings.HasSuffix(host, ".bitbucket.org"):
		return ProviderBitbucket
	}

	switch {
	case strings.Contains(host, "github"):
		return ProviderGitHub
	case strings.Contains(host, "gitlab"):
		return ProviderGitLab
	case strings.Contains(host, "bitbucket"):
		return ProviderBitbucket
	}

	return ProviderUnknown
}
