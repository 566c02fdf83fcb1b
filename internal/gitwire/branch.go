package gitwire

import (
	"context"
	"strings"
)

// BranchInfo describes a single local branch.
type BranchInfo struct {
	Name     string
	Hash     string
	Subject  string
	Upstream string
	Current  bool
}

// Branches returns local branches sorted by most recent commit.
func (g *Git) Branches(ctx context.Context) ([]BranchInfo, error) {
	lines, err := g.RunLines(ctx, "branch", "-vv", "--sort=-committerdate")
	if err != nil {
		return nil, err
	}
	var branches []BranchInfo
	for _, line := range lines {
		if len(line) < 3 {
			continue
		}
		current := line[0] == '*'
		rest := strings.TrimSpace(line[2:])
		parts := strings.Fields(rest)
		if len(parts) < 2 {
			continue
		}
		bi := BranchInfo{Name: parts[0], Hash: parts[1], Current: current}
		remaining := strings.Join(parts[2:], " ")
		if strings.HasPrefix(remaining, "[") {
			idx := strings.Index(remaining, "]")
			if idx != -1 {
				bi.Upstream = remaining[1:idx]
				if idx+2 < len(remaining) {
					bi.Subject = strings.TrimSpace(remaining[idx+2:])
				}
			}
		} else {
			bi.Subject = remaining
		}
		branches = append(branches, bi)
	}
	return branches, nil
}

// RemoteBranches returns remote-tracking branch short names, e.g.
// "origin/feature-x", excluding symbolic refs like "origin/HEAD".
func (g *Git) RemoteBranches(ctx context.Context) ([]string, error) {
	lines, err := g.RunLines(ctx, "branch", "-r", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l == "" || strings.HasSuffix(l, "/HEAD") {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// CreateBranch creates a new branch at startPoint without checking it out.
// An empty startPoint creates the branch at HEAD.
func (g *Git) CreateBranch(ctx context.Context, name, startPoint string) error {
	args := []string{"branch", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	return g.RunSilent(ctx, args...)
}

// CreateTrackingBranch creates a local branch tracking a remote branch.
func (g *Git) CreateTrackingBranch(ctx context.Context, name, remoteBranch string) error {
	return g.RunSilent(ctx, "branch", "--track", name, remoteBranch)
}

// DeleteBranch deletes a local branch. force selects `-D` over `-d`.
func (g *Git) DeleteBranch(ctx context.Context, name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	return g.RunSilent(ctx, "branch", flag, name)
}

// CheckoutBranch checks out an existing local branch.
func (g *Git) CheckoutBranch(ctx context.Context, name string) error {
	return g.RunSilent(ctx, "checkout", name)
}

// CheckoutNewBranch creates and checks out a new branch from startPoint.
func (g *Git) CheckoutNewBranch(ctx context.Context, name, startPoint string) error {
	args := []string{"checkout", "-b", name}
	if startPoint != "" {
		args = append(args, startPoint)
	}
	return g.RunSilent(ctx, args...)
}

// Upstream returns the configured upstream remote/branch for name, e.g.
// "origin/feature-x", or "" if unconfigured.
func (g *Git) Upstream(ctx context.Context, name string) string {
	out, err := g.Run(ctx, "rev-parse", "--abbrev-ref", name+"@{upstream}")
	if err != nil {
		return ""
	}
	return out
}

// RemoteOf returns the configured `branch.<name>.remote` value, e.g.
// "origin", or "" if unconfigured.
func (g *Git) RemoteOf(ctx context.Context, name string) string {
	out, _ := g.ConfigGet(ctx, "branch."+name+".remote")
	return out
}
