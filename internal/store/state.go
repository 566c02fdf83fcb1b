// Package store persists the repo-local dependency graph (which branch
// depends on which) and its branch metadata to <repo>/.twig/state.json,
// plus a global registry of known repositories.
package store

import (
	"encoding/json"
	"sort"
	"time"
)

// BranchMetadata is one record per locally tracked branch: its optional
// Jira and GitHub PR associations.
type BranchMetadata struct {
	Branch    string `json:"branch"`
	JiraIssue string `json:"jira_issue,omitempty"`
	GithubPR  *int   `json:"github_pr,omitempty"`
	CreatedAt string `json:"created_at"`
}

// DependencyEdge is a directed parent -> child relationship between two
// branch names.
type DependencyEdge struct {
	Child  string `json:"child"`
	Parent string `json:"parent"`
}

// RootBranch designates a root of the dependency forest.
type RootBranch struct {
	Branch    string `json:"branch"`
	IsDefault bool   `json:"is_default"`
}

// RepoState is the aggregate document persisted at .twig/state.json. In
// memory, Branches is a map keyed by branch name for O(1) lookup; on disk
// it is written and read as a JSON array, per the wire format.
type RepoState struct {
	Branches     map[string]BranchMetadata
	Dependencies []DependencyEdge `json:"dependencies"`
	RootBranches []RootBranch     `json:"root_branches"`
}

// repoStateWire is RepoState's on-disk shape.
type repoStateWire struct {
	Branches     []BranchMetadata `json:"branches"`
	Dependencies []DependencyEdge `json:"dependencies"`
	RootBranches []RootBranch     `json:"root_branches"`
}

// MarshalJSON renders Branches as a JSON array sorted by name, for stable
// key order across saves.
func (s RepoState) MarshalJSON() ([]byte, error) {
	wire := repoStateWire{
		Branches:     make([]BranchMetadata, 0, len(s.Branches)),
		Dependencies: s.Dependencies,
		RootBranches: s.RootBranches,
	}
	for _, b := range s.Branches {
		wire.Branches = append(wire.Branches, b)
	}
	sort.Slice(wire.Branches, func(i, j int) bool { return wire.Branches[i].Branch < wire.Branches[j].Branch })
	return json.Marshal(wire)
}

// UnmarshalJSON accepts the wire's branch array and rebuilds the in-memory
// map. Unknown top-level fields are ignored by encoding/json by default.
func (s *RepoState) UnmarshalJSON(data []byte) error {
	var wire repoStateWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.Branches = make(map[string]BranchMetadata, len(wire.Branches))
	for _, b := range wire.Branches {
		s.Branches[b.Branch] = b
	}
	s.Dependencies = wire.Dependencies
	s.RootBranches = wire.RootBranches
	return nil
}

// NewRepoState returns an empty, ready-to-use RepoState.
func NewRepoState() *RepoState {
	return &RepoState{
		Branches:     make(map[string]BranchMetadata),
		Dependencies: nil,
		RootBranches: nil,
	}
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}
