// Package graph builds the in-memory annotated dependency DAG from the
// current Git state and the persisted store, for the cascade, adopt, and
// tidy engines (and for `twig log`/`twig branch` rendering) to consume.
package graph

import (
	"context"
	"errors"
	"sort"

	"github.com/eddieland/twig/internal/gitobj"
	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/store"
)

// ErrMissingWorkdir is surfaced when the repository has no working tree.
var ErrMissingWorkdir = gitobj.ErrMissingWorkdir

// ErrMissingHead is surfaced when the repository has no commits.
var ErrMissingHead = gitobj.ErrMissingHead

// BranchKind distinguishes local branches from remote-tracking refs.
type BranchKind int

const (
	KindLocal BranchKind = iota
	KindRemote
)

// Node is one branch in the annotated DAG.
type Node struct {
	Name             string
	Kind             BranchKind
	Head             string
	Upstream         string
	PrimaryParent    string
	SecondaryParents []string
	Children         []string
	Ahead            int
	Behind           int
	CountsKnown      bool
	JiraIssue        string
	GithubPR         *int
	Current          bool
}

// Graph is the annotated DAG: nodes keyed by branch name, edges expressed
// only as name references (never pointers), so no in-memory cycle can
// exist even if the store's data were corrupt.
type Graph struct {
	Nodes           map[string]*Node
	RootCandidates  []string
	ConfiguredRoots map[string]bool // branches explicitly recorded as roots in the store
	CurrentBranch   string
	Orphaned        []string
}

// Build composes live Git state (via gitwire for branch enumeration and
// ahead/behind, gitobj for HEAD/open checks) with the store's recorded
// dependencies into a Graph.
func Build(ctx context.Context, workdir string, state *store.RepoState, includeRemote bool) (*Graph, error) {
	repo, err := gitobj.Open(workdir)
	if err != nil {
		return nil, err
	}

	g := gitwire.New(workdir)
	branches, err := g.Branches(ctx)
	if err != nil {
		return nil, err
	}

	graph := &Graph{Nodes: make(map[string]*Node, len(branches))}
	for _, b := range branches {
		node := &Node{Name: b.Name, Kind: KindLocal, Head: b.Hash, Upstream: b.Upstream, Current: b.Current}
		if meta, ok := state.Branches[b.Name]; ok {
			node.JiraIssue = meta.JiraIssue
			node.GithubPR = meta.GithubPR
		}
		graph.Nodes[b.Name] = node
	}

	if includeRemote {
		remoteBranches, err := g.RemoteBranches(ctx)
		if err == nil {
			for _, name := range remoteBranches {
				if _, exists := graph.Nodes[name]; !exists {
					graph.Nodes[name] = &Node{Name: name, Kind: KindRemote}
				}
			}
		}
	}

	applyDependencies(graph, state.Dependencies)

	for _, node := range graph.Nodes {
		if node.PrimaryParent == "" {
			continue
		}
		parent, ok := graph.Nodes[node.PrimaryParent]
		if !ok {
			continue
		}
		ahead, behind, err := g.AheadBehind(ctx, node.Name, parent.Name)
		if err != nil {
			continue
		}
		node.Ahead, node.Behind, node.CountsKnown = ahead, behind, true
	}

	currentBranch, err := repo.CurrentBranch()
	if err == nil {
		graph.CurrentBranch = currentBranch
	} else if !errors.Is(err, gitobj.ErrMissingHead) {
		return nil, err
	}

	rootSet := make(map[string]bool, len(state.RootBranches))
	for _, r := range state.RootBranches {
		rootSet[r.Branch] = true
	}
	graph.ConfiguredRoots = rootSet

	for name, node := range graph.Nodes {
		sort.Strings(node.Children)
		if node.PrimaryParent == "" {
			graph.RootCandidates = append(graph.RootCandidates, name)
		}
	}
	sort.Strings(graph.RootCandidates)

	referenced := make(map[string]bool)
	for _, node := range graph.Nodes {
		if node.PrimaryParent != "" {
			referenced[node.Name] = true
		}
		for _, c := range node.Children {
			referenced[c] = true
		}
	}
	for name := range graph.Nodes {
		if !referenced[name] && !rootSet[name] {
			graph.Orphaned = append(graph.Orphaned, name)
		}
	}
	sort.Strings(graph.Orphaned)

	return graph, nil
}

// applyDependencies wires store edges into the graph: the first recorded
// parent for a child becomes its PrimaryParent; additional parents are
// kept as SecondaryParents for consumers that want to surface the
// ambiguity rather than silently pick one.
func applyDependencies(graph *Graph, edges []store.DependencyEdge) {
	seenParent := make(map[string]bool)
	for _, e := range edges {
		child, ok := graph.Nodes[e.Child]
		if !ok {
			continue
		}
		if _, ok := graph.Nodes[e.Parent]; !ok {
			continue
		}
		if !seenParent[e.Child] {
			child.PrimaryParent = e.Parent
			seenParent[e.Child] = true
		} else {
			child.SecondaryParents = append(child.SecondaryParents, e.Parent)
		}
		parent := graph.Nodes[e.Parent]
		parent.Children = append(parent.Children, e.Child)
	}
}

// HasAmbiguousParent reports whether branch has more than one recorded
// parent, which the store's schema tolerates but the cascade/render model
// requires consumers to flag.
func (g *Graph) HasAmbiguousParent(branch string) bool {
	node, ok := g.Nodes[branch]
	return ok && len(node.SecondaryParents) > 0
}

// AmbiguousParentError is returned by consumers (cascade, tidy) that
// require a single primary parent when a branch has more than one
// recorded parent.
type AmbiguousParentError struct {
	Branch  string
	Parents []string
}

func (e *AmbiguousParentError) Error() string {
	return "branch " + e.Branch + " has multiple recorded parents, expected exactly one"
}

// RequireSingleParent returns branch's primary parent, or an
// AmbiguousParentError naming every recorded parent if there is more than
// one.
func (g *Graph) RequireSingleParent(branch string) (string, error) {
	node, ok := g.Nodes[branch]
	if !ok || node.PrimaryParent == "" {
		return "", nil
	}
	if len(node.SecondaryParents) > 0 {
		all := append([]string{node.PrimaryParent}, node.SecondaryParents...)
		return "", &AmbiguousParentError{Branch: branch, Parents: all}
	}
	return node.PrimaryParent, nil
}

// RenderRoot picks the branch to render a tree from when the caller did
// not name one explicitly: the store's default root, else the first root
// candidate (lexicographically, already sorted in RootCandidates), else
// the current branch.
func (g *Graph) RenderRoot(defaultRoot string) string {
	if defaultRoot != "" {
		if _, ok := g.Nodes[defaultRoot]; ok {
			return defaultRoot
		}
	}
	if len(g.RootCandidates) > 0 {
		return g.RootCandidates[0]
	}
	return g.CurrentBranch
}
