// Package tidy deletes branches that no longer add value while preserving
// the dependency forest: standard mode removes merged leaves, aggressive
// mode additionally re-parents the children of removed intermediate
// branches.
package tidy

import (
	"context"
	"fmt"

	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/graph"
	"github.com/eddieland/twig/internal/store"
)

// Mode selects how aggressively tidy reclaims branches.
type Mode int

const (
	ModeStandard Mode = iota
	ModeAggressive
)

// Action describes one branch tidy proposes to delete, and (in aggressive
// mode) the re-parenting that deletion implies.
type Action struct {
	Branch       string
	Parent       string
	Children     []string // non-empty only for an aggressive-mode intermediate deletion
	Reparented   []store.DependencyEdge
	RolledBack   bool
	RollbackWarn string
}

// Plan computes the set of branches eligible for deletion under mode,
// without mutating anything.
func Plan(g *graph.Graph, mode Mode) []Action {
	var actions []Action
	for name, node := range g.Nodes {
		if node.Kind != graph.KindLocal || node.Current {
			continue
		}
		if g.ConfiguredRoots[name] {
			continue
		}
		if len(node.Children) == 0 {
			if isMergedOrCurrent(node) {
				actions = append(actions, Action{Branch: name, Parent: node.PrimaryParent})
			}
			continue
		}
		if mode == ModeAggressive && isMergedOrCurrent(node) {
			actions = append(actions, Action{Branch: name, Parent: node.PrimaryParent, Children: append([]string(nil), node.Children...)})
		}
	}
	return actions
}

// isMergedOrCurrent reports the deletion eligibility condition: the
// branch has nothing ahead of its parent. Branches with no resolvable
// counts (CountsKnown=false) are treated conservatively as not eligible.
func isMergedOrCurrent(node *graph.Node) bool {
	return node.CountsKnown && node.Ahead == 0
}

// Apply executes the plan: deletes each branch from Git and the store,
// re-parenting children for aggressive-mode intermediate deletions. Each
// intermediate re-parenting runs as its own rollback unit: if adding a
// replacement edge would create a cycle, that branch's deletion is
// skipped (the branch is preserved) and Action.RolledBack is set, but
// unrelated actions in the same plan still proceed.
func Apply(ctx context.Context, git *gitwire.Git, state *store.RepoState, actions []Action) ([]Action, error) {
	results := make([]Action, 0, len(actions))
	for _, action := range actions {
		if len(action.Children) > 0 {
			applied, ok := reparentChildren(state, action)
			if !ok {
				action.RolledBack = true
				action.RollbackWarn = fmt.Sprintf("deleting %s would require an edge that closes a cycle; branch preserved", action.Branch)
				results = append(results, action)
				continue
			}
			action.Reparented = applied
		}

		if err := git.DeleteBranch(ctx, action.Branch, false); err != nil {
			return results, fmt.Errorf("deleting %s: %w", action.Branch, err)
		}
		store.RemoveBranch(state, action.Branch)
		store.RemoveDependency(state, action.Branch, action.Parent)
		for _, child := range action.Children {
			store.RemoveDependency(state, child, action.Branch)
		}
		results = append(results, action)
	}
	return results, nil
}

// reparentChildren replaces each (child, branch) edge with (child,
// branch.Parent). If any replacement would close a cycle, none of them
// are applied and ok=false.
func reparentChildren(state *store.RepoState, action Action) ([]store.DependencyEdge, bool) {
	var applied []store.DependencyEdge
	for _, child := range action.Children {
		if err := store.AddDependency(state, child, action.Parent); err != nil {
			for _, e := range applied {
				store.RemoveDependency(state, e.Child, e.Parent)
			}
			return nil, false
		}
		applied = append(applied, store.DependencyEdge{Child: child, Parent: action.Parent})
	}
	return applied, true
}
