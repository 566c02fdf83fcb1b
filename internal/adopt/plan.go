package adopt

import (
	"context"
	"errors"
	"fmt"

	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/graph"
	"github.com/eddieland/twig/internal/store"
)

// Mode selects how orphans are assigned parents.
type Mode int

const (
	ModeAuto Mode = iota
	ModeDefaultRoot
	ModeBranch
)

// ErrNoDefaultRoot is returned by ModeDefaultRoot when the store has no
// default root configured.
var ErrNoDefaultRoot = errors.New("no default root configured")

// ErrUnknownParent is returned by ModeBranch when the given parent is not
// a local branch present in the graph.
type ErrUnknownParent struct{ Parent string }

func (e *ErrUnknownParent) Error() string { return "unknown branch: " + e.Parent }

// PlannedEdge is one proposed (child, parent) adoption, with the reason
// it was chosen.
type PlannedEdge struct {
	Child      string
	Parent     string
	Confidence float64
	Reason     string
}

// BuildPlan computes the adoption plan for every orphan in g.Orphaned.
func BuildPlan(ctx context.Context, git *gitwire.Git, g *graph.Graph, state *store.RepoState, mode Mode, explicitParent string) ([]PlannedEdge, error) {
	switch mode {
	case ModeDefaultRoot:
		return planDefaultRoot(g, state)
	case ModeBranch:
		return planBranch(g, explicitParent)
	default:
		return planAuto(ctx, git, g, state)
	}
}

func planDefaultRoot(g *graph.Graph, state *store.RepoState) ([]PlannedEdge, error) {
	defaultRoot := store.GetDefaultRoot(state)
	if defaultRoot == "" {
		return nil, ErrNoDefaultRoot
	}
	var plan []PlannedEdge
	for _, orphan := range g.Orphaned {
		plan = append(plan, PlannedEdge{Child: orphan, Parent: defaultRoot, Reason: "default root", Confidence: 1.0})
	}
	return plan, nil
}

func planBranch(g *graph.Graph, parent string) ([]PlannedEdge, error) {
	if _, ok := g.Nodes[parent]; !ok {
		return nil, &ErrUnknownParent{Parent: parent}
	}
	var plan []PlannedEdge
	for _, orphan := range g.Orphaned {
		plan = append(plan, PlannedEdge{Child: orphan, Parent: parent, Reason: "explicit parent", Confidence: 1.0})
	}
	return plan, nil
}

func planAuto(ctx context.Context, git *gitwire.Git, g *graph.Graph, state *store.RepoState) ([]PlannedEdge, error) {
	var candidates []string
	for name := range g.Nodes {
		candidates = append(candidates, name)
	}
	suggestedRoot := suggestedFallbackRoot(g, state)

	var plan []PlannedEdge
	for _, orphan := range g.Orphaned {
		suggestions, err := Discover(ctx, git, orphan, candidates)
		if err != nil {
			return nil, err
		}
		if len(suggestions) > 0 {
			best := suggestions[0]
			plan = append(plan, PlannedEdge{Child: best.Child, Parent: best.Parent, Confidence: best.Confidence, Reason: best.Reason})
			continue
		}
		if suggestedRoot == "" {
			return nil, fmt.Errorf("no adoption signal for %s and no root to fall back to", orphan)
		}
		plan = append(plan, PlannedEdge{Child: orphan, Parent: suggestedRoot, Reason: "no discovery signal, fell back to suggested root", Confidence: 0})
	}
	return plan, nil
}

func suggestedFallbackRoot(g *graph.Graph, state *store.RepoState) string {
	if defaultRoot := store.GetDefaultRoot(state); defaultRoot != "" {
		return defaultRoot
	}
	roots := store.GetRootBranches(state)
	if len(roots) > 0 {
		return roots[0].Branch
	}
	return ""
}

// Apply inserts every edge in plan into state via store.AddDependency. If
// any edge is rejected (cycle or duplicate), every edge already applied in
// this call is rolled back and the rejection error is returned.
func Apply(state *store.RepoState, plan []PlannedEdge) error {
	applied := make([]PlannedEdge, 0, len(plan))
	for _, edge := range plan {
		if err := store.AddDependency(state, edge.Child, edge.Parent); err != nil {
			for _, done := range applied {
				store.RemoveDependency(state, done.Child, done.Parent)
			}
			return fmt.Errorf("adopting %s -> %s: %w", edge.Child, edge.Parent, err)
		}
		applied = append(applied, edge)
	}
	return nil
}
