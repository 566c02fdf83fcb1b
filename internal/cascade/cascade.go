// Package cascade rebases every descendant of a branch onto its parent,
// in dependency order, stopping for user input on a conflict.
package cascade

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/eddieland/twig/internal/gitwire"
	"github.com/eddieland/twig/internal/graph"
)

// Options configures a cascade run.
type Options struct {
	MaxDepth  int  // 0 means unbounded
	Force     bool // rebase even when the child is already up to date
	ForcePush bool // push each rebased branch with --force-with-lease
	Autostash bool // stash pending changes for the duration of the cascade
}

// BranchOutcome is the per-branch result recorded in a Result.
type BranchOutcome int

const (
	OutcomeSuccess BranchOutcome = iota
	OutcomeUpToDate
	OutcomeSkippedDepth
	OutcomeConflictResolved
	OutcomeError
	OutcomeStoppedAt
)

// BranchResult records what happened to one branch during the cascade.
type BranchResult struct {
	Branch   string
	Parent   string
	Outcome  BranchOutcome
	Pushed   bool
	ErrorMsg string
}

// Result summarizes a completed or stopped cascade run.
type Result struct {
	RunID        string   // correlates this run across logs, independent of any branch name
	Order        []string // topological order that was walked
	Branches     []BranchResult
	Stopped      bool   // true if the cascade halted at a conflict (abort)
	StoppedAt    string // branch where it halted, if Stopped
	StashCreated bool
	StashPopWarn string // non-empty if `stash pop` hit a conflict at the end
}

// ConflictResolution is the user's choice when a rebase conflicts.
type ConflictResolution int

const (
	ResolutionContinue ConflictResolution = iota
	ResolutionAbortToOriginal
	ResolutionAbortStayHere
	ResolutionSkip
)

// ConflictPrompter asks the user how to resolve a rebase conflict. It is
// the cascade engine's only dependency on interactive I/O, so engines can
// be tested with a scripted implementation.
type ConflictPrompter interface {
	ResolveConflict(branch, parent string) (ConflictResolution, error)
}

// Engine drives the cascade over a Graph using a gitwire.Git for the
// actual rebase/push/stash subprocess calls.
type Engine struct {
	Git      *gitwire.Git
	Prompter ConflictPrompter
}

// New builds an Engine rooted at workdir.
func New(workdir string, prompter ConflictPrompter) *Engine {
	return &Engine{Git: gitwire.New(workdir), Prompter: prompter}
}

// Run executes a cascade starting at root (exclusive: root itself is never
// rebased, only its descendants), per opts.
func (e *Engine) Run(ctx context.Context, g *graph.Graph, root string, opts Options) (*Result, error) {
	originalBranch := g.CurrentBranch
	order := TopologicalOrder(g, root, opts.MaxDepth)

	for _, branch := range order {
		if _, err := g.RequireSingleParent(branch); err != nil {
			return nil, err
		}
	}

	result := &Result{RunID: uuid.NewString(), Order: order}

	if opts.Autostash {
		stashed, err := e.Git.StashPush(ctx, "twig cascade autostash")
		if err != nil {
			return nil, err
		}
		result.StashCreated = stashed
	}

	for _, branch := range order {
		node := g.Nodes[branch]
		parent := node.PrimaryParent

		if opts.MaxDepth > 0 && depthOf(g, root, branch) > opts.MaxDepth {
			result.Branches = append(result.Branches, BranchResult{Branch: branch, Parent: parent, Outcome: OutcomeSkippedDepth})
			continue
		}

		if !opts.Force && node.CountsKnown && node.Behind == 0 {
			result.Branches = append(result.Branches, BranchResult{Branch: branch, Parent: parent, Outcome: OutcomeUpToDate})
			continue
		}

		if err := e.Git.CheckoutBranch(ctx, branch); err != nil {
			result.Branches = append(result.Branches, BranchResult{Branch: branch, Parent: parent, Outcome: OutcomeError, ErrorMsg: err.Error()})
			result.Stopped, result.StoppedAt = true, branch
			break
		}

		outcome, _, err := e.Git.Rebase(ctx, parent, false)
		if err != nil {
			result.Branches = append(result.Branches, BranchResult{Branch: branch, Parent: parent, Outcome: OutcomeError, ErrorMsg: err.Error()})
			result.Stopped, result.StoppedAt = true, branch
			break
		}

		switch outcome {
		case gitwire.RebaseUpToDate:
			result.Branches = append(result.Branches, BranchResult{Branch: branch, Parent: parent, Outcome: OutcomeUpToDate})
			continue
		case gitwire.RebaseError:
			result.Branches = append(result.Branches, BranchResult{Branch: branch, Parent: parent, Outcome: OutcomeError})
			result.Stopped, result.StoppedAt = true, branch
			goto done
		case gitwire.RebaseConflict:
			resolved, stop := e.resolveConflict(ctx, branch, parent, originalBranch)
			if stop || !resolved {
				result.Stopped, result.StoppedAt = true, branch
				goto done
			}
			result.Branches = append(result.Branches, BranchResult{Branch: branch, Parent: parent, Outcome: OutcomeConflictResolved})
		case gitwire.RebaseSuccess:
			result.Branches = append(result.Branches, BranchResult{Branch: branch, Parent: parent, Outcome: OutcomeSuccess})
		}

		if opts.ForcePush {
			e.pushIfConfigured(ctx, branch, result)
		}
	}

done:
	if opts.Autostash && result.StashCreated {
		if err := e.Git.StashPop(ctx); err != nil {
			result.StashPopWarn = err.Error()
		}
	}
	if originalBranch != "" && !result.Stopped {
		_ = e.Git.CheckoutBranch(ctx, originalBranch)
	}
	return result, nil
}

func (e *Engine) pushIfConfigured(ctx context.Context, branch string, result *Result) {
	remote := e.Git.RemoteOf(ctx, branch)
	if remote == "" {
		return
	}
	pushResult, err := e.Git.PushForceWithLease(ctx, remote, branch)
	if err == nil && pushResult.Success {
		for i := range result.Branches {
			if result.Branches[i].Branch == branch {
				result.Branches[i].Pushed = true
			}
		}
	}
}

// resolveConflict loops prompting the user until the rebase at branch
// either completes or the user aborts. Returns (resolved, hardStop).
func (e *Engine) resolveConflict(ctx context.Context, branch, parent, originalBranch string) (bool, bool) {
	for {
		resolution, err := e.Prompter.ResolveConflict(branch, parent)
		if err != nil {
			return false, true
		}
		switch resolution {
		case ResolutionAbortToOriginal:
			_ = e.Git.RebaseAbort(ctx)
			if originalBranch != "" {
				_ = e.Git.CheckoutBranch(ctx, originalBranch)
			}
			return false, true
		case ResolutionAbortStayHere:
			_ = e.Git.RebaseAbort(ctx)
			return false, true
		case ResolutionSkip:
			outcome, err := e.Git.RebaseSkip(ctx)
			if err != nil {
				return false, true
			}
			switch outcome {
			case gitwire.RebaseContinueCompleted:
				return true, false
			case gitwire.RebaseContinueMoreConflicts:
				continue
			default:
				return false, true
			}
		case ResolutionContinue:
			outcome, err := e.Git.RebaseContinue(ctx)
			if err != nil {
				return false, true
			}
			switch outcome {
			case gitwire.RebaseContinueCompleted:
				return true, false
			case gitwire.RebaseContinueMoreConflicts:
				continue
			default:
				return false, true
			}
		}
	}
}

// TopologicalOrder returns root's descendants in dependency order (a
// parent always precedes its children), bounded by maxDepth levels below
// root when maxDepth > 0. Siblings are ordered lexicographically by
// branch name for determinism.
func TopologicalOrder(g *graph.Graph, root string, maxDepth int) []string {
	var order []string
	var walk func(branch string, depth int)
	walk = func(branch string, depth int) {
		if maxDepth > 0 && depth >= maxDepth {
			return
		}
		node, ok := g.Nodes[branch]
		if !ok {
			return
		}
		children := append([]string(nil), node.Children...)
		sort.Strings(children)
		for _, child := range children {
			order = append(order, child)
			walk(child, depth+1)
		}
	}
	walk(root, 0)
	return order
}

func depthOf(g *graph.Graph, root, branch string) int {
	depth := 0
	current := branch
	for current != root && current != "" {
		node, ok := g.Nodes[current]
		if !ok || node.PrimaryParent == "" {
			break
		}
		current = node.PrimaryParent
		depth++
	}
	return depth
}
