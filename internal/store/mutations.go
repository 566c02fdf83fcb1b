package store

// AddDependency records that child depends on (is rebased onto) parent.
// Rejects a self-edge, an exact duplicate, or an edge that would close a
// cycle in the existing dependency graph.
func AddDependency(state *RepoState, child, parent string) error {
	if child == parent {
		return &ErrSelfDependency{Branch: child}
	}
	for _, e := range state.Dependencies {
		if e.Child == child && e.Parent == parent {
			return &ErrDuplicateDependency{Child: child, Parent: parent}
		}
	}
	idx := buildEdgeIndex(state.Dependencies)
	if idx.wouldCycle(child, parent) {
		return &ErrCycleDetected{Child: child, Parent: parent}
	}
	state.Dependencies = append(state.Dependencies, DependencyEdge{Child: child, Parent: parent})
	return nil
}

// RemoveDependency deletes the (child, parent) edge if present. A no-op if
// it does not exist.
func RemoveDependency(state *RepoState, child, parent string) {
	kept := state.Dependencies[:0]
	for _, e := range state.Dependencies {
		if e.Child == child && e.Parent == parent {
			continue
		}
		kept = append(kept, e)
	}
	state.Dependencies = kept
}

// GetDependencyParents returns all recorded parents of branch, in the
// order they were inserted.
func GetDependencyParents(state *RepoState, branch string) []string {
	var parents []string
	for _, e := range state.Dependencies {
		if e.Child == branch {
			parents = append(parents, e.Parent)
		}
	}
	return parents
}

// GetPrimaryParent returns branch's first recorded parent ("" if none).
// Per the store's multi-parent-tolerant schema, the primary parent is the
// first one inserted; callers requiring single-parent uniqueness should
// check len(GetDependencyParents(...)) > 1 themselves.
func GetPrimaryParent(state *RepoState, branch string) string {
	parents := GetDependencyParents(state, branch)
	if len(parents) == 0 {
		return ""
	}
	return parents[0]
}

// AddRoot records branch as a root, idempotently. When isDefault is true,
// the default flag is cleared on every other root in the same call.
func AddRoot(state *RepoState, branch string, isDefault bool) {
	for i, r := range state.RootBranches {
		if r.Branch == branch {
			state.RootBranches[i].IsDefault = isDefault
			if isDefault {
				clearOtherDefaults(state, branch)
			}
			return
		}
	}
	state.RootBranches = append(state.RootBranches, RootBranch{Branch: branch, IsDefault: isDefault})
	if isDefault {
		clearOtherDefaults(state, branch)
	}
}

func clearOtherDefaults(state *RepoState, keep string) {
	for i, r := range state.RootBranches {
		if r.Branch != keep && r.IsDefault {
			state.RootBranches[i].IsDefault = false
		}
	}
}

// RemoveRoot deletes branch's root-branch record, if present. A no-op if
// branch is not recorded as a root.
func RemoveRoot(state *RepoState, branch string) {
	kept := state.RootBranches[:0]
	for _, r := range state.RootBranches {
		if r.Branch == branch {
			continue
		}
		kept = append(kept, r)
	}
	state.RootBranches = kept
}

// GetDefaultRoot returns the branch flagged is_default, or "" if none.
func GetDefaultRoot(state *RepoState) string {
	for _, r := range state.RootBranches {
		if r.IsDefault {
			return r.Branch
		}
	}
	return ""
}

// GetRootBranches returns root branches in insertion order.
func GetRootBranches(state *RepoState) []RootBranch {
	return state.RootBranches
}

// AddBranchIssue inserts or replaces the BranchMetadata record for
// meta.Branch.
func AddBranchIssue(state *RepoState, meta BranchMetadata) {
	if state.Branches == nil {
		state.Branches = make(map[string]BranchMetadata)
	}
	state.Branches[meta.Branch] = meta
}

// RemoveBranch deletes branch's metadata record, used when a branch is
// tidied or explicitly unlinked.
func RemoveBranch(state *RepoState, branch string) {
	delete(state.Branches, branch)
}
