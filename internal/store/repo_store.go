package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const stateDirName = ".twig"
const stateFileName = "state.json"

// RepoStore manages the per-repository state.json file.
type RepoStore struct {
	workdir string
	backing *jsonStore[RepoState]
	// Warnings accumulates non-fatal issues encountered on the last Load
	// (duplicate or self edges dropped, parse failures softened to defaults).
	Warnings []string
}

// NewRepoStore opens the state store rooted at <workdir>/.twig/state.json.
func NewRepoStore(workdir string) *RepoStore {
	dir := filepath.Join(workdir, stateDirName)
	return &RepoStore{
		workdir: workdir,
		backing: newJSONStore[RepoState](dir, stateFileName, true),
	}
}

// Load reads state.json, dropping invalid entries with a warning rather
// than failing the command. A missing file returns an empty state without
// creating one.
func (s *RepoStore) Load() (*RepoState, error) {
	s.Warnings = nil
	raw, err := s.backing.Load()
	if err != nil {
		var ioErr *ErrStateIO
		if errors.As(err, &ioErr) {
			return nil, err
		}
		// Parse failure: soften to a warning and a default document.
		s.Warnings = append(s.Warnings, fmt.Sprintf("failed to parse %s: %v (using empty state)", s.backing.Path(), err))
		return NewRepoState(), nil
	}
	if raw.Branches == nil {
		raw.Branches = make(map[string]BranchMetadata)
	}
	state := &raw
	s.sanitize(state)
	return state, nil
}

// sanitize drops self-edges, duplicate edges, and edges that would close a
// cycle, recording a warning for each.
func (s *RepoStore) sanitize(state *RepoState) {
	seen := make(map[DependencyEdge]bool, len(state.Dependencies))
	kept := make([]DependencyEdge, 0, len(state.Dependencies))
	graph := newEdgeIndex()
	for _, e := range state.Dependencies {
		if e.Child == e.Parent {
			s.Warnings = append(s.Warnings, fmt.Sprintf("dropped self-dependency %s -> %s on load", e.Child, e.Parent))
			continue
		}
		if seen[e] {
			s.Warnings = append(s.Warnings, fmt.Sprintf("dropped duplicate dependency %s -> %s on load", e.Child, e.Parent))
			continue
		}
		if graph.wouldCycle(e.Child, e.Parent) {
			s.Warnings = append(s.Warnings, fmt.Sprintf("dropped cyclic dependency %s -> %s on load", e.Child, e.Parent))
			continue
		}
		seen[e] = true
		graph.add(e.Child, e.Parent)
		kept = append(kept, e)
	}
	state.Dependencies = kept
}

// Save writes state to .twig/state.json atomically, creating .twig/ on
// demand.
func (s *RepoStore) Save(state *RepoState) error {
	return s.backing.Save(*state)
}

// Path returns the on-disk path of the state file.
func (s *RepoStore) Path() string {
	return s.backing.Path()
}

// StateDirExists reports whether <workdir>/.twig exists.
func StateDirExists(workdir string) bool {
	_, err := os.Stat(filepath.Join(workdir, stateDirName))
	return err == nil
}
