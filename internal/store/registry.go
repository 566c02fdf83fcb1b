package store

import (
	"encoding/json"
	"path/filepath"
	"sort"
)

// RegistryEntry records one repository twig has been run against.
type RegistryEntry struct {
	Path      string `json:"path"`
	Name      string `json:"name"`
	LastFetch string `json:"last_fetch,omitempty"`
}

// Registry is the global list of known repositories, persisted at
// <data-dir>/registry.json as a bare JSON array (an empty registry is the
// literal `[]`). See internal/cliconfig for the data directory resolution.
type Registry struct {
	Repositories []RegistryEntry
}

// MarshalJSON renders the registry as a bare array.
func (reg Registry) MarshalJSON() ([]byte, error) {
	entries := reg.Repositories
	if entries == nil {
		entries = []RegistryEntry{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON reads a bare array into Repositories.
func (reg *Registry) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &reg.Repositories)
}

// RegistryStore manages the global registry.json file.
type RegistryStore struct {
	backing *jsonStore[Registry]
}

// NewRegistryStore opens the registry rooted at <dataDir>/registry.json.
func NewRegistryStore(dataDir string) *RegistryStore {
	return &RegistryStore{backing: newJSONStore[Registry](dataDir, "registry.json", true)}
}

// Load reads the registry, returning an empty one if absent.
func (s *RegistryStore) Load() (*Registry, error) {
	reg, err := s.backing.Load()
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Save persists the registry atomically.
func (s *RegistryStore) Save(reg *Registry) error {
	return s.backing.Save(*reg)
}

// Record adds or refreshes an entry for the repository at path, deduping
// by canonical (absolute, symlink-resolved) path. lastFetch may be empty.
func (reg *Registry) Record(path, name, lastFetch string) {
	canonical := canonicalPath(path)
	for i, e := range reg.Repositories {
		if canonicalPath(e.Path) == canonical {
			reg.Repositories[i].Name = name
			if lastFetch != "" {
				reg.Repositories[i].LastFetch = lastFetch
			}
			return
		}
	}
	reg.Repositories = append(reg.Repositories, RegistryEntry{Path: path, Name: name, LastFetch: lastFetch})
}

// Entries returns the registered repositories sorted by path for
// deterministic listing.
func (reg *Registry) Entries() []RegistryEntry {
	out := make([]RegistryEntry, len(reg.Repositories))
	copy(out, reg.Repositories)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return filepath.Clean(abs)
}
