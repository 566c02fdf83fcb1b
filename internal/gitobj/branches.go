package gitobj

import (
	"sort"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"
)

// LocalBranches returns the short names of all local branches.
func (r *Repo) LocalBranches() ([]string, error) {
	refs, err := r.repo.Branches()
	if err != nil {
		return nil, err
	}
	var names []string
	if err := refs.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// RemoteBranches returns the short names of remote-tracking branches for
// the given remote (e.g. "origin"), excluding the symbolic HEAD ref.
func (r *Repo) RemoteBranches(remote string) ([]string, error) {
	refs, err := r.repo.References()
	if err != nil {
		return nil, err
	}
	prefix := "refs/remotes/" + remote + "/"
	var names []string
	if err := refs.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().String()
		if strings.HasPrefix(name, prefix) {
			short := strings.TrimPrefix(name, prefix)
			if short != "HEAD" {
				names = append(names, short)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}
