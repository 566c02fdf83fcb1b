package store

import (
	"testing"

	"github.com/eddieland/twig/internal/testutil"
)

func TestRegistryRecordDedupesByCanonicalPath(t *testing.T) {
	reg := &Registry{}
	reg.Record("/repos/twig", "twig", "")
	reg.Record("/repos/twig", "twig", "2026-07-29T00:00:00Z")
	testutil.AssertEqual(t, len(reg.Repositories), 1, "recording the same path twice updates in place")
	testutil.AssertEqual(t, reg.Repositories[0].LastFetch, "2026-07-29T00:00:00Z", "last_fetch refreshed")
}

func TestRegistrySaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	rs := NewRegistryStore(dir)

	reg, err := rs.Load()
	testutil.AssertNoError(t, err, "load empty registry")
	reg.Record("/repos/a", "a", "")
	reg.Record("/repos/b", "b", "")
	testutil.AssertNoError(t, rs.Save(reg), "save")

	reloaded, err := rs.Load()
	testutil.AssertNoError(t, err, "reload")
	entries := reloaded.Entries()
	testutil.AssertEqual(t, len(entries), 2, "both repos persisted")
	testutil.AssertEqual(t, entries[0].Path, "/repos/a", "sorted by path")
}
