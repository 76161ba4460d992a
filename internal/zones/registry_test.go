package zones

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Microsoft/tzdb/internal/backend"
	"github.com/Microsoft/tzdb/internal/backendtest"
)

func TestBuildPartitionsCorrectedAliases(t *testing.T) {
	be := backendtest.NewPopulated()
	// ICU-style view: the pre-rename identifier is enumerated as
	// canonical, the renamed one is absent.
	be.Canonical = []string{"Asia/Calcutta", "Australia/Sydney", "Etc/UTC"}

	r, err := Build(be, DefaultCorrections())
	if err != nil {
		t.Fatal(err)
	}

	wantZones := []string{"Asia/Kolkata", "Australia/Sydney", "Etc/UTC"}
	if diff := cmp.Diff(wantZones, r.Zones()); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}
	wantLinks := []Link{{Alias: "Asia/Calcutta", Target: "Asia/Kolkata"}}
	if diff := cmp.Diff(wantLinks, r.Links()); diff != "" {
		t.Fatalf("links mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFollowsLinks(t *testing.T) {
	be := backendtest.NewPopulated()
	be.Canonical = []string{"Asia/Calcutta", "Etc/UTC"}
	r, err := Build(be, DefaultCorrections())
	if err != nil {
		t.Fatal(err)
	}

	if name, ok := r.Resolve("Asia/Kolkata"); !ok || name != "Asia/Kolkata" {
		t.Fatalf("zone lookup failed: %q, %v", name, ok)
	}
	if name, ok := r.Resolve("Asia/Calcutta"); !ok || name != "Asia/Kolkata" {
		t.Fatalf("link lookup failed: %q, %v", name, ok)
	}
	// Resolution is idempotent: resolving a resolved name is a no-op.
	first, _ := r.Resolve("Asia/Calcutta")
	second, ok := r.Resolve(first)
	if !ok || second != first {
		t.Fatalf("resolution not idempotent: %q -> %q", first, second)
	}
	if _, ok := r.Resolve("Atlantis/Central"); ok {
		t.Fatal("unknown name should not resolve")
	}
	// Matching is exact and case-sensitive.
	if _, ok := r.Resolve("etc/utc"); ok {
		t.Fatal("lookup should be case-sensitive")
	}
}

func TestBuildFailsAtomically(t *testing.T) {
	be := backendtest.NewPopulated()
	be.EnumerateErr = backend.ErrUnavailable

	if _, err := Build(be, DefaultCorrections()); !errors.Is(err, backend.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCorrectionsMerge(t *testing.T) {
	doc := `
corrections:
  - alias: Example/Old
    target: Example/New
`
	c := DefaultCorrections()
	if err := c.Merge(strings.NewReader(doc)); err != nil {
		t.Fatal(err)
	}
	if target, ok := c.Target("Example/Old"); !ok || target != "Example/New" {
		t.Fatalf("merged entry missing: %q, %v", target, ok)
	}
	// Built-ins survive a merge.
	if target, ok := c.Target("Europe/Kiev"); !ok || target != "Europe/Kyiv" {
		t.Fatalf("built-in entry lost: %q, %v", target, ok)
	}
}

func TestCorrectionsMergeRejectsIncompleteEntry(t *testing.T) {
	doc := `
corrections:
  - alias: Example/Old
`
	c := DefaultCorrections()
	if err := c.Merge(strings.NewReader(doc)); err == nil {
		t.Fatal("expected an error for an entry without a target")
	}
}
