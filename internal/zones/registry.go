// Package zones builds the zone/link partition for one snapshot from
// a backend enumeration.
package zones

import (
	stderrors "errors"
	"sort"

	"github.com/pkg/errors"

	"github.com/Microsoft/tzdb/internal/backend"
)

// ErrZoneNotFound is returned when a name resolves to neither a zone
// nor a link.
var ErrZoneNotFound = stderrors.New("time zone not found")

// Link maps an alias name to the zone owning the rules.
type Link struct {
	Alias  string
	Target string
}

// Registry is the immutable name-resolution view of one snapshot.
// Every enumerated identifier is exactly one of a zone or a link
// alias, never both.
type Registry struct {
	zones       []string
	links       []Link
	zoneSet     map[string]struct{}
	linkByAlias map[string]string
}

// Build enumerates the backend's canonical zone identifiers and
// partitions them into zones and links, applying the correction table
// for identifiers the backend misclassifies as canonical. A failure
// anywhere aborts the whole build; no partial registry is returned.
func Build(be backend.Backend, corr *Corrections) (*Registry, error) {
	ids, err := be.EnumerateZoneIDs(backend.ScopeCanonical)
	if err != nil {
		return nil, errors.Wrap(err, "enumerating canonical zones")
	}

	r := &Registry{
		zoneSet:     make(map[string]struct{}, len(ids)),
		linkByAlias: make(map[string]string),
	}
	for _, id := range ids {
		if target, ok := corr.Target(id); ok {
			r.linkByAlias[id] = target
			// The backend enumerates the alias instead of the target,
			// so the target must be added as a zone or the link would
			// dangle.
			r.zoneSet[target] = struct{}{}
			continue
		}
		r.zoneSet[id] = struct{}{}
	}

	r.zones = make([]string, 0, len(r.zoneSet))
	for name := range r.zoneSet {
		r.zones = append(r.zones, name)
	}
	sort.Strings(r.zones)

	r.links = make([]Link, 0, len(r.linkByAlias))
	for alias, target := range r.linkByAlias {
		r.links = append(r.links, Link{Alias: alias, Target: target})
	}
	sort.Slice(r.links, func(i, j int) bool { return r.links[i].Alias < r.links[j].Alias })

	return r, nil
}

// Zones returns the canonical zone names in sorted order. The slice
// is shared and must not be modified.
func (r *Registry) Zones() []string { return r.zones }

// Links returns the links sorted by alias. The slice is shared and
// must not be modified.
func (r *Registry) Links() []Link { return r.links }

// Resolve maps a name to its canonical zone name: an exact match
// against zones first, then one hop through links. Lookup is a pure
// in-memory operation; the backend is never consulted.
func (r *Registry) Resolve(name string) (string, bool) {
	if _, ok := r.zoneSet[name]; ok {
		return name, true
	}
	if target, ok := r.linkByAlias[name]; ok {
		if _, ok := r.zoneSet[target]; ok {
			return target, true
		}
	}
	return "", false
}
