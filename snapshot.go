package tzdb

import "github.com/pkg/errors"

// Snapshot is one immutable, fully built view of the time-zone
// database: zones, links, leap seconds and the cached current-zone
// name. Snapshots are never mutated after construction; a holder can
// keep using one across any number of reloads.
type Snapshot struct {
	version     string
	zones       []*Zone
	byName      map[string]*Zone
	links       []Link
	linkByAlias map[string]string
	leaps       []LeapSecond
	currentName string
}

// Version reports the backend's rule-data version, or "unknown" when
// the backend cannot say.
func (s *Snapshot) Version() string {
	return s.version
}

// Zones returns the canonical zones sorted by name.
func (s *Snapshot) Zones() []*Zone {
	out := make([]*Zone, len(s.zones))
	copy(out, s.zones)
	return out
}

// Links returns the links sorted by alias.
func (s *Snapshot) Links() []Link {
	out := make([]Link, len(s.links))
	copy(out, s.links)
	return out
}

// LeapSeconds returns the leap-second table in chronological order.
func (s *Snapshot) LeapSeconds() []LeapSecond {
	out := make([]LeapSecond, len(s.leaps))
	copy(out, s.leaps)
	return out
}

// LocateZone resolves a name to a zone handle: an exact, case
// sensitive match against zones first, then one hop through links.
// The lookup is a pure in-memory operation and is referentially
// stable within the snapshot.
func (s *Snapshot) LocateZone(name string) (*Zone, bool) {
	if z, ok := s.byName[name]; ok {
		return z, true
	}
	if target, ok := s.linkByAlias[name]; ok {
		if z, ok := s.byName[target]; ok {
			return z, true
		}
	}
	return nil, false
}

// CurrentZone resolves the system's default zone through the same
// lookup path as LocateZone.
func (s *Snapshot) CurrentZone() (*Zone, error) {
	z, ok := s.LocateZone(s.currentName)
	if !ok {
		return nil, errors.Wrapf(ErrZoneNotFound, "default zone %q", s.currentName)
	}
	return z, nil
}
