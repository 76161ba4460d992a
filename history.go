package tzdb

import (
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/Microsoft/tzdb/internal/backend"
	"github.com/Microsoft/tzdb/internal/icu"
	"github.com/Microsoft/tzdb/internal/leapsec"
	"github.com/Microsoft/tzdb/internal/logfields"
	"github.com/Microsoft/tzdb/internal/resolve"
	"github.com/Microsoft/tzdb/internal/zones"
)

// History owns the ordered sequence of snapshots, most recent first.
// Reload is copy-on-write: a new snapshot is built completely and
// then published with a single atomic store, so readers observe
// either the old snapshot or the new one, never a partial build.
type History struct {
	acquire func() (backend.Backend, error)
	leap    leapsec.Source
	corr    *zones.Corrections

	head atomic.Pointer[Snapshot]

	mu   sync.Mutex // guards list
	list []*Snapshot

	reloads singleflight.Group
}

// Option adjusts a History at construction, primarily to inject test
// collaborators in place of the platform ones.
type Option func(*History)

// WithBackend bypasses the ICU binding and serves every query from
// be.
func WithBackend(be Backend) Option {
	return func(h *History) {
		h.acquire = func() (Backend, error) { return be, nil }
	}
}

// WithLeapSource replaces the platform leap-second source.
func WithLeapSource(src LeapSource) Option {
	return func(h *History) { h.leap = src }
}

// WithCorrections replaces the built-in alias correction table.
func WithCorrections(c *Corrections) Option {
	return func(h *History) { h.corr = c }
}

// NewHistory returns an empty History backed by the platform rule
// provider; the first snapshot is built on first use.
func NewHistory(opts ...Option) *History {
	h := &History{
		acquire: icu.Acquire,
		leap:    leapsec.Default(),
		corr:    zones.DefaultCorrections(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Current returns the most recent snapshot, building the first one if
// none exists yet. A failed build is not cached; the next call tries
// again (a missing backend is still reported immediately, since the
// binding caches that condition itself).
func (h *History) Current() (*Snapshot, error) {
	if s := h.head.Load(); s != nil {
		return s, nil
	}
	return h.Reload()
}

// Reload builds a new snapshot from the backend and publishes it.
// Concurrent calls are collapsed into one build. Existing snapshots
// and the zone handles obtained from them remain valid.
func (h *History) Reload() (*Snapshot, error) {
	s, err, _ := h.reloads.Do("reload", func() (interface{}, error) {
		return h.rebuild()
	})
	if err != nil {
		return nil, err
	}
	return s.(*Snapshot), nil
}

// Snapshots returns the snapshot sequence, most recent first.
func (h *History) Snapshots() []*Snapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]*Snapshot, len(h.list))
	copy(out, h.list)
	return out
}

// AllZoneIDs reports the backend's full identifier list, aliases
// included. This is a diagnostic view; it bypasses the registry and
// its corrections.
func (h *History) AllZoneIDs() ([]string, error) {
	be, err := h.acquire()
	if err != nil {
		return nil, err
	}
	return be.EnumerateZoneIDs(backend.ScopeAll)
}

func (h *History) rebuild() (*Snapshot, error) {
	be, err := h.acquire()
	if err != nil {
		return nil, err
	}

	reg, err := zones.Build(be, h.corr)
	if err != nil {
		return nil, err
	}

	currentName, err := be.DefaultZoneID()
	if err != nil {
		return nil, err
	}

	version, err := be.TZDataVersion()
	if err != nil || version == "" {
		version = "unknown"
	}

	prev := h.head.Load()
	leaps, err := h.mergeLeapSeconds(prev)
	if err != nil {
		return nil, err
	}

	res := resolve.New(be)
	s := &Snapshot{
		version:     version,
		byName:      make(map[string]*Zone, len(reg.Zones())),
		links:       reg.Links(),
		linkByAlias: make(map[string]string, len(reg.Links())),
		leaps:       leaps,
		currentName: currentName,
	}
	for _, name := range reg.Zones() {
		z := &Zone{name: name, res: res}
		s.zones = append(s.zones, z)
		s.byName[name] = z
	}
	for _, l := range s.links {
		s.linkByAlias[l.Alias] = l.Target
	}

	h.mu.Lock()
	h.list = append([]*Snapshot{s}, h.list...)
	h.head.Store(s)
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		logfields.Version:     s.version,
		logfields.Zones:       len(s.zones),
		logfields.Links:       len(s.links),
		logfields.LeapSeconds: len(s.leaps),
	}).Debug("time-zone snapshot built")
	return s, nil
}

// mergeLeapSeconds carries the previous snapshot's table forward and
// appends only entries the source reports as new.
func (h *History) mergeLeapSeconds(prev *Snapshot) ([]LeapSecond, error) {
	var known []LeapSecond
	if prev != nil {
		known = prev.leaps
	}

	total, entries, err := h.leap.FetchNew(len(known))
	if err != nil {
		return nil, err
	}
	if total <= len(known) || entries == nil {
		return known, nil
	}
	// The source returns the full current table; keep only the tail
	// beyond what the previous snapshot already held.
	merged := make([]LeapSecond, 0, total)
	merged = append(merged, known...)
	for _, e := range entries[len(known):] {
		merged = append(merged, LeapSecond{At: e.At(), Negative: e.Negative})
	}
	return merged, nil
}
