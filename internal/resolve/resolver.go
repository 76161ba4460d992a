// Package resolve turns raw backend calendar queries into rule
// intervals and classifies local times that fall in a transition gap
// or overlap.
package resolve

import (
	stderrors "errors"
	"time"

	"github.com/go4org/hashtriemap"
	"github.com/pkg/errors"

	"github.com/Microsoft/tzdb/internal/backend"
	"github.com/Microsoft/tzdb/internal/instant"
)

// SysInfo describes the single rule in force for the half-open
// interval [Begin, End) of a zone's UTC timeline.
type SysInfo struct {
	Begin  instant.SysTime
	End    instant.SysTime
	Offset time.Duration // total UTC offset, daylight included
	Save   time.Duration // daylight portion of Offset, 0 for standard time
	Abbrev string
}

// Contains reports whether t falls inside the rule's interval.
func (si SysInfo) Contains(t instant.SysTime) bool {
	return si.Begin <= t && t < si.End
}

// LocalResult classifies a civil-time query.
type LocalResult int

const (
	// Unique: exactly one system instant has this civil time.
	Unique LocalResult = iota
	// Ambiguous: clocks moved back over this civil time; two system
	// instants map to it.
	Ambiguous
	// Nonexistent: clocks moved forward over this civil time; no
	// system instant maps to it.
	Nonexistent
)

func (r LocalResult) String() string {
	switch r {
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	case Nonexistent:
		return "nonexistent"
	}
	return "invalid"
}

// LocalInfo is the answer to a civil-time query. Second is nil iff
// Result is Unique. For Ambiguous, First and Second are the earlier
// and later candidate rules. For Nonexistent, First is the rule
// ending at the gap and Second the rule beginning after it.
type LocalInfo struct {
	Result LocalResult
	First  SysInfo
	Second *SysInfo
}

// Choose selects a candidate when converting an ambiguous civil time.
type Choose int

const (
	ChooseEarliest Choose = iota
	ChooseLatest
)

var (
	// ErrAmbiguous is reported by strict conversion when the civil
	// time maps to two system instants.
	ErrAmbiguous = stderrors.New("local time is ambiguous")

	// ErrNonexistent is reported by strict conversion when the civil
	// time maps to no system instant.
	ErrNonexistent = stderrors.New("local time does not exist")
)

// Resolver answers per-instant queries for zones by name. It is safe
// for concurrent use; every query confines its backend context to the
// calling goroutine.
type Resolver struct {
	be backend.Backend

	// Last resolved interval per zone. Most callers query clustered
	// instants, so a hit avoids the whole backend round-trip.
	cache hashtriemap.HashTrieMap[string, *SysInfo]
}

func New(be backend.Backend) *Resolver {
	return &Resolver{be: be}
}

// SysInfoAt resolves the rule in force for zone at the system
// instant t.
func (r *Resolver) SysInfoAt(zone string, t instant.SysTime) (SysInfo, error) {
	if si, ok := r.cache.Load(zone); ok && si.Contains(t) {
		return *si, nil
	}
	si, err := r.querySysInfo(zone, t)
	if err != nil {
		return SysInfo{}, err
	}
	r.cache.Store(zone, &si)
	return si, nil
}

func (r *Resolver) querySysInfo(zone string, t instant.SysTime) (SysInfo, error) {
	ctx, err := r.be.OpenContext(zone)
	if err != nil {
		return SysInfo{}, errors.Wrapf(err, "opening calendar context for %q", zone)
	}
	defer ctx.Close()

	if err := ctx.SetInstant(t); err != nil {
		return SysInfo{}, err
	}

	dst, err := ctx.InDaylightTime()
	if err != nil {
		return SysInfo{}, err
	}
	offset, err := ctx.ZoneOffset()
	if err != nil {
		return SysInfo{}, err
	}
	var save time.Duration
	if dst {
		if save, err = ctx.DaylightOffset(); err != nil {
			return SysInfo{}, err
		}
		offset += save
	}

	si := SysInfo{Begin: instant.MinSys, End: instant.MaxSys, Offset: offset, Save: save}

	if tr, ok, err := ctx.Transition(backend.PreviousInclusive); err != nil {
		return SysInfo{}, err
	} else if ok {
		si.Begin = tr
	}
	if tr, ok, err := ctx.Transition(backend.Next); err != nil {
		return SysInfo{}, err
	} else if ok {
		si.End = tr
	}

	variant := backend.Standard
	if save != 0 {
		variant = backend.Daylight
	}
	if si.Abbrev, err = ctx.DisplayName(variant); err != nil {
		return SysInfo{}, err
	}
	return si, nil
}

// LocalInfoAt classifies the civil instant l in zone. A civil time is
// only affected by a transition within one day of it, so at most one
// extra rule is consulted.
func (r *Resolver) LocalInfoAt(zone string, l instant.LocalTime) (LocalInfo, error) {
	first, err := r.SysInfoAt(zone, l.AsSys())
	if err != nil {
		return LocalInfo{}, err
	}
	currSys := l.ToSys(first.Offset)

	switch {
	case first.Begin != instant.MinSys && currSys < first.Begin+instant.Day:
		// Within a day of the current rule's start; the previous rule
		// may also claim (or disclaim) this civil time.
		prev, err := r.SysInfoAt(zone, first.Begin-1)
		if err != nil {
			return LocalInfo{}, err
		}
		prevSys := l.ToSys(prev.Offset)
		boundary := first.Begin
		switch {
		case currSys >= boundary && prevSys < boundary:
			return LocalInfo{Result: Ambiguous, First: prev, Second: &first}, nil
		case currSys >= boundary:
			return LocalInfo{Result: Unique, First: first}, nil
		case prevSys >= boundary:
			return LocalInfo{Result: Nonexistent, First: prev, Second: &first}, nil
		default:
			return LocalInfo{Result: Unique, First: prev}, nil
		}

	case first.End != instant.MaxSys && currSys > first.End-instant.Day:
		// Within a day of the current rule's end; the next rule may
		// also claim (or disclaim) this civil time.
		next, err := r.SysInfoAt(zone, first.End+1)
		if err != nil {
			return LocalInfo{}, err
		}
		nextSys := l.ToSys(next.Offset)
		boundary := first.End
		switch {
		case currSys < boundary && nextSys >= boundary:
			return LocalInfo{Result: Ambiguous, First: first, Second: &next}, nil
		case currSys < boundary:
			return LocalInfo{Result: Unique, First: first}, nil
		case nextSys < boundary:
			return LocalInfo{Result: Nonexistent, First: first, Second: &next}, nil
		default:
			return LocalInfo{Result: Unique, First: next}, nil
		}
	}

	return LocalInfo{Result: Unique, First: first}, nil
}

// ToSys converts a civil instant to a system instant. Ambiguous times
// follow the choose policy; nonexistent times normalize forward to
// the instant the gap closes under either policy.
func (r *Resolver) ToSys(zone string, l instant.LocalTime, c Choose) (instant.SysTime, error) {
	li, err := r.LocalInfoAt(zone, l)
	if err != nil {
		return 0, err
	}
	switch li.Result {
	case Ambiguous:
		if c == ChooseLatest {
			return l.ToSys(li.Second.Offset), nil
		}
		return l.ToSys(li.First.Offset), nil
	case Nonexistent:
		return li.First.End, nil
	}
	return l.ToSys(li.First.Offset), nil
}

// ToSysStrict is ToSys for callers that want a single unambiguous
// instant or a reportable failure.
func (r *Resolver) ToSysStrict(zone string, l instant.LocalTime) (instant.SysTime, error) {
	li, err := r.LocalInfoAt(zone, l)
	if err != nil {
		return 0, err
	}
	switch li.Result {
	case Ambiguous:
		return 0, errors.Wrapf(ErrAmbiguous, "%s in %s", l, zone)
	case Nonexistent:
		return 0, errors.Wrapf(ErrNonexistent, "%s in %s", l, zone)
	}
	return l.ToSys(li.First.Offset), nil
}

// ToLocal converts a system instant to the zone's civil time. No
// ambiguity is possible in this direction.
func (r *Resolver) ToLocal(zone string, t instant.SysTime) (instant.LocalTime, error) {
	si, err := r.SysInfoAt(zone, t)
	if err != nil {
		return 0, err
	}
	return t.ToLocal(si.Offset), nil
}
