package tzdb

import "github.com/Microsoft/tzdb/internal/resolve"

// Zone is a handle to one canonical time zone within a snapshot.
// Zones are immutable; repeated lookups of the same name within one
// snapshot return the same handle. Across snapshots zone identity is
// the name, not the handle.
type Zone struct {
	name string
	res  *resolve.Resolver
}

// Name returns the canonical zone name.
func (z *Zone) Name() string {
	return z.name
}

// Info resolves the rule in force at the system instant t.
func (z *Zone) Info(t SysTime) (SysInfo, error) {
	return z.res.SysInfoAt(z.name, t)
}

// LocalInfo classifies the civil instant l: unique, ambiguous or
// nonexistent, with the rule or rules involved.
func (z *Zone) LocalInfo(l LocalTime) (LocalInfo, error) {
	return z.res.LocalInfoAt(z.name, l)
}

// ToSys converts a civil instant to a system instant. Ambiguous
// civil times follow the choose policy; nonexistent ones normalize
// forward to the instant the gap closes.
func (z *Zone) ToSys(l LocalTime, c Choose) (SysTime, error) {
	return z.res.ToSys(z.name, l, c)
}

// ToSysStrict is ToSys for callers that want a single unambiguous
// instant or an error (ErrAmbiguousLocalTime, ErrNonexistentLocalTime).
func (z *Zone) ToSysStrict(l LocalTime) (SysTime, error) {
	return z.res.ToSysStrict(z.name, l)
}

// ToLocal converts a system instant to the zone's civil time. No
// ambiguity is possible in this direction.
func (z *Zone) ToLocal(t SysTime) (LocalTime, error) {
	return z.res.ToLocal(z.name, t)
}
