// Package backend defines the capability contract for the platform
// time-zone rule provider and the process-wide binding lifecycle that
// loads it.
package backend

import (
	"time"

	"github.com/Microsoft/tzdb/internal/instant"
)

// Scope selects which zone identifiers an enumeration yields.
type Scope int

const (
	// ScopeCanonical yields only identifiers the backend treats as
	// primary rule sets.
	ScopeCanonical Scope = iota
	// ScopeAll yields every identifier the backend knows, aliases
	// included.
	ScopeAll
)

// Direction selects which transition a Context query reports,
// relative to the context's current instant.
type Direction int

const (
	// PreviousInclusive reports the transition at or before the
	// current instant.
	PreviousInclusive Direction = iota
	// Next reports the transition strictly after the current instant.
	Next
)

// Variant selects the standard-time or daylight-time display name.
type Variant int

const (
	Standard Variant = iota
	Daylight
)

// Backend is the raw calendar capability surface of the platform rule
// provider. Implementations are safe for concurrent use; Contexts are
// not and must be confined to one query.
type Backend interface {
	// EnumerateZoneIDs returns the finite identifier list for scope.
	EnumerateZoneIDs(scope Scope) ([]string, error)

	// DefaultZoneID reports the identifier of the system's current
	// zone.
	DefaultZoneID() (string, error)

	// TZDataVersion reports the version of the rule data the backend
	// carries, e.g. "2021a".
	TZDataVersion() (string, error)

	// OpenContext opens a calendar context for the given zone
	// identifier. The caller must Close it.
	OpenContext(zoneID string) (Context, error)
}

// Context is a positioned calendar query handle for a single zone.
type Context interface {
	// SetInstant positions the context at a system instant. Sentinel
	// instants must not be passed.
	SetInstant(t instant.SysTime) error

	// InDaylightTime reports whether daylight time is in effect at
	// the current instant.
	InDaylightTime() (bool, error)

	// ZoneOffset reports the zone's standard UTC offset at the
	// current instant, excluding any daylight adjustment.
	ZoneOffset() (time.Duration, error)

	// DaylightOffset reports the daylight adjustment at the current
	// instant.
	DaylightOffset() (time.Duration, error)

	// Transition reports the transition in the given direction, or
	// ok=false if no such transition exists.
	Transition(dir Direction) (t instant.SysTime, ok bool, err error)

	// DisplayName renders the short display name for the given
	// variant.
	DisplayName(v Variant) (string, error)

	Close() error
}
