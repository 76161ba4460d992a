// Package tzdb resolves calendar and time-zone queries against the
// platform's time-zone rule provider.
//
// Rule data is not parsed or shipped by this module. The platform
// backend (ICU on Windows) answers raw per-instant queries; this
// package adds name resolution over the zone/link partition,
// transition resolution with gap/overlap classification of local
// times, and immutable snapshot management with atomic reload.
//
// The entry point is a History:
//
//	h := tzdb.NewHistory()
//	snap, err := h.Current()
//	zone, ok := snap.LocateZone("Australia/Sydney")
//	info, err := zone.Info(tzdb.FromTime(time.Now()))
//
// Snapshots are immutable: a reload builds and publishes a new
// snapshot without invalidating zones obtained from older ones.
package tzdb

import (
	"time"

	"github.com/Microsoft/tzdb/internal/instant"
)

// SysTime is an instant on the UTC timeline, in milliseconds since
// the Unix epoch.
type SysTime = instant.SysTime

// LocalTime is an instant on a zone's civil timeline. It carries no
// offset information.
type LocalTime = instant.LocalTime

// Sentinels meaning "no transition in this direction".
const (
	MinSys = instant.MinSys
	MaxSys = instant.MaxSys

	MinLocal = instant.MinLocal
	MaxLocal = instant.MaxLocal
)

// FromTime truncates t to the module's millisecond representation.
func FromTime(t time.Time) SysTime {
	return instant.FromTime(t)
}

// FromCivil builds a LocalTime from broken-down civil fields.
func FromCivil(year int, month time.Month, day, hour, min, sec int) LocalTime {
	return instant.FromCivil(year, month, day, hour, min, sec)
}
