// Package instant provides the fixed-point time representation used
// throughout the tzdb module. Instants are signed millisecond counts
// since the Unix epoch, which matches the granularity of the platform
// rule provider without the precision loss of a floating-point date.
package instant

import (
	"math"
	"time"
)

// SysTime is an instant on the UTC timeline.
type SysTime int64

// LocalTime is an instant on a zone's civil timeline. It carries no
// offset information; the same LocalTime can correspond to zero, one
// or two SysTime values depending on the zone's transitions.
type LocalTime int64

// Sentinels meaning "no transition in this direction". Comparisons
// treat them as -inf/+inf.
const (
	MinSys SysTime = math.MinInt64
	MaxSys SysTime = math.MaxInt64

	MinLocal LocalTime = math.MinInt64
	MaxLocal LocalTime = math.MaxInt64
)

// Day bounds the disambiguation window around a transition. No
// real-world rule moves the clock by more than a day, so a local time
// further than this from both neighboring transitions is unaffected
// by them.
const Day = SysTime(24 * time.Hour / time.Millisecond)

// FromTime truncates t to millisecond precision.
func FromTime(t time.Time) SysTime {
	return SysTime(t.UnixMilli())
}

// Time converts t back to the standard library representation. The
// sentinels have no meaningful conversion and must be checked by the
// caller first.
func (t SysTime) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// Add returns t shifted by d. Callers must not shift a sentinel.
func (t SysTime) Add(d time.Duration) SysTime {
	return t + SysTime(d.Milliseconds())
}

// ToLocal applies a zone's total UTC offset to a system instant.
func (t SysTime) ToLocal(offset time.Duration) LocalTime {
	return LocalTime(int64(t) + offset.Milliseconds())
}

// ToSys removes a zone's total UTC offset from a civil instant.
func (t LocalTime) ToSys(offset time.Duration) SysTime {
	return SysTime(int64(t) - offset.Milliseconds())
}

// AsSys reinterprets a civil instant as if it were on the UTC
// timeline. This is the naive first probe of local-time resolution
// and is meaningless on its own.
func (t LocalTime) AsSys() SysTime {
	return SysTime(t)
}

// FromCivil builds a LocalTime from broken-down civil fields, read as
// if the fields were UTC.
func FromCivil(year int, month time.Month, day, hour, min, sec int) LocalTime {
	return LocalTime(time.Date(year, month, day, hour, min, sec, 0, time.UTC).UnixMilli())
}

func (t SysTime) String() string {
	switch t {
	case MinSys:
		return "-inf"
	case MaxSys:
		return "+inf"
	}
	return t.Time().Format(time.RFC3339Nano)
}

func (t LocalTime) String() string {
	switch t {
	case MinLocal:
		return "-inf"
	case MaxLocal:
		return "+inf"
	}
	return time.UnixMilli(int64(t)).UTC().Format("2006-01-02T15:04:05.999999999")
}
