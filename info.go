package tzdb

import (
	"github.com/Microsoft/tzdb/internal/resolve"
	"github.com/Microsoft/tzdb/internal/zones"
)

// SysInfo describes the single rule in force for the half-open
// interval [Begin, End) of a zone's UTC timeline.
type SysInfo = resolve.SysInfo

// LocalInfo is the answer to a civil-time query: whether the civil
// time is unique, ambiguous (clocks moved back over it) or
// nonexistent (clocks moved forward over it), and the rule or rules
// involved.
type LocalInfo = resolve.LocalInfo

// LocalResult classifies a civil-time query.
type LocalResult = resolve.LocalResult

const (
	Unique      = resolve.Unique
	Ambiguous   = resolve.Ambiguous
	Nonexistent = resolve.Nonexistent
)

// Choose selects a candidate when converting an ambiguous civil time.
type Choose = resolve.Choose

const (
	ChooseEarliest = resolve.ChooseEarliest
	ChooseLatest   = resolve.ChooseLatest
)

// Link maps an alias name to the zone owning the rules.
type Link = zones.Link

// LeapSecond is one entry of the platform leap-second table. At is
// the first instant affected; Negative marks a removed second.
type LeapSecond struct {
	At       SysTime
	Negative bool
}
