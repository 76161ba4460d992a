// Package backendtest provides a deterministic in-memory rule
// provider so that resolution logic can be tested without any
// platform component.
package backendtest

import (
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/Microsoft/tzdb/internal/backend"
	"github.com/Microsoft/tzdb/internal/instant"
)

// Rule is one contiguous offset run of a zone. A rule is in force
// from Start (inclusive) until the next rule's Start (exclusive). The
// first rule of a zone uses instant.MinSys to cover all earlier time.
type Rule struct {
	Start  instant.SysTime
	Offset time.Duration // total UTC offset, daylight included
	Save   time.Duration // daylight portion of Offset, 0 for standard time
}

// Zone is a fixed rule table plus the zone's two display names.
type Zone struct {
	StdName string
	DstName string
	Rules   []Rule
}

// Backend implements backend.Backend over fixed rule tables. The zero
// value is unusable; construct with New.
type Backend struct {
	Zones     map[string]Zone
	Canonical []string          // ids reported for ScopeCanonical; defaults to sorted Zones keys
	Aliases   map[string]string // extra ids reported for ScopeAll
	Default   string
	Version   string

	// Fault injection.
	EnumerateErr error
	DefaultErr   error
	OpenErr      map[string]error
}

func New() *Backend {
	return &Backend{
		Zones:   make(map[string]Zone),
		Aliases: make(map[string]string),
		OpenErr: make(map[string]error),
		Default: "Etc/UTC",
		Version: "2021a",
	}
}

// NewPopulated returns a backend with the UTC, Sydney and Los Angeles
// fixtures installed and Sydney as the default zone.
func NewPopulated() *Backend {
	b := New()
	b.Zones["Etc/UTC"] = UTC()
	b.Zones["Australia/Sydney"] = Sydney()
	b.Zones["America/Los_Angeles"] = LosAngeles()
	b.Default = "Australia/Sydney"
	return b
}

// UTC is a single-rule zone covering all of time.
func UTC() Zone {
	return Zone{
		StdName: "UTC",
		Rules:   []Rule{{Start: instant.MinSys}},
	}
}

// Sydney carries the 2020-2022 southern-hemisphere transitions:
// standard +10:00 (AEST), daylight +11:00 (AEDT), changing at
// 16:00 UTC on the relevant dates.
func Sydney() Zone {
	return Zone{
		StdName: "AEST",
		DstName: "AEDT",
		Rules: []Rule{
			{Start: instant.MinSys, Offset: 10 * time.Hour},
			{Start: at(2020, time.October, 3, 16), Offset: 11 * time.Hour, Save: time.Hour},
			{Start: at(2021, time.April, 3, 16), Offset: 10 * time.Hour},
			{Start: at(2021, time.October, 2, 16), Offset: 11 * time.Hour, Save: time.Hour},
			{Start: at(2022, time.April, 2, 16), Offset: 10 * time.Hour},
		},
	}
}

// LosAngeles carries the 2021-2022 northern-hemisphere transitions:
// standard -08:00 (PST), daylight -07:00 (PDT), changing at 02:00
// local time.
func LosAngeles() Zone {
	return Zone{
		StdName: "PST",
		DstName: "PDT",
		Rules: []Rule{
			{Start: instant.MinSys, Offset: -8 * time.Hour},
			{Start: at(2021, time.March, 14, 10), Offset: -7 * time.Hour, Save: time.Hour},
			{Start: at(2021, time.November, 7, 9), Offset: -8 * time.Hour},
			{Start: at(2022, time.March, 13, 10), Offset: -7 * time.Hour, Save: time.Hour},
		},
	}
}

func at(year int, month time.Month, day, hour int) instant.SysTime {
	return instant.FromTime(time.Date(year, month, day, hour, 0, 0, 0, time.UTC))
}

func (b *Backend) EnumerateZoneIDs(scope backend.Scope) ([]string, error) {
	if b.EnumerateErr != nil {
		return nil, b.EnumerateErr
	}
	var ids []string
	if b.Canonical != nil {
		ids = append(ids, b.Canonical...)
	} else {
		for name := range b.Zones {
			ids = append(ids, name)
		}
	}
	if scope == backend.ScopeAll {
		for alias := range b.Aliases {
			ids = append(ids, alias)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (b *Backend) DefaultZoneID() (string, error) {
	if b.DefaultErr != nil {
		return "", b.DefaultErr
	}
	return b.Default, nil
}

func (b *Backend) TZDataVersion() (string, error) {
	return b.Version, nil
}

func (b *Backend) OpenContext(zoneID string) (backend.Context, error) {
	if err := b.OpenErr[zoneID]; err != nil {
		return nil, err
	}
	name := zoneID
	if target, ok := b.Aliases[name]; ok {
		name = target
	}
	z, ok := b.Zones[name]
	if !ok {
		return nil, errors.Wrapf(backend.ErrQueryFailed, "unknown zone id %q", zoneID)
	}
	return &fakeContext{zone: z}, nil
}

type fakeContext struct {
	zone   Zone
	at     instant.SysTime
	rule   int
	closed bool
}

func (c *fakeContext) SetInstant(t instant.SysTime) error {
	if c.closed {
		return errors.Wrap(backend.ErrQueryFailed, "context is closed")
	}
	c.at = t
	c.rule = 0
	for i, r := range c.zone.Rules {
		if r.Start != instant.MinSys && t < r.Start {
			break
		}
		c.rule = i
	}
	return nil
}

func (c *fakeContext) InDaylightTime() (bool, error) {
	return c.zone.Rules[c.rule].Save != 0, nil
}

func (c *fakeContext) ZoneOffset() (time.Duration, error) {
	r := c.zone.Rules[c.rule]
	return r.Offset - r.Save, nil
}

func (c *fakeContext) DaylightOffset() (time.Duration, error) {
	return c.zone.Rules[c.rule].Save, nil
}

func (c *fakeContext) Transition(dir backend.Direction) (instant.SysTime, bool, error) {
	switch dir {
	case backend.PreviousInclusive:
		start := c.zone.Rules[c.rule].Start
		if start == instant.MinSys {
			return 0, false, nil
		}
		return start, true, nil
	case backend.Next:
		if c.rule+1 >= len(c.zone.Rules) {
			return 0, false, nil
		}
		return c.zone.Rules[c.rule+1].Start, true, nil
	}
	return 0, false, errors.Wrapf(backend.ErrQueryFailed, "unknown direction %d", dir)
}

func (c *fakeContext) DisplayName(v backend.Variant) (string, error) {
	if v == backend.Daylight {
		return c.zone.DstName, nil
	}
	return c.zone.StdName, nil
}

func (c *fakeContext) Close() error {
	c.closed = true
	return nil
}
