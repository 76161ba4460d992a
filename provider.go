package tzdb

import (
	"github.com/Microsoft/tzdb/internal/backend"
	"github.com/Microsoft/tzdb/internal/leapsec"
)

// Backend is the raw capability surface of a time-zone rule provider.
// The production implementation binds the platform's ICU library; a
// custom one can be injected with WithBackend.
type Backend = backend.Backend

// BackendContext is a positioned calendar query handle for a single
// zone. Contexts are not safe for concurrent use.
type BackendContext = backend.Context

// Scope selects which zone identifiers an enumeration yields.
type Scope = backend.Scope

const (
	ScopeCanonical = backend.ScopeCanonical
	ScopeAll       = backend.ScopeAll
)

// Direction selects which transition a context query reports.
type Direction = backend.Direction

const (
	PreviousInclusive = backend.PreviousInclusive
	Next              = backend.Next
)

// Variant selects the standard-time or daylight-time display name.
type Variant = backend.Variant

const (
	Standard = backend.Standard
	Daylight = backend.Daylight
)

// LeapSource provides incremental access to the platform leap-second
// table; see WithLeapSource.
type LeapSource = leapsec.Source

// LeapEntry is one raw record of the platform leap-second table.
type LeapEntry = leapsec.Entry
