package tzdb

import (
	"github.com/Microsoft/tzdb/internal/backend"
	"github.com/Microsoft/tzdb/internal/leapsec"
	"github.com/Microsoft/tzdb/internal/resolve"
	"github.com/Microsoft/tzdb/internal/zones"
)

var (
	// ErrBackendUnavailable: the platform rule provider could not be
	// loaded. Terminal for the process; cached and returned without
	// retrying the load.
	ErrBackendUnavailable = backend.ErrUnavailable

	// ErrBackendQueryFailed: a specific call into the rule provider
	// failed. Recoverable per call; never retried automatically.
	ErrBackendQueryFailed = backend.ErrQueryFailed

	// ErrZoneNotFound: a name resolved to neither a zone nor a link.
	ErrZoneNotFound = zones.ErrZoneNotFound

	// ErrLeapSecondsRead: the platform reports leap-second data that
	// could not be read. Distinct from "no leap seconds".
	ErrLeapSecondsRead = leapsec.ErrRead

	// ErrAmbiguousLocalTime and ErrNonexistentLocalTime are reported
	// only by strict conversion; the query API exposes the same
	// conditions as LocalInfo results instead.
	ErrAmbiguousLocalTime   = resolve.ErrAmbiguous
	ErrNonexistentLocalTime = resolve.ErrNonexistent
)
