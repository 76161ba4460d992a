// Package logfields holds the structured log field names used across
// the module, so call sites stay consistent and greppable.
package logfields

const (
	// Identifiers

	Zone    = "zone"
	Alias   = "alias"
	Target  = "target"
	Backend = "backend"

	// Counts and data

	Zones       = "zones"
	Links       = "links"
	LeapSeconds = "leapSeconds"
	Version     = "tzdataVersion"

	// Misc

	Instant = "instant"
	Path    = "path"
)
