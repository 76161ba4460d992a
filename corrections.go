package tzdb

import "github.com/Microsoft/tzdb/internal/zones"

// Corrections is the data-driven table of backend identifiers that
// the tz database defines as links but the backend still reports as
// canonical zones. The built-in table can be extended from a YAML
// document; see Corrections.Merge.
type Corrections = zones.Corrections

// DefaultCorrections returns the built-in correction table.
func DefaultCorrections() *Corrections {
	return zones.DefaultCorrections()
}
