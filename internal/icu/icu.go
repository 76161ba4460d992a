// Package icu provides the production time-zone backend over the
// Windows ICU library (icu.dll). The library is loaded lazily exactly
// once per process; a failed load is terminal and reported on every
// subsequent acquire.
package icu

import "github.com/Microsoft/tzdb/internal/backend"

var binding = backend.NewBinding(load)

// Acquire returns the process-wide ICU backend, loading it on first
// use.
func Acquire() (backend.Backend, error) {
	return binding.Acquire()
}
