package backend

import "errors"

var (
	// ErrUnavailable is returned when the platform rule provider
	// could not be loaded. The condition is terminal for the process:
	// once the binding reports it, every later call reports it again
	// without retrying the load.
	ErrUnavailable = errors.New("time-zone backend is not available")

	// ErrQueryFailed is returned when a specific call into the rule
	// provider failed. Unlike ErrUnavailable it says nothing about
	// later calls with other inputs.
	ErrQueryFailed = errors.New("time-zone backend query failed")
)
