package backend

import (
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/Microsoft/tzdb/internal/logfields"
)

// Binding state values. The progression is strictly monotonic:
// notInitialized -> initializing -> {failed | ready}, and the two
// final states are terminal for the process lifetime.
const (
	stateNotInitialized uint32 = iota
	stateInitializing
	stateFailed
	stateReady
)

// Binding performs one-time, process-wide initialization of a Backend.
// Exactly one caller wins the right to run the loader; concurrent
// callers spin until the winner publishes a terminal state. The spin
// is bounded by a single library-load-and-symbol-resolution pass, so
// no blocking primitive is used.
//
// Once a terminal state is published the loader never runs again: a
// failed load is cached and reported on every later Acquire.
type Binding struct {
	state atomic.Uint32
	load  func() (Backend, error)

	// Written exactly once by the winning goroutine before the
	// terminal state is stored; the atomic state store orders the
	// writes for every reader that observes it.
	backend Backend
	err     error
}

// NewBinding returns a Binding that will invoke load on first use.
func NewBinding(load func() (Backend, error)) *Binding {
	return &Binding{load: load}
}

// Acquire returns the loaded Backend, running the loader on first
// use. It is safe for concurrent use.
func (b *Binding) Acquire() (Backend, error) {
	st := b.state.Load()
	if st < stateFailed {
		st = b.initialize()
	}
	if st == stateReady {
		return b.backend, nil
	}
	return nil, b.err
}

func (b *Binding) initialize() uint32 {
	for {
		if b.state.CompareAndSwap(stateNotInitialized, stateInitializing) {
			break
		}
		st := b.state.Load()
		if st > stateInitializing {
			return st
		}
		// Another goroutine won the load; wait for it to publish.
		runtime.Gosched()
	}

	be, err := b.load()
	if err != nil {
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%v: %w", err, ErrUnavailable)
		}
		b.err = err
		b.state.Store(stateFailed)
		logrus.WithError(err).Warn("time-zone backend load failed")
		return stateFailed
	}

	b.backend = be
	b.state.Store(stateReady)
	logrus.WithField(logfields.Backend, fmt.Sprintf("%T", be)).Debug("time-zone backend loaded")
	return stateReady
}
