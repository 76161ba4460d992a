//go:build !windows

package icu

import (
	"github.com/pkg/errors"

	"github.com/Microsoft/tzdb/internal/backend"
)

func load() (backend.Backend, error) {
	return nil, errors.Wrap(backend.ErrUnavailable, "ICU is only provided by Windows")
}
