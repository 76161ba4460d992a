//go:build windows

package leapsec

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/windows/registry"
)

const (
	leapSecondKey   = `SYSTEM\CurrentControlSet\Control\LeapSecondInformation`
	leapSecondValue = "LeapSeconds"
)

// registrySource reads the leap-second table published by the Windows
// time service.
type registrySource struct{}

// Default returns the production leap-second source.
func Default() Source {
	return registrySource{}
}

func (registrySource) FetchNew(known int) (int, []Entry, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, leapSecondKey, registry.QUERY_VALUE)
	if err != nil {
		// Older systems have no LeapSecondInformation key at all;
		// that is the same as a key with no data.
		return 0, nil, nil
	}
	defer key.Close()

	raw, _, err := key.GetBinaryValue(leapSecondValue)
	if err != nil {
		if err == registry.ErrNotExist {
			return 0, nil, nil
		}
		return 0, nil, errors.Wrapf(ErrRead, "querying %s: %v", leapSecondValue, err)
	}

	total := len(raw) / entrySize
	if total <= known {
		return total, nil, nil
	}
	return total, decodeEntries(raw), nil
}
