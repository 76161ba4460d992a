// Package leapsec reads the platform's leap-second table.
package leapsec

import (
	"encoding/binary"
	"errors"
	"time"

	"github.com/Microsoft/tzdb/internal/instant"
)

// ErrRead is returned when the platform reports that leap-second data
// exists but reading it failed. Callers must not treat this as "no
// leap seconds".
var ErrRead = errors.New("leap-second data exists but could not be read")

// Entry is one leap second: the UTC date and hour at whose end the
// second is inserted (or, for Negative, removed).
type Entry struct {
	Year     uint16
	Month    uint16
	Day      uint16
	Hour     uint16
	Negative bool
}

// At reports the first instant affected by the entry, i.e. the end of
// the recorded hour.
func (e Entry) At() instant.SysTime {
	d := time.Date(int(e.Year), time.Month(e.Month), int(e.Day), int(e.Hour), 0, 0, 0, time.UTC)
	return instant.FromTime(d.Add(time.Hour))
}

// Source provides incremental access to the leap-second table.
//
// FetchNew is passed the number of entries the caller already holds.
// It reports the table's current total and, when total > known, the
// full current table. total <= known with a nil error means no new
// data. A non-nil error wrapping ErrRead means new data exists but
// was unreadable.
type Source interface {
	FetchNew(known int) (total int, entries []Entry, err error)
}

// entrySize is the fixed on-disk record layout: six little-endian
// 16-bit fields (year, month, day, hour, negative, reserved).
const entrySize = 12

// decodeEntries parses the raw registry value. Trailing bytes that do
// not form a whole record are ignored, matching the size/12
// truncation of the platform contract.
func decodeEntries(raw []byte) []Entry {
	n := len(raw) / entrySize
	entries := make([]Entry, 0, n)
	for i := 0; i < n; i++ {
		rec := raw[i*entrySize:]
		entries = append(entries, Entry{
			Year:     binary.LittleEndian.Uint16(rec[0:2]),
			Month:    binary.LittleEndian.Uint16(rec[2:4]),
			Day:      binary.LittleEndian.Uint16(rec[4:6]),
			Hour:     binary.LittleEndian.Uint16(rec[6:8]),
			Negative: binary.LittleEndian.Uint16(rec[8:10]) != 0,
		})
	}
	return entries
}

// emptySource is the fallback for platforms without a leap-second
// store; it always reports no data.
type emptySource struct{}

func (emptySource) FetchNew(known int) (int, []Entry, error) {
	return 0, nil, nil
}
