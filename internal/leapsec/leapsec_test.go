package leapsec

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Microsoft/tzdb/internal/instant"
)

func TestDecodeEntries(t *testing.T) {
	// 2016-12-31 23h positive insertion, then a synthetic negative
	// entry, as consecutive 12-byte little-endian records.
	raw := []byte{
		0xE0, 0x07, // 2016
		0x0C, 0x00, // December
		0x1F, 0x00, // 31
		0x17, 0x00, // hour 23
		0x00, 0x00, // positive
		0x00, 0x00, // reserved
		0xE7, 0x07, // 2023
		0x06, 0x00, // June
		0x1E, 0x00, // 30
		0x17, 0x00, // hour 23
		0x01, 0x00, // negative
		0x00, 0x00, // reserved
	}

	want := []Entry{
		{Year: 2016, Month: 12, Day: 31, Hour: 23},
		{Year: 2023, Month: 6, Day: 30, Hour: 23, Negative: true},
	}
	if diff := cmp.Diff(want, decodeEntries(raw)); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeEntriesIgnoresTrailingBytes(t *testing.T) {
	raw := make([]byte, entrySize+5)
	if got := decodeEntries(raw); len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
}

func TestEntryAt(t *testing.T) {
	e := Entry{Year: 2016, Month: 12, Day: 31, Hour: 23}
	want := instant.FromTime(time.Date(2017, time.January, 1, 0, 0, 0, 0, time.UTC))
	if got := e.At(); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestEmptySourceReportsNoData(t *testing.T) {
	total, entries, err := emptySource{}.FetchNew(0)
	if err != nil || total != 0 || entries != nil {
		t.Fatalf("expected no data, got total=%d entries=%v err=%v", total, entries, err)
	}
}
