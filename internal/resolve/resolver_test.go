package resolve

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Microsoft/tzdb/internal/backend"
	"github.com/Microsoft/tzdb/internal/backendtest"
	"github.com/Microsoft/tzdb/internal/instant"
)

func newResolver() *Resolver {
	return New(backendtest.NewPopulated())
}

func sys(year int, month time.Month, day, hour, min int) instant.SysTime {
	return instant.FromTime(time.Date(year, month, day, hour, min, 0, 0, time.UTC))
}

func local(year int, month time.Month, day, hour, min int) instant.LocalTime {
	return instant.FromCivil(year, month, day, hour, min, 0)
}

func TestSysInfoSingleRuleZone(t *testing.T) {
	r := newResolver()
	si, err := r.SysInfoAt("Etc/UTC", sys(2021, time.June, 1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if si.Begin != instant.MinSys || si.End != instant.MaxSys {
		t.Fatalf("single-rule zone should span all of time, got [%s, %s)", si.Begin, si.End)
	}
	if si.Offset != 0 || si.Save != 0 || si.Abbrev != "UTC" {
		t.Fatalf("unexpected UTC rule: %+v", si)
	}
}

func TestSysInfoContainsQueriedInstant(t *testing.T) {
	r := newResolver()
	for _, q := range []instant.SysTime{
		sys(2020, time.January, 1, 0, 0),
		sys(2021, time.January, 1, 0, 0),
		sys(2021, time.April, 3, 16, 0), // exactly at a transition
		sys(2021, time.July, 1, 12, 0),
		sys(2022, time.December, 31, 23, 59),
	} {
		si, err := r.SysInfoAt("Australia/Sydney", q)
		if err != nil {
			t.Fatal(err)
		}
		if !si.Contains(q) {
			t.Fatalf("query %s outside returned interval [%s, %s)", q, si.Begin, si.End)
		}
	}
}

func TestSysInfoStableWithinInterval(t *testing.T) {
	r := newResolver()
	// Both instants are inside the AEDT run starting 2021-10-02 16:00 UTC.
	a, err := r.SysInfoAt("Australia/Sydney", sys(2021, time.November, 1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.SysInfoAt("Australia/Sydney", sys(2022, time.February, 1, 0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same interval yielded different rules (-first +second):\n%s", diff)
	}
	if a.Offset != 11*time.Hour || a.Save != time.Hour || a.Abbrev != "AEDT" {
		t.Fatalf("unexpected AEDT rule: %+v", a)
	}
}

func TestLocalInfoSydneySpringForwardGap(t *testing.T) {
	// Daylight begins 2021-10-03 02:00 AEST; local [02:00, 03:00) is skipped.
	r := newResolver()
	for _, l := range []instant.LocalTime{
		local(2021, time.October, 3, 2, 0),
		local(2021, time.October, 3, 2, 30),
		local(2021, time.October, 3, 2, 59),
	} {
		li, err := r.LocalInfoAt("Australia/Sydney", l)
		if err != nil {
			t.Fatal(err)
		}
		if li.Result != Nonexistent {
			t.Fatalf("%s: expected nonexistent, got %s", l, li.Result)
		}
		if li.First.Offset != 10*time.Hour {
			t.Fatalf("%s: rule ending at the gap should be AEST, got %+v", l, li.First)
		}
		if li.Second == nil || li.Second.Offset != 11*time.Hour {
			t.Fatalf("%s: rule after the gap should be AEDT, got %+v", l, li.Second)
		}
	}

	// More than an hour outside the gap the classification is unique.
	for _, l := range []instant.LocalTime{
		local(2021, time.October, 3, 0, 59),
		local(2021, time.October, 3, 4, 1),
	} {
		li, err := r.LocalInfoAt("Australia/Sydney", l)
		if err != nil {
			t.Fatal(err)
		}
		if li.Result != Unique {
			t.Fatalf("%s: expected unique, got %s", l, li.Result)
		}
	}
}

func TestLocalInfoSydneyFallBackOverlap(t *testing.T) {
	// Daylight ends 2021-04-04 03:00 AEDT; local [02:00, 03:00) repeats.
	r := newResolver()
	li, err := r.LocalInfoAt("Australia/Sydney", local(2021, time.April, 4, 2, 30))
	if err != nil {
		t.Fatal(err)
	}
	if li.Result != Ambiguous {
		t.Fatalf("expected ambiguous, got %s", li.Result)
	}
	if li.First.Offset != 11*time.Hour {
		t.Fatalf("earlier candidate should be AEDT, got %+v", li.First)
	}
	if li.Second == nil || li.Second.Offset != 10*time.Hour {
		t.Fatalf("later candidate should be AEST, got %+v", li.Second)
	}
}

func TestLocalInfoLosAngelesBoundaries(t *testing.T) {
	// Negative-offset zones land on the other side of the UTC day
	// window, so the classification runs through the next-transition
	// branch rather than the previous one.
	r := newResolver()

	// Spring forward 2021-03-14 02:00 PST: [02:00, 03:00) is skipped.
	li, err := r.LocalInfoAt("America/Los_Angeles", local(2021, time.March, 14, 2, 30))
	if err != nil {
		t.Fatal(err)
	}
	if li.Result != Nonexistent {
		t.Fatalf("expected nonexistent, got %s", li.Result)
	}
	if li.First.Offset != -8*time.Hour || li.Second == nil || li.Second.Offset != -7*time.Hour {
		t.Fatalf("gap should run PST -> PDT, got %+v / %+v", li.First, li.Second)
	}

	// Fall back 2021-11-07 02:00 PDT: [01:00, 02:00) repeats.
	li, err = r.LocalInfoAt("America/Los_Angeles", local(2021, time.November, 7, 1, 30))
	if err != nil {
		t.Fatal(err)
	}
	if li.Result != Ambiguous {
		t.Fatalf("expected ambiguous, got %s", li.Result)
	}
	if li.First.Offset != -7*time.Hour || li.Second == nil || li.Second.Offset != -8*time.Hour {
		t.Fatalf("overlap should run PDT -> PST, got %+v / %+v", li.First, li.Second)
	}
}

func TestToSysRoundTripsUniqueLocalTime(t *testing.T) {
	r := newResolver()
	l := local(2021, time.July, 1, 12, 0)
	s, err := r.ToSys("Australia/Sydney", l, ChooseEarliest)
	if err != nil {
		t.Fatal(err)
	}
	back, err := r.ToLocal("Australia/Sydney", s)
	if err != nil {
		t.Fatal(err)
	}
	if back != l {
		t.Fatalf("round trip changed the civil time: %s -> %s -> %s", l, s, back)
	}
}

func TestToSysAmbiguousPolicies(t *testing.T) {
	r := newResolver()
	l := local(2021, time.April, 4, 2, 30)

	earliest, err := r.ToSys("Australia/Sydney", l, ChooseEarliest)
	if err != nil {
		t.Fatal(err)
	}
	latest, err := r.ToSys("Australia/Sydney", l, ChooseLatest)
	if err != nil {
		t.Fatal(err)
	}
	if earliest >= latest {
		t.Fatalf("earliest %s should precede latest %s", earliest, latest)
	}
	for _, s := range []instant.SysTime{earliest, latest} {
		back, err := r.ToLocal("Australia/Sydney", s)
		if err != nil {
			t.Fatal(err)
		}
		if back != l {
			t.Fatalf("candidate %s does not map back to %s (got %s)", s, l, back)
		}
	}
}

func TestToSysNonexistentNormalizesForward(t *testing.T) {
	r := newResolver()
	l := local(2021, time.October, 3, 2, 30)
	for _, c := range []Choose{ChooseEarliest, ChooseLatest} {
		s, err := r.ToSys("Australia/Sydney", l, c)
		if err != nil {
			t.Fatal(err)
		}
		// The gap closes when AEDT begins, 2021-10-02 16:00 UTC.
		if want := sys(2021, time.October, 2, 16, 0); s != want {
			t.Fatalf("policy %d: expected %s, got %s", c, want, s)
		}
	}
}

func TestToSysStrict(t *testing.T) {
	r := newResolver()

	if _, err := r.ToSysStrict("Australia/Sydney", local(2021, time.April, 4, 2, 30)); !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}
	if _, err := r.ToSysStrict("Australia/Sydney", local(2021, time.October, 3, 2, 30)); !errors.Is(err, ErrNonexistent) {
		t.Fatalf("expected ErrNonexistent, got %v", err)
	}
	if _, err := r.ToSysStrict("Australia/Sydney", local(2021, time.July, 1, 12, 0)); err != nil {
		t.Fatalf("unique local time should convert, got %v", err)
	}
}

func TestQueryErrorsPropagate(t *testing.T) {
	be := backendtest.NewPopulated()
	be.OpenErr["Australia/Sydney"] = backend.ErrQueryFailed
	r := New(be)

	if _, err := r.SysInfoAt("Australia/Sydney", sys(2021, time.July, 1, 0, 0)); !errors.Is(err, backend.ErrQueryFailed) {
		t.Fatalf("expected ErrQueryFailed, got %v", err)
	}
	if _, err := r.LocalInfoAt("Australia/Sydney", local(2021, time.July, 1, 0, 0)); !errors.Is(err, backend.ErrQueryFailed) {
		t.Fatalf("expected ErrQueryFailed, got %v", err)
	}
}

func TestCacheServesRepeatedLookups(t *testing.T) {
	be := backendtest.NewPopulated()
	r := New(be)

	q := sys(2021, time.November, 1, 0, 0)
	first, err := r.SysInfoAt("Australia/Sydney", q)
	if err != nil {
		t.Fatal(err)
	}

	// Poison the backend; a cached interval must still answer.
	be.OpenErr["Australia/Sydney"] = backend.ErrQueryFailed
	second, err := r.SysInfoAt("Australia/Sydney", q.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("cached rule differs (-first +second):\n%s", diff)
	}

	// Outside the cached interval the failure surfaces.
	if _, err := r.SysInfoAt("Australia/Sydney", sys(2021, time.June, 1, 0, 0)); !errors.Is(err, backend.ErrQueryFailed) {
		t.Fatalf("expected ErrQueryFailed, got %v", err)
	}
}
