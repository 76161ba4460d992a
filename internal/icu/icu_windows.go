//go:build windows

package icu

import (
	"time"
	"unicode/utf16"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"

	"github.com/Microsoft/tzdb/internal/backend"
	"github.com/Microsoft/tzdb/internal/instant"
)

// ICU constants consumed by the binding. UDate is a C double counting
// milliseconds since the Unix epoch; it only crosses the call
// boundary, everything else uses the module's fixed-point instants.
const (
	// UCalendarType
	ucalDefault = int32(0)

	// UCalendarDateFields
	ucalZoneOffsetField = int32(15)
	ucalDSTOffsetField  = int32(16)

	// UTimeZoneTransitionType
	ucalTZTransitionNext              = int32(0)
	ucalTZTransitionPreviousInclusive = int32(3)

	// UCalendarDisplayNameType
	ucalShortStandard = int32(1)
	ucalShortDST      = int32(3)

	// USystemTimeZoneType
	ucalZoneTypeAny       = int32(0)
	ucalZoneTypeCanonical = int32(1)
)

const nameBufLen = 256

// ICU function pointers, resolved once by load before the binding
// publishes the backend. Several cross the boundary with double
// arguments or returns, which plain syscall cannot marshal on amd64;
// purego generates the correct trampolines.
var (
	ucalOpen                      func(zoneID *uint16, length int32, locale *byte, calType int32, status *int32) uintptr
	ucalClose                     func(cal uintptr)
	ucalSetMillis                 func(cal uintptr, millis float64, status *int32)
	ucalInDaylightTime            func(cal uintptr, status *int32) int8
	ucalGet                       func(cal uintptr, field int32, status *int32) int32
	ucalGetTimeZoneTransitionDate func(cal uintptr, transitionType int32, date *float64, status *int32) int8
	ucalGetTimeZoneDisplayName    func(cal uintptr, nameType int32, locale *byte, result *uint16, resultLength int32, status *int32) int32
	ucalOpenTimeZoneIDEnumeration func(zoneType int32, region *byte, rawOffset *int32, status *int32) uintptr
	ucalGetDefaultTimeZone        func(result *uint16, resultCapacity int32, status *int32) int32
	ucalGetTZDataVersion          func(status *int32) uintptr
	uenumClose                    func(en uintptr)
	uenumCount                    func(en uintptr, status *int32) int32
	uenumUnext                    func(en uintptr, resultLength *int32, status *int32) uintptr
)

func load() (backend.Backend, error) {
	dll := windows.NewLazySystemDLL("icu.dll")
	if err := dll.Load(); err != nil {
		return nil, errors.Wrapf(backend.ErrUnavailable, "loading icu.dll: %v", err)
	}

	for _, fn := range []struct {
		name string
		fptr interface{}
	}{
		{"ucal_open", &ucalOpen},
		{"ucal_close", &ucalClose},
		{"ucal_setMillis", &ucalSetMillis},
		{"ucal_inDaylightTime", &ucalInDaylightTime},
		{"ucal_get", &ucalGet},
		{"ucal_getTimeZoneTransitionDate", &ucalGetTimeZoneTransitionDate},
		{"ucal_getTimeZoneDisplayName", &ucalGetTimeZoneDisplayName},
		{"ucal_openTimeZoneIDEnumeration", &ucalOpenTimeZoneIDEnumeration},
		{"ucal_getDefaultTimeZone", &ucalGetDefaultTimeZone},
		{"ucal_getTZDataVersion", &ucalGetTZDataVersion},
		{"uenum_close", &uenumClose},
		{"uenum_count", &uenumCount},
		{"uenum_unext", &uenumUnext},
	} {
		proc := dll.NewProc(fn.name)
		if err := proc.Find(); err != nil {
			return nil, errors.Wrapf(backend.ErrUnavailable, "resolving %s: %v", fn.name, err)
		}
		purego.RegisterFunc(fn.fptr, proc.Addr())
	}

	return &ucalBackend{}, nil
}

// uFailure mirrors ICU's U_FAILURE: warnings are negative, success is
// zero, errors are positive.
func uFailure(status int32) bool {
	return status > 0
}

func queryFailed(op string, status int32) error {
	return errors.Wrapf(backend.ErrQueryFailed, "%s: ICU status %d", op, status)
}

// utf16PtrToString copies an ICU-owned UChar buffer of known length
// into a Go string.
func utf16PtrToString(p uintptr, n int32) string {
	if p == 0 || n <= 0 {
		return ""
	}
	return string(utf16.Decode(unsafe.Slice((*uint16)(unsafe.Pointer(p)), int(n))))
}

type ucalBackend struct{}

var _ backend.Backend = (*ucalBackend)(nil)

func (*ucalBackend) EnumerateZoneIDs(scope backend.Scope) ([]string, error) {
	zoneType := ucalZoneTypeCanonical
	if scope == backend.ScopeAll {
		zoneType = ucalZoneTypeAny
	}

	var status int32
	en := ucalOpenTimeZoneIDEnumeration(zoneType, nil, nil, &status)
	if uFailure(status) || en == 0 {
		return nil, queryFailed("ucal_openTimeZoneIDEnumeration", status)
	}
	defer uenumClose(en)

	count := uenumCount(en, &status)
	if uFailure(status) {
		return nil, queryFailed("uenum_count", status)
	}

	ids := make([]string, 0, count)
	for i := int32(0); i < count; i++ {
		var length int32
		elem := uenumUnext(en, &length, &status)
		if uFailure(status) || elem == 0 {
			return nil, queryFailed("uenum_unext", status)
		}
		ids = append(ids, utf16PtrToString(elem, length))
	}
	return ids, nil
}

func (*ucalBackend) DefaultZoneID() (string, error) {
	var status int32
	buf := make([]uint16, nameBufLen)
	n := ucalGetDefaultTimeZone(&buf[0], nameBufLen, &status)
	if uFailure(status) || n <= 0 {
		return "", queryFailed("ucal_getDefaultTimeZone", status)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (*ucalBackend) TZDataVersion() (string, error) {
	var status int32
	p := ucalGetTZDataVersion(&status)
	if uFailure(status) || p == 0 {
		return "", queryFailed("ucal_getTZDataVersion", status)
	}
	return windows.BytePtrToString((*byte)(unsafe.Pointer(p))), nil
}

func (*ucalBackend) OpenContext(zoneID string) (backend.Context, error) {
	id, err := windows.UTF16FromString(zoneID)
	if err != nil {
		return nil, errors.Wrapf(backend.ErrQueryFailed, "zone id %q: %v", zoneID, err)
	}

	var status int32
	// Length excludes the terminating NUL appended by the conversion.
	cal := ucalOpen(&id[0], int32(len(id)-1), nil, ucalDefault, &status)
	if uFailure(status) || cal == 0 {
		return nil, queryFailed("ucal_open", status)
	}
	return &ucalContext{cal: cal}, nil
}

// ucalContext wraps one UCalendar handle. It is not safe for
// concurrent use; each query owns its own context.
type ucalContext struct {
	cal uintptr
}

var _ backend.Context = (*ucalContext)(nil)

func (c *ucalContext) SetInstant(t instant.SysTime) error {
	var status int32
	ucalSetMillis(c.cal, float64(t), &status)
	if uFailure(status) {
		return queryFailed("ucal_setMillis", status)
	}
	return nil
}

func (c *ucalContext) InDaylightTime() (bool, error) {
	var status int32
	dst := ucalInDaylightTime(c.cal, &status)
	if uFailure(status) {
		return false, queryFailed("ucal_inDaylightTime", status)
	}
	return dst != 0, nil
}

func (c *ucalContext) ZoneOffset() (time.Duration, error) {
	return c.offsetField(ucalZoneOffsetField, "UCAL_ZONE_OFFSET")
}

func (c *ucalContext) DaylightOffset() (time.Duration, error) {
	return c.offsetField(ucalDSTOffsetField, "UCAL_DST_OFFSET")
}

func (c *ucalContext) offsetField(field int32, name string) (time.Duration, error) {
	var status int32
	ms := ucalGet(c.cal, field, &status)
	if uFailure(status) {
		return 0, queryFailed("ucal_get "+name, status)
	}
	return time.Duration(ms) * time.Millisecond, nil
}

func (c *ucalContext) Transition(dir backend.Direction) (instant.SysTime, bool, error) {
	transitionType := ucalTZTransitionNext
	if dir == backend.PreviousInclusive {
		transitionType = ucalTZTransitionPreviousInclusive
	}

	var status int32
	var date float64
	found := ucalGetTimeZoneTransitionDate(c.cal, transitionType, &date, &status)
	if uFailure(status) {
		return 0, false, queryFailed("ucal_getTimeZoneTransitionDate", status)
	}
	if found == 0 {
		return 0, false, nil
	}
	return instant.SysTime(int64(date)), true, nil
}

func (c *ucalContext) DisplayName(v backend.Variant) (string, error) {
	nameType := ucalShortStandard
	if v == backend.Daylight {
		nameType = ucalShortDST
	}

	var status int32
	buf := make([]uint16, nameBufLen)
	n := ucalGetTimeZoneDisplayName(c.cal, nameType, nil, &buf[0], nameBufLen, &status)
	if uFailure(status) || n <= 0 {
		return "", queryFailed("ucal_getTimeZoneDisplayName", status)
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func (c *ucalContext) Close() error {
	ucalClose(c.cal)
	c.cal = 0
	return nil
}
