package types

import (
	"fmt"
	"time"
)

// TimeTZ represents a time of day with a UTC offset.
type TimeTZ struct {
	// Time is the underlying time.Time value.
	time.Time
}

// NewTimeTZ coerces src into a TimeTZ.
func NewTimeTZ(src time.Time) *TimeTZ {
	// Preserve the offset.
	return &TimeTZ{time.Date(
		0, 1, 1,
		src.Hour(), src.Minute(), src.Second(), src.Nanosecond(),
		offsetLocationFor(src),
	)}
}

// GoTime returns the underlying time.Time object.
func (t *TimeTZ) GoTime() time.Time { return t.Time }

// timeTZFormat represents the canonical string format for TimeTZ values.
const timeTZFormat = "15:04:05.999999999-07:00"

// String returns the string representation of t using the format
// "15:04:05.999999999-07:00".
func (t *TimeTZ) String() string {
	return t.Time.Format(timeTZFormat)
}

// ToTime converts t to *Time, dropping the offset.
func (t *TimeTZ) ToTime() *Time {
	return NewTime(t.Time)
}

// Compare compares the time instant t with u. If t is before u, it returns
// -1; if t is after u, it returns +1; if they're the same, it returns 0. Note
// that the offset contributes to this comparison; values with different
// offsets are never considered to be the same.
func (t *TimeTZ) Compare(u time.Time) int {
	// Primary sort is by true (UTC-equivalent) time.
	cmp := t.Time.UTC().Compare(u.UTC())
	if cmp != 0 {
		return cmp
	}

	// If same UTC time, sort by offset.
	_, off1 := t.Time.Zone()
	_, off2 := u.Zone()
	if off1 > off2 {
		return -1
	}
	if off1 < off2 {
		return 1
	}
	return 0
}

// MarshalJSON implements the json.Marshaler interface. The time is a quoted
// string using the "15:04:05.999999999-07:00" format.
func (t TimeTZ) MarshalJSON() ([]byte, error) {
	const timeJSONSize = len(timeTZFormat) + len(`""`)
	b := make([]byte, 0, timeJSONSize)
	b = append(b, '"')
	b = t.Time.AppendFormat(b, timeTZFormat)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. The time must be a
// quoted string with an offset in one of the "Z07:00", "Z07" or "Z0700"
// forms.
func (t *TimeTZ) UnmarshalJSON(data []byte) error {
	tim, ok := parseWith(timeTZLayouts, string(unquote(data)))
	if !ok {
		return fmt.Errorf("%w: Cannot parse %s as %q", ErrParse, data, timeTZFormat)
	}
	*t = *NewTimeTZ(tim)
	return nil
}
