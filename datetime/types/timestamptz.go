package types

import (
	"fmt"
	"time"
)

// TimestampTZ represents a date and time with a time zone, either a named
// location or a fixed offset.
type TimestampTZ struct {
	// Time is the underlying time.Time value.
	time.Time
}

// NewTimestampTZ coerces src into a TimestampTZ, keeping its location.
func NewTimestampTZ(src time.Time) *TimestampTZ {
	return &TimestampTZ{src}
}

// GoTime returns the underlying time.Time object.
func (ts *TimestampTZ) GoTime() time.Time { return ts.Time }

// timestampTZFormat represents the canonical string format for TimestampTZ
// values.
const timestampTZFormat = "2006-01-02T15:04:05.999999999-07:00"

// String returns the string representation of ts using the format
// "2006-01-02T15:04:05.999999999-07:00".
func (ts *TimestampTZ) String() string {
	return ts.Time.Format(timestampTZFormat)
}

// ZoneName returns the name under which the zone of ts is stored in
// metadata. See [ZoneName].
func (ts *TimestampTZ) ZoneName() string {
	return ZoneName(ts.Time)
}

// ToTimestamp converts ts to a Timestamp, keeping its wall clock and
// dropping the zone.
func (ts *TimestampTZ) ToTimestamp() *Timestamp {
	return NewTimestamp(ts.Time)
}

// Compare compares the time instant ts with u. If ts is before u, it returns
// -1; if ts is after u, it returns +1; if they're the same, it returns 0.
func (ts *TimestampTZ) Compare(u time.Time) int {
	return ts.Time.Compare(u)
}

// MarshalJSON implements the json.Marshaler interface. The time is a quoted
// string using the "2006-01-02T15:04:05.999999999-07:00" format.
func (ts TimestampTZ) MarshalJSON() ([]byte, error) {
	const timestampJSONSize = len(timestampTZFormat) + len(`""`)
	b := make([]byte, 0, timestampJSONSize)
	b = append(b, '"')
	b = ts.Time.AppendFormat(b, timestampTZFormat)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. The time must be a
// quoted string with an offset in one of the "Z07:00", "Z07" or "Z0700"
// forms.
func (ts *TimestampTZ) UnmarshalJSON(data []byte) error {
	tim, ok := parseWith(timestampTZLayouts, string(unquote(data)))
	if !ok {
		return fmt.Errorf("%w: Cannot parse %s as %q", ErrParse, data, timestampTZFormat)
	}
	*ts = *NewTimestampTZ(offsetOnlyTimeFor(tim))
	return nil
}
