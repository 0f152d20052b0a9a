package types

import (
	"fmt"
	"slices"
	"time"
)

// Timestamp represents a date and time without time zone.
type Timestamp struct {
	// Time is the underlying time.Time value.
	time.Time
}

// NewTimestamp coerces src into a Timestamp.
func NewTimestamp(src time.Time) *Timestamp {
	// Convert result type to timestamp without time zone (use UTC)
	if src.Location() != time.UTC {
		src = time.Date(
			src.Year(), src.Month(), src.Day(),
			src.Hour(), src.Minute(), src.Second(), src.Nanosecond(),
			time.UTC,
		)
	}
	return &Timestamp{src}
}

// GoTime returns the underlying time.Time object.
func (ts *Timestamp) GoTime() time.Time { return ts.Time }

// timestampFormat represents the canonical string format for Timestamp
// values.
const timestampFormat = "2006-01-02T15:04:05.999999999"

// String returns the string representation of ts using the format
// "2006-01-02T15:04:05.999999999".
func (ts *Timestamp) String() string {
	return ts.Time.Format(timestampFormat)
}

// DatePart returns the date part of ts.
func (ts *Timestamp) DatePart() *Date {
	return NewDate(ts.Time)
}

// TimePart returns the time part of ts.
func (ts *Timestamp) TimePart() *Time {
	return NewTime(ts.Time)
}

// InLocation interprets the wall clock of ts in loc. A wall clock that occurs
// twice, when daylight saving time ends, resolves to standard time.
func (ts *Timestamp) InLocation(loc *time.Location) *TimestampTZ {
	return ts.Readings(loc)[0]
}

// Readings returns the instants at which the wall clock of ts occurs in loc,
// standard time first. There are two when daylight saving time ends. When
// the wall clock is skipped because daylight saving time begins, the single
// reading applies the standard time offset and so shows a later wall clock.
func (ts *Timestamp) Readings(loc *time.Location) []*TimestampTZ {
	t := ts.Time
	guess := time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		loc,
	)

	// Transitions are less than a day apart from the offsets in effect a day
	// either side of the wall clock.
	var readings []time.Time
	_, stdOff := guess.Zone()
	for _, near := range []time.Time{
		guess,
		guess.Add(-secondsPerDay * time.Second),
		guess.Add(secondsPerDay * time.Second),
	} {
		_, off := near.Zone()
		if !near.IsDST() {
			stdOff = off
		}
		at := time.Unix(t.Unix()-int64(off), int64(t.Nanosecond())).In(loc)
		if !NewTimestamp(at).Time.Equal(t) {
			continue
		}
		if !slices.ContainsFunc(readings, at.Equal) {
			readings = append(readings, at)
		}
	}

	if len(readings) == 0 {
		at := time.Unix(t.Unix()-int64(stdOff), int64(t.Nanosecond())).In(loc)
		return []*TimestampTZ{NewTimestampTZ(at)}
	}

	slices.SortStableFunc(readings, func(a, b time.Time) int {
		switch {
		case a.IsDST() == b.IsDST():
			return 0
		case b.IsDST():
			return -1
		default:
			return 1
		}
	})
	tzs := make([]*TimestampTZ, len(readings))
	for i, at := range readings {
		tzs[i] = NewTimestampTZ(at)
	}
	return tzs
}

// Compare compares the time instant ts with u. If ts is before u, it returns
// -1; if ts is after u, it returns +1; if they're the same, it returns 0.
func (ts *Timestamp) Compare(u time.Time) int {
	return ts.Time.Compare(u)
}

// MarshalJSON implements the json.Marshaler interface. The time is a quoted
// string using the "2006-01-02T15:04:05.999999999" format.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	const timestampJSONSize = len(timestampFormat) + len(`""`)
	b := make([]byte, 0, timestampJSONSize)
	b = append(b, '"')
	b = ts.Time.AppendFormat(b, timestampFormat)
	b = append(b, '"')
	return b, nil
}

// UnmarshalJSON implements the json.Unmarshaler interface. The time must be a
// quoted string in the "2006-01-02T15:04:05.999999999" format.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	tim, err := time.Parse(timestampFormat, string(unquote(data)))
	if err != nil {
		return fmt.Errorf(
			"%w: Cannot parse %s as %q",
			ErrParse, data, timestampFormat,
		)
	}
	*ts = *NewTimestamp(tim)
	return nil
}
