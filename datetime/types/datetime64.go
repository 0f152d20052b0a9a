package types

import (
	"fmt"
	"strings"
	"time"
)

// Unit is the resolution of a Datetime64 value.
type Unit string

// Units supported by Datetime64, named as numpy names them.
const (
	UnitDay         Unit = "D"
	UnitHour        Unit = "h"
	UnitMinute      Unit = "m"
	UnitSecond      Unit = "s"
	UnitMillisecond Unit = "ms"
	UnitMicrosecond Unit = "us"
	UnitNanosecond  Unit = "ns"
)

// layout returns the time layout rendering a value at unit precision.
func (u Unit) layout() string {
	switch u {
	case UnitDay:
		return dateFormat
	case UnitHour:
		return dateFormat + "T15"
	case UnitMinute:
		return dateFormat + "T15:04"
	case UnitMillisecond:
		return dateFormat + "T15:04:05.000"
	case UnitMicrosecond:
		return dateFormat + "T15:04:05.000000"
	case UnitNanosecond:
		return dateFormat + "T15:04:05.000000000"
	default:
		return dateFormat + "T15:04:05"
	}
}

// seconds returns the number of seconds in one unit, or 0 for sub-second
// units.
func (u Unit) seconds() int64 {
	switch u {
	case UnitDay:
		return secondsPerDay
	case UnitHour:
		return secondsPerHour
	case UnitMinute:
		return secondsPerMinute
	case UnitSecond:
		return 1
	default:
		return 0
	}
}

// perSecond returns the number of sub-second units in one second.
func (u Unit) perSecond() int64 {
	switch u {
	case UnitMillisecond:
		return 1e3
	case UnitMicrosecond:
		return 1e6
	case UnitNanosecond:
		return 1e9
	default:
		return 1
	}
}

// Datetime64 is a time zone free count of Units since 1970-01-01T00:00:00,
// modeled on numpy's datetime64.
type Datetime64 struct {
	Value int64
	Unit  Unit
}

// NewDatetime64 converts t to a Datetime64 with the given unit. Offset
// bearing values are converted to UTC first.
func NewDatetime64(t time.Time, unit Unit) *Datetime64 {
	t = t.UTC()
	secs := t.Unix()
	var value int64
	if s := unit.seconds(); s > 0 {
		value = floorDiv(secs, s)
	} else {
		per := unit.perSecond()
		value = secs*per + int64(t.Nanosecond())/(1e9/per)
	}
	return &Datetime64{Value: value, Unit: unit}
}

// ParseDatetime64 parses an ISO 8601 date or date and time into a
// Datetime64, inferring the unit from the precision of src: "D" for dates,
// "h", "m" or "s" for times to the hour, minute or second, and "ms", "us" or
// "ns" for fractional seconds. An offset suffix converts the value to UTC.
func ParseDatetime64(src string) (*Datetime64, error) {
	if d, err := ParseDate(src); err == nil {
		return NewDatetime64(d.Time, UnitDay), nil
	}

	datePart, timePart, ok := strings.Cut(src, "T")
	if !ok {
		datePart, timePart, ok = strings.Cut(src, " ")
	}
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse %q as a datetime64", ErrParse, src)
	}

	clock, offset := SplitOffset(timePart)
	unit, layout, ok := clockUnit(clock)
	if !ok {
		return nil, fmt.Errorf("%w: cannot parse %q as a datetime64", ErrParse, src)
	}

	tim, err := time.Parse(dateFormat+"T"+layout, datePart+"T"+clock)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot parse %q as a datetime64", ErrParse, src)
	}
	if offset != "" {
		loc, err := ParseOffset(offset)
		if err != nil {
			return nil, err
		}
		tim = NewTimestamp(tim).InLocation(loc).Time
	}
	return NewDatetime64(tim, unit), nil
}

// clockUnit returns the unit and parse layout for a time of day without
// offset.
func clockUnit(clock string) (Unit, string, bool) {
	hms, frac, hasFrac := strings.Cut(clock, ".")
	switch strings.Count(hms, ":") {
	case 0:
		if hasFrac {
			return "", "", false
		}
		return UnitHour, "15", true
	case 1:
		if hasFrac {
			return "", "", false
		}
		return UnitMinute, "15:04", true
	case 2:
	default:
		return "", "", false
	}

	if !hasFrac {
		return UnitSecond, "15:04:05", true
	}
	switch n := len(frac); {
	case n == 0:
		return "", "", false
	case n <= 3:
		return UnitMillisecond, "15:04:05", true
	case n <= 6:
		return UnitMicrosecond, "15:04:05", true
	case n <= 9:
		return UnitNanosecond, "15:04:05", true
	default:
		return "", "", false
	}
}

// Time returns the UTC instant represented by d.
func (d *Datetime64) Time() time.Time {
	if s := d.Unit.seconds(); s > 0 {
		return time.Unix(d.Value*s, 0).UTC()
	}
	per := d.Unit.perSecond()
	secs := floorDiv(d.Value, per)
	return time.Unix(secs, (d.Value-secs*per)*(1e9/per)).UTC()
}

// GoTime returns the UTC instant represented by d.
func (d *Datetime64) GoTime() time.Time { return d.Time() }

// String renders d at the precision of its unit, e.g.
// "1991-10-01T12:00:00" for seconds.
func (d *Datetime64) String() string {
	return d.Time().Format(d.Unit.layout())
}

// floorDiv divides a by b rounding toward negative infinity.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
