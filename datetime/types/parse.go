package types

import (
	"fmt"
	"time"
)

// Layouts accepted for times of day. Fractional seconds are accepted after
// the seconds field by time.Parse without being named in the layout.
//
//nolint:gochecknoglobals
var (
	timeTZLayouts = []string{
		"15:04:05Z07:00",
		"15:04:05Z07:00:00",
		"15:04:05Z07",
		"15:04:05Z0700",
		"15:04Z07:00",
		"15:04Z07",
	}
	timeLayouts = []string{
		"15:04:05",
		"15:04",
	}
)

// joinLayouts prefixes each time layout with the date layout and sep.
func joinLayouts(sep string, layouts []string) []string {
	joined := make([]string, len(layouts))
	for i, l := range layouts {
		joined[i] = dateFormat + sep + l
	}
	return joined
}

//nolint:gochecknoglobals
var (
	timestampTZLayouts = append(
		joinLayouts("T", timeTZLayouts),
		joinLayouts(" ", timeTZLayouts)...,
	)
	timestampLayouts = append(
		joinLayouts("T", timeLayouts),
		joinLayouts(" ", timeLayouts)...,
	)
)

// parseWith returns the first successful parse of src by one of layouts.
func parseWith(layouts []string, src string) (time.Time, bool) {
	for _, layout := range layouts {
		if value, err := time.Parse(layout, src); err == nil {
			return value, true
		}
	}
	return time.Time{}, false
}

// ParseTime parses src as a time of day. Returns a *TimeTZ if src carries an
// offset and a *Time otherwise.
func ParseTime(src string) (DateTime, error) {
	if value, ok := parseWith(timeTZLayouts, src); ok {
		return NewTimeTZ(value), nil
	}
	if value, ok := parseWith(timeLayouts, src); ok {
		return NewTime(value), nil
	}
	return nil, fmt.Errorf("%w: cannot parse %q as a time", ErrParse, src)
}

// ParseTimestamp parses src as a date and time joined by "T" or a space.
// Returns a *TimestampTZ if src carries an offset and a *Timestamp otherwise.
func ParseTimestamp(src string) (DateTime, error) {
	if value, ok := parseWith(timestampTZLayouts, src); ok {
		return NewTimestampTZ(offsetOnlyTimeFor(value)), nil
	}
	if value, ok := parseWith(timestampLayouts, src); ok {
		return NewTimestamp(value), nil
	}
	return nil, fmt.Errorf("%w: cannot parse %q as a timestamp", ErrParse, src)
}

// Parse parses src into a DateTime by trying, in order, a date, a time of
// day and a timestamp.
func Parse(src string) (DateTime, error) {
	if d, err := ParseDate(src); err == nil {
		return d, nil
	}
	if t, err := ParseTime(src); err == nil {
		return t, nil
	}
	if ts, err := ParseTimestamp(src); err == nil {
		return ts, nil
	}
	return nil, fmt.Errorf("%w: format is not recognized: %q", ErrParse, src)
}
