package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

//nolint:gochecknoglobals
var (
	// offsetZero represents time zone offset zero.
	offsetZero = time.FixedZone("", 0)
)

// maxOffsetMinutes is the exclusive bound on the magnitude of a fixed offset.
const maxOffsetMinutes = 24 * 60

// offsetLocationFor returns an offset-only time.Location with the offset of
// the location of t.
func offsetLocationFor(t time.Time) *time.Location {
	if name, off := t.Zone(); name != "" {
		return time.FixedZone("", off)
	}
	return t.Location()
}

// offsetOnlyTimeFor returns t if its time zone is offset-only or a new
// offset-only time.Time with the offset of t's zone.
func offsetOnlyTimeFor(t time.Time) time.Time {
	if name, off := t.Zone(); name != "" {
		return t.In(time.FixedZone("", off))
	}
	return t
}

// ParseOffset parses src as a fixed UTC offset and returns an unnamed
// time.Location for it. Supported forms are "Z", "±HH", "±HHMM", "±HH:MM",
// "±HH:MM:SS", and a signed or unsigned integer number of minutes such as
// "-300". A sign followed by two or four digits is always read as hours and
// minutes, so "-1000" is ten hours west of UTC; write minutes without a sign,
// such as "1000", or use MinuteOffset. Returns an error wrapping ErrParse for
// anything else.
func ParseOffset(src string) (*time.Location, error) {
	if src == "Z" || src == "z" {
		return time.UTC, nil
	}

	secs, ok := parseClockOffset(src)
	if !ok {
		secs, ok = parseMinuteOffset(src)
	}
	if !ok {
		return nil, fmt.Errorf("%w: invalid time zone offset %q", ErrParse, src)
	}
	return time.FixedZone("", secs), nil
}

// parseClockOffset parses the "±HH", "±HHMM", "±HH:MM" and "±HH:MM:SS" forms.
func parseClockOffset(src string) (int, bool) {
	if len(src) < 3 || (src[0] != '+' && src[0] != '-') {
		return 0, false
	}
	sign := 1
	if src[0] == '-' {
		sign = -1
	}

	var parts []string
	body := src[1:]
	switch {
	case strings.Contains(body, ":"):
		parts = strings.Split(body, ":")
		if len(parts) > 3 {
			return 0, false
		}
	case len(body) == 2:
		parts = []string{body}
	case len(body) == 4:
		parts = []string{body[:2], body[2:]}
	default:
		return 0, false
	}

	limits := []int{24, 60, 60}
	units := []int{secondsPerHour, secondsPerMinute, 1}
	secs := 0
	for i, part := range parts {
		if len(part) != 2 {
			return 0, false
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n >= limits[i] {
			return 0, false
		}
		secs += n * units[i]
	}
	return sign * secs, true
}

// parseMinuteOffset parses an integer number of minutes east of UTC.
func parseMinuteOffset(src string) (int, bool) {
	mins, err := strconv.Atoi(src)
	if err != nil {
		return 0, false
	}
	return minuteSeconds(int64(mins))
}

// minuteSeconds converts mins to seconds if it is a valid offset.
func minuteSeconds(mins int64) (int, bool) {
	if mins <= -maxOffsetMinutes || mins >= maxOffsetMinutes {
		return 0, false
	}
	return int(mins) * secondsPerMinute, true
}

// MinuteOffset returns an unnamed time.Location mins minutes east of UTC.
// Returns an error wrapping ErrParse unless the offset is under a day.
func MinuteOffset(mins int64) (*time.Location, error) {
	secs, ok := minuteSeconds(mins)
	if !ok {
		return nil, fmt.Errorf("%w: invalid time zone offset of %d minutes", ErrParse, mins)
	}
	return time.FixedZone("", secs), nil
}

// FormatOffset formats an offset in seconds east of UTC as "±HH:MM", or
// "±HH:MM:SS" when the offset includes seconds.
func FormatOffset(secs int) string {
	sign := '+'
	if secs < 0 {
		sign = '-'
		secs = -secs
	}
	h, m, s := secs/secondsPerHour, secs%secondsPerHour/secondsPerMinute, secs%secondsPerMinute
	if s != 0 {
		return fmt.Sprintf("%c%02d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%c%02d:%02d", sign, h, m)
}

// ZoneName returns the name under which the zone of t is stored in metadata:
// the location name when it has one, otherwise the zone abbreviation in
// effect at t, otherwise the formatted offset.
func ZoneName(t time.Time) string {
	if name := t.Location().String(); name != "" && name != "Local" {
		return name
	}
	name, off := t.Zone()
	if name != "" {
		return name
	}
	return FormatOffset(off)
}

// LoadZone resolves name as a named time zone, falling back on a fixed
// offset. The error of the offset parse is returned if both fail.
func LoadZone(name string) (*time.Location, error) {
	if loc, err := time.LoadLocation(name); err == nil {
		return loc, nil
	}
	return ParseOffset(name)
}

// SplitOffset separates an ISO 8601 time of day from a trailing UTC offset
// designator ("Z", "±HH", "±HHMM", "±HH:MM" or "±HH:MM:SS"). The offset is
// returned as written; it is empty when clock carries none. Only a sign whose
// remainder forms a valid offset is taken as the start of one.
func SplitOffset(clock string) (string, string) {
	if n := len(clock); n > 0 && (clock[n-1] == 'Z' || clock[n-1] == 'z') {
		return clock[:n-1], clock[n-1:]
	}
	i := strings.LastIndexAny(clock, "+-")
	if i <= 0 {
		return clock, ""
	}
	if _, ok := parseClockOffset(clock[i:]); !ok {
		return clock, ""
	}
	return clock[:i], clock[i:]
}
