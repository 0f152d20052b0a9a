package datetime

import (
	"fmt"
	"math"
	"time"

	"github.com/hyperspy/hsdatetime/datetime/types"
	"go.uber.org/zap"
)

// Read reads the date and time from tree in format:
//
//   - FormatISO (or ""): an ISO 8601 string such as "1991-10-01T12:00:00"
//   - FormatDatetime: a types.DateTime
//   - FormatDatetime64: a *types.Datetime64
//
// Returns nil and no error if tree has neither a date nor a time. Returns an
// error wrapping ErrFormat for any other format. See [Converter.ReadDateTime]
// and [Converter.ReadDatetime64] for how the fields combine.
func (c *Converter) Read(tree Tree, format Format) (any, error) {
	switch format {
	case FormatISO, "":
		iso, ok, err := c.ReadISO(tree)
		if err != nil || !ok {
			return nil, err
		}
		return iso, nil
	case FormatDatetime:
		dt, err := c.ReadDateTime(tree)
		if err != nil || dt == nil {
			return nil, err
		}
		return dt, nil
	case FormatDatetime64:
		d, err := c.ReadDatetime64(tree)
		if err != nil || d == nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, unknownFormat(format)
	}
}

// ReadISO reads the date and time from tree as an ISO 8601 string. Returns
// false if tree has neither a date nor a time.
func (c *Converter) ReadISO(tree Tree) (string, bool, error) {
	dt, err := c.ReadDateTime(tree)
	if err != nil || dt == nil {
		return "", false, err
	}
	return dt.String(), true, nil
}

// ReadDateTime reads the date and time from tree.
//
// With both General.date and General.time it returns a *types.Timestamp, or
// a *types.TimestampTZ when General.time_zone is set or the time carries an
// offset. The zone is resolved first as a named zone, then as a fixed offset
// such as "-05:00" or "-300" (minutes). A numeric zone is always minutes.
// With only a time it returns a *types.Time or *types.TimeTZ, and with only a
// date a *types.Date; the zone is ignored. Returns nil and no error when neither is set.
//
// Parse errors are returned unwrapped and wrap types.ErrParse.
func (c *Converter) ReadDateTime(tree Tree) (types.DateTime, error) {
	date, tim, zone, err := fields(tree)
	if err != nil {
		return nil, err
	}

	switch {
	case date != "" && tim != "":
		return c.combine(date, tim, zone)
	case tim != "":
		//nolint:wrapcheck // Parse errors are returned as is.
		return types.ParseTime(tim)
	case date != "":
		d, err := types.ParseDate(date)
		if err != nil {
			//nolint:wrapcheck // Parse errors are returned as is.
			return nil, err
		}
		return d, nil
	default:
		return nil, nil
	}
}

// ReadDatetime64 reads the date and time from tree as a *types.Datetime64
// built from the raw General.date and General.time strings. Datetime64 has no
// time zone: General.time_zone is ignored and an offset in General.time is
// converted to UTC. A date alone yields a day value. Returns an error if
// tree has a time but no date, and nil if it has neither.
func (c *Converter) ReadDatetime64(tree Tree) (*types.Datetime64, error) {
	date, tim, zone, err := fields(tree)
	if err != nil {
		return nil, err
	}
	if zone != "" {
		c.logger.Debug("datetime64 does not support time zones; dropping it",
			zap.String("time_zone", zone))
	}

	switch {
	case date == "" && tim == "":
		return nil, nil
	case date == "":
		return nil, fmt.Errorf(
			"%w: cannot build a datetime64 from time %q without a date",
			ErrDateTime, tim,
		)
	case tim == "":
		//nolint:wrapcheck // Parse errors are returned as is.
		return types.ParseDatetime64(date)
	default:
		//nolint:wrapcheck // Parse errors are returned as is.
		return types.ParseDatetime64(date + "T" + tim)
	}
}

// combine parses date and time into a timestamp in zone.
func (c *Converter) combine(date, tim, zone string) (types.DateTime, error) {
	src := date + "T" + tim
	dt, err := types.ParseTimestamp(src)
	if err != nil {
		//nolint:wrapcheck // Parse errors are returned as is.
		return nil, err
	}
	if zone == "" {
		return dt, nil
	}

	ts, ok := dt.(*types.Timestamp)
	if !ok {
		c.logger.Debug("time carries an offset; ignoring time zone",
			zap.String("time", tim), zap.String("time_zone", zone))
		return dt, nil
	}

	return c.localize(src, zone, ts)
}

// localize interprets ts, parsed from src, in zone. zone is resolved as a
// named zone, then as a fixed offset appended to src.
func (c *Converter) localize(src, zone string, ts *types.Timestamp) (types.DateTime, error) {
	if tz, ok := c.namedZone(zone, ts); ok {
		return tz, nil
	}

	c.logger.Debug("unknown time zone name; trying fixed offset",
		zap.String("time_zone", zone))
	off, err := types.ParseOffset(zone)
	if err != nil {
		//nolint:wrapcheck // Parse errors are returned as is.
		return nil, err
	}
	_, secs := ts.InLocation(off).Zone()
	//nolint:wrapcheck // Parse errors are returned as is.
	return types.ParseTimestamp(src + types.FormatOffset(secs))
}

// namedZone interprets ts in the time zone database zone name. The
// abbreviation of the converter's location in effect at the wall clock of
// ts, such as "EDT" for America/New_York in summer, also resolves to that
// location. A repeated wall clock takes the reading whose abbreviation
// matches, and standard time for a zone name.
func (c *Converter) namedZone(name string, ts *types.Timestamp) (*types.TimestampTZ, bool) {
	if loc, err := time.LoadLocation(name); err == nil {
		return ts.InLocation(loc), true
	}
	for _, tz := range ts.Readings(c.loc) {
		if abbr, _ := tz.Zone(); abbr == name {
			return tz, true
		}
	}
	return nil, false
}

// fields returns the date, time and time zone strings stored in tree. Absent
// and empty fields are returned as empty strings.
func fields(tree Tree) (string, string, string, error) {
	date, err := stringItem(tree, DatePath)
	if err != nil {
		return "", "", "", err
	}
	tim, err := stringItem(tree, TimePath)
	if err != nil {
		return "", "", "", err
	}
	zone, err := zoneItem(tree)
	if err != nil {
		return "", "", "", err
	}
	return date, tim, zone, nil
}

// zoneItem returns the time zone stored in tree. A number is a fixed offset
// in minutes east of UTC and is returned formatted, e.g. -300 as "-05:00".
func zoneItem(tree Tree) (string, error) {
	val, _ := tree.GetItem(TimeZonePath)
	var mins int64
	switch val := val.(type) {
	case int:
		mins = int64(val)
	case int64:
		mins = val
	case float64:
		if val != math.Trunc(val) || math.Abs(val) >= math.MaxInt32 {
			return "", fmt.Errorf("%w: %v is %v, not a whole number of minutes", ErrDateTime, TimeZonePath, val)
		}
		mins = int64(val)
	default:
		return stringItem(tree, TimeZonePath)
	}

	loc, err := types.MinuteOffset(mins)
	if err != nil {
		//nolint:wrapcheck // Parse errors are returned as is.
		return "", err
	}
	_, secs := time.Date(2000, 1, 1, 0, 0, 0, 0, loc).Zone()
	return types.FormatOffset(secs), nil
}

// stringItem returns the string stored at path, or "" if path is absent.
func stringItem(tree Tree, path string) (string, error) {
	if !tree.HasItem(path) {
		return "", nil
	}
	val, _ := tree.GetItem(path)
	switch val := val.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case Tree:
		return "", fmt.Errorf("%w: %v is a node, not a string", ErrDateTime, path)
	case time.Time:
		return timeItem(path, val), nil
	case fmt.Stringer:
		return val.String(), nil
	default:
		return "", fmt.Errorf("%w: %v is %T, not a string", ErrDateTime, path, val)
	}
}

// timeItem formats t as the field at path.
func timeItem(path string, t time.Time) string {
	switch path {
	case DatePath:
		return types.NewDate(t).String()
	case TimePath:
		return types.NewTime(t).String()
	default:
		return types.ZoneName(t)
	}
}
