package datetime

import (
	"fmt"
	"strings"
	"time"

	"github.com/hyperspy/hsdatetime/datetime/types"
	"go.uber.org/zap"
)

// Write stores the date and time of value in tree and returns tree. value
// may be:
//
//   - string: an ISO 8601 date and time joined by "T" or a space, with an
//     optional offset such as "Z" or "-05:00". The date and time are stored
//     as written; the offset becomes the time zone, with "Z" stored as "UTC"
//   - time.Time: stored with the zone name of its location
//   - *types.Timestamp: stored without a time zone
//   - *types.TimestampTZ: stored with the name of its zone
//   - *types.Datetime64: stored as UTC wall clock without a time zone
//
// When value has no time zone, a General.time_zone left in tree is deleted.
// Returns an error for values without both a date and a time.
func (c *Converter) Write(value any, tree Tree) (Tree, error) {
	date, tim, zone, err := split(value)
	if err != nil {
		return nil, err
	}

	if err := tree.SetItem(DatePath, date); err != nil {
		return nil, fmt.Errorf("failed to write date: %w", err)
	}
	if err := tree.SetItem(TimePath, tim); err != nil {
		return nil, fmt.Errorf("failed to write time: %w", err)
	}

	switch {
	case zone != "":
		if err := tree.SetItem(TimeZonePath, zone); err != nil {
			return nil, fmt.Errorf("failed to write time zone: %w", err)
		}
	case tree.HasItem(TimeZonePath):
		c.logger.Debug("deleting stale time zone", zap.String("date", date), zap.String("time", tim))
		if err := tree.DeleteItem(TimeZonePath); err != nil {
			return nil, fmt.Errorf("failed to delete time zone: %w", err)
		}
	}

	return tree, nil
}

// split returns the date, time and zone strings to store for value.
func split(value any) (string, string, string, error) {
	switch value := value.(type) {
	case string:
		return splitISO(value)
	case time.Time:
		return splitTime(value, types.ZoneName(value))
	case *types.Timestamp:
		return splitTime(value.Time, "")
	case *types.TimestampTZ:
		return splitTime(value.Time, value.ZoneName())
	case *types.Datetime64:
		return splitTime(value.Time(), "")
	case types.DateTime:
		return "", "", "", incomplete(value)
	default:
		return "", "", "", fmt.Errorf(
			"%w: cannot write %T: must be an ISO 8601 string or a date and time",
			ErrDateTime, value,
		)
	}
}

// incomplete returns the error for a value lacking a date or a time.
func incomplete(dt types.DateTime) error {
	return fmt.Errorf("%w: cannot write %T %v: need a date and a time", ErrDateTime, dt, dt)
}

// splitTime formats the date and time of t in its own location.
func splitTime(t time.Time, zone string) (string, string, string, error) {
	ts := types.NewTimestamp(t)
	return ts.DatePart().String(), ts.TimePart().String(), zone, nil
}

// splitISO splits an ISO 8601 date and time into its date, time and offset
// parts after validating it.
func splitISO(src string) (string, string, string, error) {
	dt, err := types.Parse(src)
	if err != nil {
		//nolint:wrapcheck // Parse errors are returned as is.
		return "", "", "", err
	}
	switch dt.(type) {
	case *types.Timestamp, *types.TimestampTZ:
	default:
		return "", "", "", incomplete(dt)
	}

	date, clock, ok := strings.Cut(src, "T")
	if !ok {
		date, clock, _ = strings.Cut(src, " ")
	}

	tim, offset := types.SplitOffset(clock)
	switch offset {
	case "Z", "z":
		offset = "UTC"
	}
	return date, tim, offset, nil
}
