package datetime

import (
	"fmt"
	"math"
	"time"

	"github.com/hyperspy/hsdatetime/datetime/types"
	"go.uber.org/zap"
)

const secondsPerDay = 24 * 60 * 60

// unixEpochSerial is the serial date of 1970-01-01T00:00:00 UTC.
const unixEpochSerial = 25569

// epoch is the day zero of serial dates.
//
//nolint:gochecknoglobals
var epoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// SerialToTime converts serial, a number of days since 1899-12-30T00:00:00
// UTC, to an instant in the converter's location. The fraction of the day is
// rounded to the nearest second. serial must be finite.
func (c *Converter) SerialToTime(serial float64) time.Time {
	days := math.Floor(serial)
	secs := math.Round((serial - days) * secondsPerDay)
	return epoch.AddDate(0, 0, int(days)).
		Add(time.Duration(secs) * time.Second).
		In(c.loc)
}

// SerialToISO converts serial to the ISO 8601 date and time strings and the
// zone abbreviation of the instant in the converter's location, e.g.
// "2016-12-12", "07:12:12" and "EST". The zone is rendered as an offset, e.g.
// "+05:30", when the location has no abbreviation.
func (c *Converter) SerialToISO(serial float64) (string, string, string) {
	t := c.SerialToTime(serial)
	zone, off := t.Zone()
	if zone == "" {
		zone = types.FormatOffset(off)
	}
	ts := types.NewTimestamp(t)
	return ts.DatePart().String(), ts.TimePart().String(), zone
}

// ISOToSerial converts an ISO 8601 date and time in zone to a serial date.
// zone may be a named zone, an abbreviation of the converter's location or a
// fixed offset; "" and "Coordinated Universal Time" mean UTC. An offset in
// tim takes precedence over zone.
func (c *Converter) ISOToSerial(date, tim, zone string) (float64, error) {
	switch zone {
	case "", "Coordinated Universal Time":
		zone = "UTC"
	}

	dt, err := types.ParseTimestamp(date + "T" + tim)
	if err != nil {
		//nolint:wrapcheck // Parse errors are returned as is.
		return 0, err
	}

	ts, ok := dt.(*types.Timestamp)
	if !ok {
		c.logger.Debug("time carries an offset; ignoring time zone",
			zap.String("time", tim), zap.String("time_zone", zone))
		return ToSerial(dt.GoTime()), nil
	}

	tz, err := c.localize(date+"T"+tim, zone, ts)
	if err != nil {
		return 0, err
	}
	return ToSerial(tz.GoTime()), nil
}

// ISOToSerial converts an ISO 8601 date and time in zone to a serial date.
// See [Converter.ISOToSerial].
func ISOToSerial(date, tim, zone string) (float64, error) {
	return defaultConverter.ISOToSerial(date, tim, zone)
}

// SerialToTime converts serial to an instant in the local time zone. See
// [Converter.SerialToTime].
func SerialToTime(serial float64) time.Time {
	return defaultConverter.SerialToTime(serial)
}

// ToSerial converts t to a serial date: the number of whole days since
// 1899-12-30T00:00:00 UTC plus the elapsed fraction of the final day.
// Sub-second precision is dropped. Naive values are best represented as
// *types.Timestamp, whose time is UTC.
func ToSerial(t time.Time) float64 {
	days := types.NewDatetime64(t, types.UnitDay).Value
	secs := t.Unix() - days*secondsPerDay
	return float64(days+unixEpochSerial) + float64(secs)/secondsPerDay
}

// DateTimeToSerial converts dt to a serial date. A *types.Date converts at
// midnight UTC. Returns an error for times of day with no date.
func DateTimeToSerial(dt types.DateTime) (float64, error) {
	switch dt.(type) {
	case *types.Time, *types.TimeTZ:
		return 0, fmt.Errorf("%w: cannot convert time %v without a date to a serial date", ErrDateTime, dt)
	case nil:
		return 0, fmt.Errorf("%w: cannot convert nil to a serial date", ErrDateTime)
	}
	return ToSerial(dt.GoTime()), nil
}
