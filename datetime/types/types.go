// Package types provides the date and time value types stored in and read
// from scientific metadata.
//
// Each type wraps [time.Time] and renders itself in the ISO 8601 form used by
// metadata documents: dates as "2006-01-02", times as "15:04:05" with an
// optional fraction and offset, and timestamps joining the two with "T".
// Values without a time zone keep their wall clock in UTC.
package types

import (
	"errors"
	"time"
)

// ErrParse wraps errors returned by the types package.
var ErrParse = errors.New("parse")

const (
	// secondsPerMinute contains the number of seconds in a minute.
	secondsPerMinute = 60

	// secondsPerHour contains the number of seconds in an hour (excluding leap
	// seconds).
	secondsPerHour = 60 * secondsPerMinute

	// secondsPerDay contains the number of seconds in a day (excluding leap
	// seconds).
	secondsPerDay = 24 * secondsPerHour
)

// DateTime defines the interface for all date and time data types.
type DateTime interface {
	// GoTime returns the underlying time.Time object.
	GoTime() time.Time

	// String returns the canonical ISO 8601 representation.
	String() string
}
