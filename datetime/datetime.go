// Package datetime reads and writes the date and time of a unit of
// scientific data stored in its metadata tree, and converts between ISO 8601
// strings, native values and spreadsheet serial dates.
//
// Metadata stores the acquisition instant in three independent fields:
//
//	General.date       "1991-10-01"
//	General.time       "12:00:00"
//	General.time_zone  "America/New_York", "EST" or "-05:00" (optional)
//
// [Read] combines them into an ISO 8601 string, a [types.DateTime] or a
// [types.Datetime64]; [Write] splits a value back into the fields. Missing
// fields are not an error: with neither date nor time Read returns nil.
//
// Serial dates count days since 1899-12-30T00:00:00 UTC, the epoch used by
// spreadsheets, with the time of day as the fractional part.
package datetime

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Metadata paths of the date and time fields.
const (
	DatePath     = "General.date"
	TimePath     = "General.time"
	TimeZonePath = "General.time_zone"
)

var (
	// ErrDateTime wraps invalid argument errors returned by the datetime
	// package. Parse errors are returned unwrapped from the types package.
	ErrDateTime = errors.New("datetime")

	// ErrFormat errors denote an unrecognized output format.
	ErrFormat = fmt.Errorf("%w: format", ErrDateTime)
)

// Tree defines the metadata tree operations used by the converter. Paths are
// dotted, e.g. "General.date". [github.com/hyperspy/hsdatetime/meta.Tree]
// implements it.
type Tree interface {
	// HasItem returns true if path exists.
	HasItem(path string) bool

	// GetItem returns the value at path and true, or false if it does not
	// exist.
	GetItem(path string) (any, bool)

	// SetItem stores value at path, creating parents as needed.
	SetItem(path string, value any) error

	// DeleteItem removes path.
	DeleteItem(path string) error
}

// Converter converts date and time values to and from metadata. A Converter
// is immutable and safe for concurrent use.
type Converter struct {
	loc    *time.Location
	logger *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLocation sets the time zone in which SerialToISO renders serial dates.
// Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(c *Converter) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Converter configured by opts.
func New(opts ...Option) *Converter {
	c := &Converter{loc: time.Local, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the time zone used by SerialToISO.
func (c *Converter) Location() *time.Location {
	return c.loc
}

// defaultConverter backs the package-level functions.
//
//nolint:gochecknoglobals
var defaultConverter = New()

// Read reads the date and time from tree in format. See [Converter.Read].
func Read(tree Tree, format Format) (any, error) {
	return defaultConverter.Read(tree, format)
}

// Write writes value into tree. See [Converter.Write].
func Write(value any, tree Tree) (Tree, error) {
	return defaultConverter.Write(value, tree)
}

// SerialToISO converts serial to date, time and zone strings in the local
// time zone. See [Converter.SerialToISO].
func SerialToISO(serial float64) (string, string, string) {
	return defaultConverter.SerialToISO(serial)
}
