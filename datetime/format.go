package datetime

import (
	"fmt"
	"strings"
)

// Format selects the representation returned by Read.
type Format string

const (
	// FormatISO returns an ISO 8601 string. The empty Format is FormatISO.
	FormatISO Format = "ISO"

	// FormatDatetime returns a types.DateTime.
	FormatDatetime Format = "datetime"

	// FormatDatetime64 returns a *types.Datetime64. The time zone is not
	// supported and is dropped.
	FormatDatetime64 Format = "datetime64"
)

// ParseFormat converts src to a Format. Matching is case-insensitive.
// Returns an error wrapping ErrFormat for unknown formats.
func ParseFormat(src string) (Format, error) {
	switch strings.ToLower(src) {
	case "", "iso":
		return FormatISO, nil
	case "datetime":
		return FormatDatetime, nil
	case "datetime64":
		return FormatDatetime64, nil
	default:
		return "", unknownFormat(src)
	}
}

// unknownFormat returns an error reporting that src is not a Format.
func unknownFormat[T ~string](src T) error {
	return fmt.Errorf(
		"%w %q: must be one of %q, %q or %q",
		ErrFormat, src, FormatISO, FormatDatetime, FormatDatetime64,
	)
}
