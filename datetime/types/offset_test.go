package types

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTZ(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

type zoneTestCase struct {
	test   string
	zone   string
	loc    *time.Location
	offset int
}

func zoneTestCases() []zoneTestCase {
	return []zoneTestCase{
		{"UTC", "UTC", loadTZ("UTC"), 0},
		{"empty", "UTC", loadTZ(""), 0},
		{"zero", "", time.FixedZone("", 0), 0},
		{"seven", "", time.FixedZone("", secondsPerHour*7), secondsPerHour * 7},
		{"neg_3", "", time.FixedZone("", secondsPerHour*-3), secondsPerHour * -3},
		{"America/New_York", "EDT", loadTZ("America/New_York"), secondsPerHour * -4},
		{"Asia/Tokyo", "JST", loadTZ("Asia/Tokyo"), secondsPerHour * 9},
		{"Africa/Nairobi", "EAT", loadTZ("Africa/Nairobi"), secondsPerHour * 3},
	}
}

func TestOffsetLocationForAndOnlyTimeFor(t *testing.T) {
	t.Parallel()

	for _, tc := range zoneTestCases() {
		t.Run(tc.test, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			// Create a time in the location.
			local := time.Date(2024, 6, 24, 10, 17, 32, 0, tc.loc)
			name, off := local.Zone()
			a.Equal(tc.zone, name)
			a.Equal(tc.offset, off)

			// Test offsetLocationFor
			loc := offsetLocationFor(local)
			a.Empty(loc.String())
			ts := time.Date(2024, 6, 24, 10, 17, 32, 0, loc)
			name, off = ts.Zone()
			a.Empty(name)
			a.Equal(tc.offset, off)

			// Test offsetOnlyTimeFor.
			ts = offsetOnlyTimeFor(local)
			name, off = ts.Zone()
			a.Empty(name)
			a.Equal(tc.offset, off)
		})
	}
}

func TestParseOffset(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		src    string
		offset int
	}{
		{"z", "Z", 0},
		{"lower_z", "z", 0},
		{"pos_h", "+05", 5 * secondsPerHour},
		{"neg_h", "-11", -11 * secondsPerHour},
		{"pos_hm", "+05:30", 5*secondsPerHour + 30*secondsPerMinute},
		{"neg_hm", "-05:00", -5 * secondsPerHour},
		{"pos_hhmm", "+0130", secondsPerHour + 30*secondsPerMinute},
		{"neg_hms", "-01:02:03", -(secondsPerHour + 2*secondsPerMinute + 3)},
		{"zero", "+00:00", 0},
		{"minutes", "-300", -5 * secondsPerHour},
		{"unsigned_minutes", "60", secondsPerHour},
		{"plus_minutes", "+90", 90 * secondsPerMinute},
		{"unsigned_four_digit_minutes", "1000", 1000 * secondsPerMinute},
		{"signed_four_digits_are_hhmm", "-1440", -(14*secondsPerHour + 40*secondsPerMinute)},
		{"neg_hhmm", "-1000", -10 * secondsPerHour},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)

			loc, err := ParseOffset(tc.src)
			require.NoError(t, err)
			_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
			a.Equal(tc.offset, off)
		})
	}
}

func TestParseOffsetInvalid(t *testing.T) {
	t.Parallel()

	for _, src := range []string{
		"", "EST", "+", "+24:00", "+05:60", "05:00", "+05:00:00:00",
		"+5:00", "1440", "-99999", "+2400", "+05:3", "++05",
	} {
		t.Run(src, func(t *testing.T) {
			t.Parallel()
			loc, err := ParseOffset(src)
			require.Nil(t, loc)
			require.EqualError(t, err, `parse: invalid time zone offset "`+src+`"`)
			require.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestMinuteOffset(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	for mins, exp := range map[int64]int{
		-300: -5 * secondsPerHour,
		0:    0,
		1000: 1000 * secondsPerMinute,
		1439: 1439 * secondsPerMinute,
	} {
		loc, err := MinuteOffset(mins)
		r.NoError(err)
		_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
		a.Equal(exp, off, mins)
	}

	loc, err := MinuteOffset(-1440)
	r.Nil(loc)
	r.EqualError(err, "parse: invalid time zone offset of -1440 minutes")
	r.ErrorIs(err, ErrParse)
}

func TestFormatOffset(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	a.Equal("+00:00", FormatOffset(0))
	a.Equal("-05:00", FormatOffset(-5*secondsPerHour))
	a.Equal("+05:30", FormatOffset(5*secondsPerHour+30*secondsPerMinute))
	a.Equal("+09:00", FormatOffset(9*secondsPerHour))
	a.Equal("-00:30", FormatOffset(-30*secondsPerMinute))
	a.Equal("+01:02:03", FormatOffset(secondsPerHour+2*secondsPerMinute+3))
}

func TestZoneName(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		loc  *time.Location
		exp  string
	}{
		{"utc", time.UTC, "UTC"},
		{"named", loadTZ("America/New_York"), "America/New_York"},
		{"abbrev_fixed", time.FixedZone("EST", -5*secondsPerHour), "EST"},
		{"offset", time.FixedZone("", -5*secondsPerHour), "-05:00"},
		{"zero_offset", time.FixedZone("", 0), "+00:00"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			ts := time.Date(2016, 12, 12, 12, 12, 12, 0, tc.loc)
			assert.Equal(t, tc.exp, ZoneName(ts))
		})
	}
}

func TestLoadZone(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	r := require.New(t)

	loc, err := LoadZone("Europe/Paris")
	r.NoError(err)
	a.Equal("Europe/Paris", loc.String())

	loc, err = LoadZone("-05:00")
	r.NoError(err)
	_, off := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	a.Equal(-5*secondsPerHour, off)

	loc, err = LoadZone("Not/A_Zone")
	r.Nil(loc)
	r.ErrorIs(err, ErrParse)
}

func TestSplitOffset(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		src    string
		clock  string
		offset string
	}{
		{"none", "12:12:12", "12:12:12", ""},
		{"neg_hm", "12:12:12-05:00", "12:12:12", "-05:00"},
		{"pos_hm", "12:12:12+01:00", "12:12:12", "+01:00"},
		{"pos_h", "12:12:12+01", "12:12:12", "+01"},
		{"neg_hhmm", "12:12:12-0530", "12:12:12", "-0530"},
		{"fraction", "12:12:12.123456+09:00", "12:12:12.123456", "+09:00"},
		{"z", "12:12:12Z", "12:12:12", "Z"},
		{"empty", "", "", ""},
		{"stray_hyphen", "12:12:12-x", "12:12:12-x", ""},
		{"leading_sign", "-05:00", "-05:00", ""},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a := assert.New(t)
			clock, offset := SplitOffset(tc.src)
			a.Equal(tc.clock, clock)
			a.Equal(tc.offset, offset)
		})
	}
}
