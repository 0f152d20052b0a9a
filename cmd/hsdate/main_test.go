package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// runCLI runs the CLI with args and returns its exit code and output.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func utcConfig(t *testing.T, dir string, extra string) string {
	t.Helper()
	return writeFile(t, dir, "config.yaml", "location: UTC\n"+extra)
}

func TestRunInfo(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	code, out, _ := runCLI(t, "version")
	a.Equal(0, code)
	a.Equal("hsdate version dev\n", out)

	code, out, _ = runCLI(t, "help")
	a.Equal(0, code)
	a.Contains(out, "hsdate read [flags] FILE")

	code, _, errOut := runCLI(t)
	a.Equal(1, code)
	a.Contains(errOut, "Usage:")

	code, _, errOut = runCLI(t, "frobnicate")
	a.Equal(1, code)
	a.Contains(errOut, "Unknown command: frobnicate")

	code, _, _ = runCLI(t, "read", "-h")
	a.Equal(0, code)
}

func TestRunWriteReadShow(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	dir := t.TempDir()
	doc := writeFile(t, dir, "signal.yaml", "General:\n  title: NIO EELS OK SHELL\n")

	code, _, errOut := runCLI(t, "write", doc, "2016-12-12T12:12:12-05:00")
	a.Equal(0, code, errOut)

	code, out, _ := runCLI(t, "read", doc)
	a.Equal(0, code)
	a.Equal("2016-12-12T12:12:12-05:00\n", out)

	code, out, _ = runCLI(t, "read", "-format", "datetime64", doc)
	a.Equal(0, code)
	a.Equal("2016-12-12T12:12:12\n", out)

	code, out, _ = runCLI(t, "show", doc)
	a.Equal(0, code)
	a.Equal("└── General\n"+
		"    ├── date = 2016-12-12\n"+
		"    ├── time = 12:12:12\n"+
		"    ├── time_zone = -05:00\n"+
		"    └── title = NIO EELS OK SHELL\n", out)

	// A zone-less value drops the stored zone.
	code, _, _ = runCLI(t, "write", doc, "1991-10-01T12:00:00")
	a.Equal(0, code)
	code, out, _ = runCLI(t, "read", doc)
	a.Equal(0, code)
	a.Equal("1991-10-01T12:00:00\n", out)

	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	a.NotContains(string(data), "time_zone")
}

func TestRunWriteNewFile(t *testing.T) {
	t.Parallel()
	doc := filepath.Join(t.TempDir(), "new.yaml")

	code, _, errOut := runCLI(t, "write", doc, "2016-12-12 12:12:12Z")
	require.Equal(t, 0, code, errOut)

	code, out, _ := runCLI(t, "read", "-format", "datetime", doc)
	assert.Equal(t, 0, code)
	assert.Equal(t, "2016-12-12T12:12:12+00:00\n", out)
}

func TestRunReadConfigFormat(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfg := utcConfig(t, dir, "format: datetime64\n")
	doc := writeFile(t, dir, "signal.yaml", "General:\n  date: 1991-10-01\n")

	code, out, _ := runCLI(t, "read", "-config", cfg, doc)
	assert.Equal(t, 0, code)
	assert.Equal(t, "1991-10-01\n", out)

	// The flag overrides the config.
	code, out, _ = runCLI(t, "read", "-config", cfg, "-format", "iso", doc)
	assert.Equal(t, 0, code)
	assert.Equal(t, "1991-10-01\n", out)
}

func TestRunReadUnquoted(t *testing.T) {
	t.Parallel()
	doc := writeFile(t, t.TempDir(), "signal.yaml",
		"General:\n  date: 1991-10-01\n  time: 12:00:00\n  time_zone: -300\n")

	code, out, errOut := runCLI(t, "read", doc)
	assert.Equal(t, 0, code, errOut)
	assert.Equal(t, "1991-10-01T12:00:00-05:00\n", out)
}

func TestRunReadAbsent(t *testing.T) {
	t.Parallel()
	doc := writeFile(t, t.TempDir(), "signal.yaml", "General:\n  title: nothing\n")

	code, out, _ := runCLI(t, "read", doc)
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestRunSerial(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	code, out, _ := runCLI(t, "serial", "-tz", "UTC", "42716.508472222224")
	a.Equal(0, code)
	a.Equal("2016-12-12 12:12:12 UTC\n", out)

	code, out, _ = runCLI(t, "serial", "-tz", "America/New_York", "42716.508472222224")
	a.Equal(0, code)
	a.Equal("2016-12-12 07:12:12 EST\n", out)

	code, out, _ = runCLI(t, "serial", "-tz", "+05:30", "--", "-0.25")
	a.Equal(0, code)
	a.Equal("1899-12-29 23:30:00 +05:30\n", out)

	cfg := utcConfig(t, t.TempDir(), "")
	code, out, _ = runCLI(t, "serial", "-config", cfg, "33512.5")
	a.Equal(0, code)
	a.Equal("1991-10-01 12:00:00 UTC\n", out)
}

func TestRunToSerial(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	code, out, _ := runCLI(t, "toserial", "1991-10-01", "12:00:00")
	a.Equal(0, code)
	a.Equal("33512.5\n", out)

	code, out, _ = runCLI(t, "toserial", "1991-10-01", "07:00:00", "-05:00")
	a.Equal(0, code)
	a.Equal("33512.5\n", out)

	code, out, _ = runCLI(t, "toserial", "1899-12-31", "00:00:00", "Coordinated Universal Time")
	a.Equal(0, code)
	a.Equal("1\n", out)
}

func newWorkbook(t *testing.T, dir string) string {
	t.Helper()
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	require.NoError(t, f.SetCellValue("Sheet1", "A1", 42716.508472222224))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", time.Date(1991, 10, 1, 12, 0, 0, 0, time.UTC)))
	require.NoError(t, f.SetCellValue("Sheet1", "A3", 0))
	path := filepath.Join(dir, "dates.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestRunCell(t *testing.T) {
	t.Parallel()
	a := assert.New(t)
	dir := t.TempDir()
	book := newWorkbook(t, dir)
	cfg := utcConfig(t, dir, "")

	code, out, errOut := runCLI(t, "cell", "-config", cfg, book, "Sheet1", "A1")
	a.Equal(0, code, errOut)
	a.Equal("2016-12-12T12:12:12+00:00\n", out)

	doc := filepath.Join(dir, "signal.yaml")
	code, out, errOut = runCLI(t, "cell", "-config", cfg, book, "Sheet1", "A2", doc)
	a.Equal(0, code, errOut)
	a.Equal("1991-10-01T12:00:00+00:00\n", out)

	code, out, _ = runCLI(t, "read", doc)
	a.Equal(0, code)
	a.Equal("1991-10-01T12:00:00+00:00\n", out)

	cfg1904 := writeFile(t, t.TempDir(), "config.yaml", "location: UTC\nuse_1904: true\n")
	code, out, errOut = runCLI(t, "cell", "-config", cfg1904, book, "Sheet1", "A3")
	a.Equal(0, code, errOut)
	a.Equal("1904-01-01T00:00:00+00:00\n", out)
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	doc := writeFile(t, dir, "signal.yaml", "General:\n  date: 1991-10-01\n  time: \"12:00:00\"\n")
	book := newWorkbook(t, dir)
	badCfg := writeFile(t, dir, "bad.yaml", "location: Atlantis\n")

	for _, tc := range []struct {
		name string
		args []string
		code int
		err  string
	}{
		{"read_usage", []string{"read"}, 2, "usage: hsdate read [flags] FILE"},
		{"write_usage", []string{"write", doc}, 2, "usage: hsdate write [flags] FILE VALUE"},
		{"serial_usage", []string{"serial"}, 2, "usage: hsdate serial"},
		{"toserial_usage", []string{"toserial", "1991-10-01"}, 2, "usage: hsdate toserial"},
		{"cell_usage", []string{"cell", book}, 2, "usage: hsdate cell"},
		{"show_usage", []string{"show"}, 2, "usage: hsdate show FILE"},
		{"bad_flag", []string{"read", "-nope", doc}, 1, "flag provided but not defined: -nope"},
		{"missing_file", []string{"read", filepath.Join(dir, "nope.yaml")}, 1, "failed to open metadata"},
		{"bad_format", []string{"read", "-format", "csv", doc}, 1, `datetime: format "csv"`},
		{"bad_config", []string{"read", "-config", badCfg, doc}, 1, `invalid location: parse: invalid time zone offset "Atlantis"`},
		{"bad_value", []string{"write", doc, "yesterday"}, 1, `parse: format is not recognized: "yesterday"`},
		{"bad_serial", []string{"serial", "noon"}, 1, `invalid serial date "noon"`},
		{"nan_serial", []string{"serial", "NaN"}, 1, `serial date "NaN" out of range`},
		{"bad_tz", []string{"serial", "-tz", "Atlantis", "1"}, 1, `invalid time zone offset "Atlantis"`},
		{"bad_zone", []string{"toserial", "1991-10-01", "12:00:00", "Atlantis"}, 1, `invalid time zone offset "Atlantis"`},
		{"empty_cell", []string{"cell", book, "Sheet1", "B9"}, 1, "cell Sheet1!B9 is empty"},
		{"no_sheet", []string{"cell", book, "Nope", "A1"}, 1, "get cell Nope!A1"},
		{"no_book", []string{"cell", filepath.Join(dir, "nope.xlsx"), "Sheet1", "A1"}, 1, "open workbook"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			code, out, errOut := runCLI(t, tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tc.err)
		})
	}

	// Failed writes leave the document untouched.
	data, err := os.ReadFile(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1991-10-01")
}

func TestParseSerial(t *testing.T) {
	t.Parallel()
	a := assert.New(t)

	serial, err := parseSerial("42716.5")
	a.NoError(err)
	a.Equal(42716.5, serial)

	serial, err = parseSerial("-1")
	a.NoError(err)
	a.Equal(-1.0, serial)

	_, err = parseSerial("+Inf")
	a.Error(err)
	_, err = parseSerial("1e10")
	a.Error(err)
}
