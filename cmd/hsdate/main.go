// Package main is the hsdate CLI entry point. It reads and writes the
// acquisition date and time of YAML metadata documents and converts
// spreadsheet serial dates.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/hyperspy/hsdatetime/datetime"
	"github.com/hyperspy/hsdatetime/datetime/types"
	"github.com/hyperspy/hsdatetime/internal/config"
	"github.com/hyperspy/hsdatetime/internal/logger"
	"github.com/hyperspy/hsdatetime/meta"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

var version = "dev"

// days1904 is the number of days from the 1900 to the 1904 date system.
const days1904 = 1462

// maxSerial bounds serial dates to about 2.7 million years around the epoch.
const maxSerial = 1e9

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// app carries the output streams of a command.
type app struct {
	stdout io.Writer
	stderr io.Writer
}

// run executes the command named by args[0] and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	a := &app{stdout: stdout, stderr: stderr}
	var err error
	switch command := args[0]; command {
	case "read":
		err = a.runRead(args[1:])
	case "write":
		err = a.runWrite(args[1:])
	case "serial":
		err = a.runSerial(args[1:])
	case "toserial":
		err = a.runToSerial(args[1:])
	case "cell":
		err = a.runCell(args[1:])
	case "show":
		err = a.runShow(args[1:])
	case "version", "--version", "-v":
		fmt.Fprintf(stdout, "hsdate version %s\n", version)
	case "help", "--help", "-h":
		printUsage(stdout)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	switch {
	case err == nil, errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "%v\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "hsdate %s: %v\n", args[0], err)
		return 1
	}
}

// flagSet creates the flag set of command with the common -config and
// -debug flags.
func (a *app) flagSet(command string) (*flag.FlagSet, *string, *bool) {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	configPath := fs.String("config", "", "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	return fs, configPath, debug
}

// env holds the state shared by commands after setup.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	conv   *datetime.Converter
}

// setup loads the config at configPath, or the defaults when it is empty,
// and builds the logger and converter.
func setup(configPath string, debug bool) (*env, error) {
	cfg := &config.Config{}
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return nil, err
		}
	} else {
		config.ApplyDefaults(cfg)
	}

	log, err := logger.New(cfg.Debug || debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	loc, err := cfg.TimeLocation()
	if err != nil {
		return nil, fmt.Errorf("invalid location: %w", err)
	}

	log.Debug("config loaded",
		zap.String("config_path", configPath),
		zap.String("location", loc.String()),
		zap.Bool("use_1904", cfg.Use1904),
	)

	return &env{
		cfg:    cfg,
		logger: log,
		conv:   datetime.New(datetime.WithLocation(loc), datetime.WithLogger(log)),
	}, nil
}

func (a *app) runRead(args []string) error {
	fs, configPath, debug := a.flagSet("read")
	format := fs.String("format", "", "output format: ISO, datetime or datetime64 (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: hsdate read [flags] FILE", errUsage)
	}

	e, err := setup(*configPath, *debug)
	if err != nil {
		return err
	}
	defer logger.Sync(e.logger)

	f, err := e.cfg.ReadFormat()
	if *format != "" {
		f, err = datetime.ParseFormat(*format)
	}
	if err != nil {
		return err
	}

	tree, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	val, err := e.conv.Read(tree, f)
	if err != nil {
		return err
	}
	if val == nil {
		e.logger.Info("no date or time", zap.String("path", fs.Arg(0)))
		return nil
	}
	fmt.Fprintln(a.stdout, val)
	return nil
}

func (a *app) runWrite(args []string) error {
	fs, configPath, debug := a.flagSet("write")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("%w: hsdate write [flags] FILE VALUE", errUsage)
	}

	e, err := setup(*configPath, *debug)
	if err != nil {
		return err
	}
	defer logger.Sync(e.logger)

	path := fs.Arg(0)
	tree, err := loadTree(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		e.logger.Info("creating metadata file", zap.String("path", path))
		tree = meta.New()
	case err != nil:
		return err
	}

	if _, err := e.conv.Write(fs.Arg(1), tree); err != nil {
		return err
	}
	return saveTree(path, tree)
}

func (a *app) runSerial(args []string) error {
	fs, configPath, debug := a.flagSet("serial")
	tz := fs.String("tz", "", "time zone of the output (default from config)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: hsdate serial [flags] [--] SERIAL", errUsage)
	}

	e, err := setup(*configPath, *debug)
	if err != nil {
		return err
	}
	defer logger.Sync(e.logger)

	serial, err := parseSerial(fs.Arg(0))
	if err != nil {
		return err
	}

	conv := e.conv
	if *tz != "" {
		loc, err := types.LoadZone(*tz)
		if err != nil {
			return err
		}
		conv = datetime.New(datetime.WithLocation(loc), datetime.WithLogger(e.logger))
	}

	date, tim, zone := conv.SerialToISO(serial)
	fmt.Fprintln(a.stdout, date, tim, zone)
	return nil
}

func (a *app) runToSerial(args []string) error {
	fs, configPath, debug := a.flagSet("toserial")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 || fs.NArg() > 3 {
		return fmt.Errorf("%w: hsdate toserial [flags] DATE TIME [ZONE]", errUsage)
	}

	e, err := setup(*configPath, *debug)
	if err != nil {
		return err
	}
	defer logger.Sync(e.logger)

	serial, err := e.conv.ISOToSerial(fs.Arg(0), fs.Arg(1), fs.Arg(2))
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, strconv.FormatFloat(serial, 'f', -1, 64))
	return nil
}

func (a *app) runCell(args []string) error {
	fs, configPath, debug := a.flagSet("cell")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 3 || fs.NArg() > 4 {
		return fmt.Errorf("%w: hsdate cell [flags] XLSX SHEET CELL [FILE]", errUsage)
	}

	e, err := setup(*configPath, *debug)
	if err != nil {
		return err
	}
	defer logger.Sync(e.logger)

	serial, err := readCell(fs.Arg(0), fs.Arg(1), fs.Arg(2))
	if err != nil {
		return err
	}
	if e.cfg.Use1904 {
		serial += days1904
	}
	e.logger.Debug("read cell",
		zap.String("sheet", fs.Arg(1)),
		zap.String("cell", fs.Arg(2)),
		zap.Float64("serial", serial),
	)

	t := e.conv.SerialToTime(serial)
	fmt.Fprintln(a.stdout, types.NewTimestampTZ(t))

	if fs.NArg() < 4 {
		return nil
	}
	path := fs.Arg(3)
	tree, err := loadTree(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		tree = meta.New()
	case err != nil:
		return err
	}
	if _, err := e.conv.Write(t, tree); err != nil {
		return err
	}
	return saveTree(path, tree)
}

func (a *app) runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: hsdate show FILE", errUsage)
	}

	tree, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Fprint(a.stdout, tree)
	return nil
}

// parseSerial parses src as a serial date.
func parseSerial(src string) (float64, error) {
	serial, err := strconv.ParseFloat(src, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid serial date %q: %w", src, err)
	}
	if math.IsNaN(serial) || math.Abs(serial) > maxSerial {
		return 0, fmt.Errorf("serial date %q out of range", src)
	}
	return serial, nil
}

// readCell returns the raw numeric value of cell in sheet of the workbook at
// path.
func readCell(path, sheet, cell string) (float64, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	raw, err := f.GetCellValue(sheet, cell, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, fmt.Errorf("get cell %s!%s: %w", sheet, cell, err)
	}
	if raw == "" {
		return 0, fmt.Errorf("cell %s!%s is empty", sheet, cell)
	}
	return parseSerial(raw)
}

// loadTree loads the metadata document at path.
func loadTree(path string) (*meta.Tree, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open metadata: %w", err)
	}
	defer file.Close()
	//nolint:wrapcheck
	return meta.Load(file)
}

// saveTree writes tree to path.
func saveTree(path string, tree *meta.Tree) error {
	var buf bytes.Buffer
	if err := tree.Save(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `hsdate - Read and write acquisition dates in metadata

Usage:
  hsdate read [flags] FILE                   Print the date and time of FILE
  hsdate write [flags] FILE VALUE            Store an ISO 8601 date and time in FILE
  hsdate serial [flags] [--] SERIAL          Convert a serial date to date, time and zone
  hsdate toserial [flags] DATE TIME [ZONE]   Convert a date and time to a serial date
  hsdate cell [flags] XLSX SHEET CELL [FILE] Convert a spreadsheet date cell, optionally storing it in FILE
  hsdate show FILE                           Print the metadata tree of FILE
  hsdate version                             Show version
  hsdate help                                Show this help

Flags:
  --config string    Config file path
  --debug            Enable debug logging

Read Flags:
  --format string    ISO, datetime or datetime64 (default from config, or ISO)

Serial Flags:
  --tz string        Time zone of the output (default from config, or the local zone)

FILE is a YAML metadata document. The date and time are stored in
General.date, General.time and General.time_zone.
`)
}
