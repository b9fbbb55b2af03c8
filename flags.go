package main

import (
	"flag"
	"fmt"
	"io"

	"pansyslog.io/config"
	panerrors "pansyslog.io/internal/errors"
	"pansyslog.io/internal/render"
)

const usageHeader = `pan-syslog-parser: parse PAN syslog messages for analysis.

Usage:
  pan-syslog-parser -f <file|-> [options]

Environment variables (PAN_INPUT_FILE, PAN_OUTPUT_MODE, ...) and a .env file
supply defaults; flags override them.

Options:
`

// parseFlags overlays command line flags onto cfg. At most one of the
// output mode flags may be given.
func parseFlags(cfg *config.Config, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("pan-syslog-parser", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usageHeader)
		fs.PrintDefaults()
	}

	input := fs.String("f", cfg.InputPath, "Input file (required). Use - for standard input")
	output := fs.String("o", cfg.OutputPath, "Output file - default is standard output")
	parquetPath := fs.String("P", cfg.ParquetPath, "Also export decoded fields to this Parquet file")
	presetA := fs.Bool("j", false, "Limit output to fields "+render.PresetA.String())
	presetB := fs.Bool("J", false, "Limit output to fields "+render.PresetB.String())
	fields := fs.String("F", "", "Limit output to user defined fields, e.g. 7,8,30,25,31")
	color := fs.Bool("c", cfg.Color, "Enable color output")
	noTag := fs.Bool("t", !cfg.Tag, "Do not tag output with header and footer fields")
	timestamps := fs.Bool("T", cfg.Timestamps, "Print start and finish times to standard error")
	ipinfo := fs.Bool("s", false, "Print ipinfo.io lookup commands for the external address")
	internal := fs.Bool("int", false, "Print a list of internal IP addresses")
	external := fs.Bool("ext", false, "Print a list of external IP addresses")
	envelope := fs.Bool("envelope", cfg.StripEnvelope, "Strip a leading RFC3164 syslog header from each line")
	strict := fs.Bool("strict", cfg.StrictLength, "Skip lines with more values than their schema")
	workers := fs.Int("workers", cfg.ParserWorkers, "Decoder workers (0 = one per CPU)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected argument %q: %w", fs.Arg(0), panerrors.ErrInvalidConfig)
	}

	var modes []render.Mode
	if *presetA {
		modes = append(modes, render.ModePresetA)
	}
	if *presetB {
		modes = append(modes, render.ModePresetB)
	}
	if *fields != "" {
		modes = append(modes, render.ModeFields)
	}
	if *ipinfo {
		modes = append(modes, render.ModeIPInfo)
	}
	if *internal {
		modes = append(modes, render.ModeZoneInternal)
	}
	if *external {
		modes = append(modes, render.ModeZoneExternal)
	}
	switch len(modes) {
	case 0:
	case 1:
		cfg.OutputMode = modes[0].String()
		cfg.Fields = *fields
	default:
		return fmt.Errorf("only one of -j, -J, -F, -s, -int, -ext may be given: %w", panerrors.ErrInvalidConfig)
	}

	cfg.InputPath = *input
	cfg.OutputPath = *output
	cfg.ParquetPath = *parquetPath
	cfg.Color = *color
	cfg.Tag = !*noTag
	cfg.Timestamps = *timestamps
	cfg.StripEnvelope = *envelope
	cfg.StrictLength = *strict
	cfg.ParserWorkers = *workers
	return nil
}
