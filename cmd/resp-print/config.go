package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

const (
	versionRESP2 = "resp2"
	versionRESP3 = "resp3"

	formatText = "text"
	formatYAML = "yaml"

	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

var errHelp = errors.New("help requested")

type config struct {
	version string
	format  string
	color   string
	raw     bool
	verbose bool
	input   string
}

func oneOf(name, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid value %q for flag -%s: must be one of %q", value, name, allowed)
}

func parseConfig(args []string, output io.Writer) (config, error) {
	var cfg config

	fs := flag.NewFlagSet("resp-print", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		_, _ = fmt.Fprintln(fs.Output(), "Usage: resp-print [flags] [file|-]")
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.version, "version", versionRESP3, "protocol `version` of the input (resp2 or resp3)")
	fs.StringVar(&cfg.format, "format", formatText, "output `format` (text or yaml)")
	fs.StringVar(&cfg.color, "color", colorAuto, "colorize text output (auto, always or never)")
	fs.BoolVar(&cfg.raw, "raw", false, "decode the input as is while reading it, without normalizing line endings")
	fs.BoolVar(&cfg.verbose, "v", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, errHelp
		}
		return cfg, err
	}

	switch fs.NArg() {
	case 0:
	case 1:
		cfg.input = fs.Arg(0)
	default:
		return cfg, fmt.Errorf("expected at most one input file, got %d", fs.NArg())
	}

	if err := errors.Join(
		oneOf("version", cfg.version, versionRESP2, versionRESP3),
		oneOf("format", cfg.format, formatText, formatYAML),
		oneOf("color", cfg.color, colorAuto, colorAlways, colorNever),
	); err != nil {
		return cfg, err
	}

	return cfg, nil
}
