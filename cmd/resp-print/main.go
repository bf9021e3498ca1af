// Command resp-print decodes RESP2 or RESP3 data and prints the decoded values.
//
// Usage:
//
//	resp-print [-version resp2|resp3] [-format text|yaml] [-color auto|always|never] [-raw] [-v] [file|-]
//
// By default the whole input is read into memory and all line endings are normalized to \r\n before decoding, which
// allows decoding hand written files. With -raw the input is decoded as is while it is read.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/colorprofile"

	"github.com/nussjustin/resp"
	"github.com/nussjustin/resp/resp2"
	"github.com/nussjustin/resp/resp3"
	"github.com/nussjustin/resp/stream"
)

type printer interface {
	Print(n node) error
	Close() error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseConfig(args, stderr)
	if errors.Is(err, errHelp) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	in := stdin
	if cfg.input != "" && cfg.input != "-" {
		f, err := os.Open(cfg.input)
		if err != nil {
			logger.Error("failed to open input", "path", cfg.input, "error", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	p := newPrinter(cfg, stdout)

	switch cfg.version {
	case versionRESP2:
		err = process(cfg, logger, in, p, resp2.Decode, fromRESP2)
	default:
		err = process(cfg, logger, in, p, resp3.Decode, fromRESP3)
	}
	if cerr := p.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		logger.Error("failed to print input", "version", cfg.version, "error", err)
		return 1
	}
	return 0
}

func newPrinter(cfg config, stdout io.Writer) printer {
	if cfg.format == formatYAML {
		return newYAMLPrinter(stdout)
	}

	w := colorprofile.NewWriter(stdout, os.Environ())
	switch cfg.color {
	case colorNever:
		w.Profile = colorprofile.NoTTY
	case colorAlways:
		switch w.Profile {
		case colorprofile.TrueColor, colorprofile.ANSI256, colorprofile.ANSI:
		default:
			w.Profile = colorprofile.ANSI
		}
	}
	return newTextPrinter(w)
}

// normalize replaces all line endings in b with \r\n.
func normalize(b []byte) []byte {
	b = bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(b, []byte("\n"), []byte("\r\n"))
}

func process[V any](cfg config, logger *slog.Logger, in io.Reader, p printer, decode stream.DecodeFunc[V], convert func(V) node) error {
	if cfg.raw {
		return processStream(logger, in, p, decode, convert)
	}

	b, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	b = normalize(b)

	for offset := 0; offset < len(b); {
		rest, v, err := decode(b[offset:])
		if errors.Is(err, resp.ErrIncomplete) {
			logger.Warn("ignoring incomplete value at end of input", "offset", offset, "bytes", len(b)-offset)
			return nil
		}
		if err != nil {
			return fmt.Errorf("offset %d: %w", offset, err)
		}

		logger.Debug("decoded value", "offset", offset, "size", len(b)-offset-len(rest))
		offset = len(b) - len(rest)

		if err := p.Print(convert(v)); err != nil {
			return fmt.Errorf("failed to print value: %w", err)
		}
	}
	return nil
}

func processStream[V any](logger *slog.Logger, in io.Reader, p printer, decode stream.DecodeFunc[V], convert func(V) node) error {
	rr := stream.NewReader[V](in, decode)

	for values := 0; ; values++ {
		v, err := rr.Next()
		switch {
		case errors.Is(err, io.EOF):
			logger.Debug("reached end of input", "values", values)
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			logger.Warn("ignoring incomplete value at end of input", "values", values, "bytes", rr.Buffered())
			return nil
		case err != nil:
			return fmt.Errorf("value %d: %w", values, err)
		}

		logger.Debug("decoded value", "index", values, "buffered", rr.Buffered())

		if err := p.Print(convert(v)); err != nil {
			return fmt.Errorf("failed to print value: %w", err)
		}
	}
}
