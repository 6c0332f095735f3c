package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/safermobility/sdpcodec/pionsdp"
	"github.com/safermobility/sdpcodec/sdp"
	"github.com/safermobility/sdpcodec/util"
	"golang.org/x/exp/slog"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("sdpfmt", flag.ContinueOnError)
	flags.SetOutput(stderr)
	strict := flags.Bool("strict", false, "Fail on unknown line types and attributes")
	verbose := flags.Bool("v", false, "Log skipped lines to stderr")
	usePion := flags.Bool("pion", false, "Encode the output with pion/sdp instead of the canonical formatter")
	noGeneric := flags.Bool("no-generic", false, "Drop attributes that have no registered parser")

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sdpfmt [flags] [input-file]\n\n")
		fmt.Fprintf(stderr, "Reads an SDP document (stdin when no file is given) and prints its canonical form\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() > 1 {
		fmt.Fprintf(stderr, "Error: at most one input file\n\n")
		flags.Usage()
		return 2
	}

	level := slog.LevelError
	if *verbose {
		level = slog.LevelWarn
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	input := stdin
	if flags.NArg() == 1 {
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			logger.Error("unable to open input", util.SlogError(err))
			return 1
		}
		defer f.Close()
		input = f
	}

	data, err := io.ReadAll(input)
	if err != nil {
		logger.Error("unable to read input", util.SlogError(err))
		return 1
	}

	parsed, err := sdp.Parse(normalizeNewlines(string(data)),
		sdp.WithStrict(*strict),
		sdp.WithGenericAttributes(!*noGeneric),
		sdp.WithGroupLogger(logger, "sdp"),
	)
	if parsed == nil {
		logger.Error("unable to parse sdp", util.SlogError(err))
		return 1
	}

	var out []byte
	if *usePion {
		out, err = pionsdp.Marshal(parsed)
	} else {
		out, err = parsed.Marshal()
	}
	if err != nil {
		logger.Error("unable to format sdp", util.SlogError(err))
		return 1
	}

	if _, err := stdout.Write(out); err != nil {
		logger.Error("unable to write output", util.SlogError(err))
		return 1
	}
	return 0
}

// Files saved by editors usually have bare LF line endings.
func normalizeNewlines(s string) string {
	if strings.Contains(s, "\r\n") {
		return s
	}
	return strings.ReplaceAll(s, "\n", "\r\n")
}
