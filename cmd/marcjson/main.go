package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/thms-rmb/marcXmlToJson/encoding/json"
	"github.com/thms-rmb/marcXmlToJson/encoding/marcxml"
	"github.com/thms-rmb/marcXmlToJson/internal/format"
	"github.com/thms-rmb/marcXmlToJson/internal/input"
	"github.com/thms-rmb/marcXmlToJson/internal/logging"
	"github.com/thms-rmb/marcXmlToJson/marc"
	"github.com/thms-rmb/marcXmlToJson/transcode"
)

// inputPath is read from the working directory.
const inputPath = "records.xml"

// CLI is the command line of marcjson.
var CLI struct {
	Indented  bool   `short:"i" help:"Pretty-print the JSON output."`
	Color     string `enum:"auto,always,never" default:"auto" help:"Colorize output: auto, always, never."`
	Reader    string `enum:"xml,xpath" default:"xml" help:"Record reader: xml (token decoder) or xpath (stream parser)."`
	LogLevel  string `name:"log-level" enum:"debug,info,warn,error" default:"warn" help:"Log level for messages on stderr."`
	LogFormat string `name:"log-format" enum:"text,json" default:"text" help:"Log format: text or json."`
}

func main() {
	// Do not handle SIGPIPE, we'll do it ourselves (see error handling at the bottom of main).
	signal.Ignore(syscall.SIGPIPE)

	kong.Parse(&CLI,
		kong.Name("marcjson"),
		kong.Description("Convert the MARCXML records in "+inputPath+" (optionally gzip or xz compressed) to a JSON array on stdout."),
		kong.UsageOnError(),
	)

	// Both values are checked by kong's enum tags.
	level, _ := logging.ParseLevel(CLI.LogLevel)
	logFormat, _ := logging.ParseFormat(CLI.LogFormat)
	logging.InitLogger(os.Stderr, level, logFormat)
	logger := logging.GetLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := os.Open(inputPath)
	if err != nil {
		logger.Error("cannot open input", "path", inputPath, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	in, compression, err := input.NewReader(f)
	if err != nil {
		logger.Error("cannot read input", "path", inputPath, "error", err)
		os.Exit(1)
	}
	defer in.Close()
	logger.Debug("input opened", "path", inputPath, "compression", compression)

	reader, err := newReader(CLI.Reader, in)
	if err != nil {
		logger.Error("cannot create reader", "reader", CLI.Reader, "error", err)
		os.Exit(1)
	}

	colorizer := chooseColorizer(CLI.Color, isatty.IsTerminal(os.Stdout.Fd()))

	// Set up stdout for handling colors
	var stdout io.Writer = os.Stdout
	if colorizer != nil {
		stdout = colorable.NewColorableStdout()
	}
	out := bufio.NewWriter(stdout)
	defer out.Flush()

	indentSize := -1
	if CLI.Indented {
		indentSize = 2
	}

	transcoder := &transcode.Transcoder{
		Reader: reader,
		Writer: &json.Writer{
			Printer: &format.DefaultPrinter{
				Writer:     out,
				Flusher:    out,
				IndentSize: indentSize,
			},
			Colorizer: colorizer,
		},
		Logger: logger,
	}

	if _, err := transcoder.Run(ctx); err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// stdout is a pipe and something closed it (e.g. 'head' or 'less').
			// In this case we don't want to complain.
			return
		}
		logger.Error("transcoding failed", "path", inputPath, "error", err)
		// os.Exit skips deferred calls, so push out the records written so far.
		out.Flush()
		os.Exit(1)
	}
}

func newReader(kind string, in io.Reader) (marc.Reader, error) {
	switch kind {
	case "xml":
		return marcxml.NewDecoder(in), nil
	case "xpath":
		return marcxml.NewStreamParser(in)
	default:
		return nil, fmt.Errorf("unknown reader %q", kind)
	}
}

func chooseColorizer(mode string, isTerminal bool) *format.Colorizer {
	switch mode {
	case "always":
		return &format.DefaultColorizer
	case "auto":
		if isTerminal {
			return &format.DefaultColorizer
		}
	}
	return nil
}
