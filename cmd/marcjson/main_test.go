package main

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/thms-rmb/marcXmlToJson/encoding/marcxml"
	"github.com/thms-rmb/marcXmlToJson/internal/format"
	"github.com/thms-rmb/marcXmlToJson/internal/logging"
)

func TestNewReader(t *testing.T) {
	const input = `<collection xmlns="http://www.loc.gov/MARC21/slim"><record/></collection>`
	tests := []struct {
		kind    string
		wantErr bool
	}{
		{kind: "xml"},
		{kind: "xpath"},
		{kind: "sax", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			reader, err := newReader(tt.kind, strings.NewReader(input))
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			record, err := reader.Next()
			if err != nil {
				t.Fatalf("unexpected error reading record: %s", err)
			}
			if record.FieldCount() != 0 {
				t.Errorf("expected an empty record, got %+v", record)
			}
		})
	}

	reader, _ := newReader("xml", strings.NewReader(input))
	if _, ok := reader.(*marcxml.Decoder); !ok {
		t.Errorf("expected xml reader to be a *marcxml.Decoder, got %T", reader)
	}
}

func TestChooseColorizer(t *testing.T) {
	tests := []struct {
		mode       string
		isTerminal bool
		expected   *format.Colorizer
	}{
		{"auto", true, &format.DefaultColorizer},
		{"auto", false, nil},
		{"always", false, &format.DefaultColorizer},
		{"never", true, nil},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			if c := chooseColorizer(tt.mode, tt.isTerminal); c != tt.expected {
				t.Errorf("mode %q, terminal %v: expected %v, got %v", tt.mode, tt.isTerminal, tt.expected, c)
			}
		})
	}
}

// TestFlags checks that kong rejects values the logging package cannot
// parse, and accepts all the others
func TestFlags(t *testing.T) {
	parser, err := kong.New(&CLI)
	if err != nil {
		t.Fatalf("could not build parser: %s", err)
	}

	rejected := [][]string{
		{"--log-level=verbose"},
		{"--log-format=xml"},
		{"--reader=sax"},
		{"--color=sometimes"},
	}
	for _, args := range rejected {
		if _, err := parser.Parse(args); err == nil {
			t.Errorf("expected %v to be rejected", args)
		}
	}

	for _, level := range []string{"debug", "info", "warn", "error"} {
		for _, logFormat := range []string{"text", "json"} {
			if _, err := parser.Parse([]string{"--log-level=" + level, "--log-format=" + logFormat}); err != nil {
				t.Fatalf("unexpected error for %s/%s: %s", level, logFormat, err)
			}
			if _, err := logging.ParseLevel(CLI.LogLevel); err != nil {
				t.Errorf("accepted level %q does not parse: %s", CLI.LogLevel, err)
			}
			if _, err := logging.ParseFormat(CLI.LogFormat); err != nil {
				t.Errorf("accepted format %q does not parse: %s", CLI.LogFormat, err)
			}
		}
	}

	if _, err := parser.Parse([]string{"-i"}); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !CLI.Indented || CLI.Reader != "xml" || CLI.Color != "auto" || CLI.LogLevel != "warn" {
		t.Errorf("unexpected defaults: %+v", CLI)
	}
}
