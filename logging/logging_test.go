package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":   zerolog.DebugLevel,
		" WARN ":  zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"trace":   zerolog.TraceLevel,
		"verbose": zerolog.InfoLevel,
		"":        zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewWritesBothSinks(t *testing.T) {
	var console, file bytes.Buffer
	logger := New(&console, &file, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("slot", "human").Msg("round started")

	if strings.Contains(console.String(), "hidden") {
		t.Fatalf("debug record written at info level")
	}
	for name, buf := range map[string]*bytes.Buffer{"console": &console, "file": &file} {
		if !strings.Contains(buf.String(), "round started") {
			t.Fatalf("%s sink missing record: %q", name, buf.String())
		}
	}
	if strings.Contains(file.String(), "\x1b[") {
		t.Fatalf("file sink contains colour codes")
	}
}
