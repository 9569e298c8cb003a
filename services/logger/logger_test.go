package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newLogrusLogger(&buf, WarnLevel, false)
	l.Info("hidden %d", 1)
	l.Warn("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown 2") {
		t.Errorf("output = %q", out)
	}
}

func TestJSONOutputCarriesFields(t *testing.T) {
	var buf bytes.Buffer
	newLogrusLogger(&buf, InfoLevel, true).With("booking", "BK1").Info("claimed bed %s", "b1")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("not json: %q", buf.String())
	}
	if entry["msg"] != "claimed bed b1" || entry["booking"] != "BK1" || entry["level"] != "info" {
		t.Errorf("entry = %v", entry)
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{
		"debug":   DebugLevel,
		"warning": WarnLevel,
		"error":   ErrorLevel,
		"":        InfoLevel,
		"loud":    InfoLevel,
	} {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %d, want %d", in, got, want)
		}
	}
}
