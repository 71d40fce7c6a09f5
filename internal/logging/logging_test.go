package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelDebug, Output: &buf, Component: "document", JSON: true})
	log.WithField("lines", 3).WithError(errors.New("boom")).Warn("shaping failed for %d chars", 12)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v", entry["level"])
	}
	if entry["message"] != "shaping failed for 12 chars" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["component"] != "document" || entry["lines"] != float64(3) || entry["error"] != "boom" {
		t.Errorf("fields = %v", entry)
	}
}

func TestLoggerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelWarn, Output: &buf})
	log.Debug("hidden")
	log.Info("hidden")
	log.Error("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
	if log.Enabled(LevelInfo) || !log.Enabled(LevelError) {
		t.Error("Enabled does not match configured level")
	}
	if !log.SetLevel(LevelDebug).Enabled(LevelDebug) {
		t.Error("SetLevel copy should enable debug")
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.WithComponent("x").Error("nothing %s", "here")
	if log.Enabled(LevelError) {
		t.Error("Nop logger reports enabled")
	}
}
