package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJSONLogger_IncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "pet-companion", Output: &buf})

	l.With(map[string]any{"slice": "lost"}).Warn("fetch failed", map[string]any{
		"error": errors.New("boom"),
		"":      "ignored",
	})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["app"] != "pet-companion" || entry["slice"] != "lost" {
		t.Fatalf("missing base fields: %#v", entry)
	}
	if entry["error"] != "boom" || entry["level"] != "warn" || entry["message"] != "fetch failed" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Format: FormatJSON, Output: &buf})

	l.Info("hidden", nil)
	l.Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}

	l.Error("shown", nil)
	if !strings.Contains(buf.String(), "shown") {
		t.Fatalf("expected error line, got %q", buf.String())
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if ParseLevel(" WARNING ") != Warn || ParseLevel("nope") != Info || ParseLevel("") != Info {
		t.Fatalf("unexpected ParseLevel results")
	}
	if ParseFormat("JSON") != FormatJSON || ParseFormat("") != FormatText {
		t.Fatalf("unexpected ParseFormat results")
	}
}
