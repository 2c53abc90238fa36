package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestJSONFormatIncludesFields(t *testing.T) {
	log := New(LoggingConfig{Level: "debug", Format: "json"})
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.WithField("request_id", "abc").WithError(errors.New("boom")).Warn("something happened")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if line["request_id"] != "abc" {
		t.Fatalf("expected request_id field, got %v", line)
	}
	if line["error"] != "boom" {
		t.Fatalf("expected error field, got %v", line)
	}
	if line["level"] != "warning" {
		t.Fatalf("expected warning level, got %v", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	log := New(LoggingConfig{Level: "warn", Format: "text"})
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Info("hidden")
	log.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn message missing: %q", out)
	}
}

func TestNewDefaultTagsComponent(t *testing.T) {
	log := NewDefault("catalog")
	var buf bytes.Buffer
	log.SetOutput(&buf)

	log.Info("ready")
	if !strings.Contains(buf.String(), "catalog") {
		t.Fatalf("expected component tag in output: %q", buf.String())
	}
}
