package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"WARNING": slog.LevelWarn,
		" error ": slog.LevelError,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestNew_ErrorCarriesStacktrace(t *testing.T) {
	var buf bytes.Buffer
	logger := New("INFO", &buf)
	logger.Error("boom", "component", "test")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["msg"] != "boom" {
		t.Errorf("expected msg=boom, got %v", rec["msg"])
	}
	if _, ok := rec["stacktrace"]; !ok {
		t.Error("expected stacktrace on ERROR record")
	}
}

func TestNew_InfoHasNoStacktrace(t *testing.T) {
	var buf bytes.Buffer
	New("INFO", &buf).With("request_id", "abc").Info("hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := rec["stacktrace"]; ok {
		t.Error("did not expect stacktrace on INFO record")
	}
	if rec["request_id"] != "abc" {
		t.Errorf("expected request_id attr, got %v", rec["request_id"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	New("WARN", &buf).Info("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected INFO to be filtered at WARN, got %s", buf.String())
	}
}

func TestNew_AddsRequestIDFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := New("INFO", &buf)
	ctx := WithRequestID(context.Background(), "3f2a9c1e-0000-4000-8000-000000000001")
	logger.ErrorContext(ctx, "contact form error")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if rec["request_id"] != "3f2a9c1e-0000-4000-8000-000000000001" {
		t.Errorf("expected request_id from context, got %v", rec["request_id"])
	}
}

func TestNew_NoRequestIDWithoutContextValue(t *testing.T) {
	var buf bytes.Buffer
	New("INFO", &buf).InfoContext(context.Background(), "hello")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if _, ok := rec["request_id"]; ok {
		t.Errorf("expected no request_id, got %v", rec["request_id"])
	}
}
