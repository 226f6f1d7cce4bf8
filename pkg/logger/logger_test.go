package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestContextFieldsPropagate(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.InfoLevel, Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithUserID(ctx, "user-456")
	logg.Info(ctx, "hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request_id in log entry, got %v", entry["request_id"])
	}
	if entry["user_id"] != "user-456" {
		t.Fatalf("expected user_id in log entry, got %v", entry["user_id"])
	}
	if entry["service"] != "test" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: &buf})

	logg.Info(context.Background(), "suppressed")
	if buf.Len() != 0 {
		t.Fatalf("expected info log to be suppressed, got %q", buf.String())
	}

	logg.Error(context.Background(), "boom", nil)
	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected error log to be written, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	if got := ParseLevel("WARN"); got != zerolog.WarnLevel {
		t.Fatalf("expected warn level, got %v", got)
	}
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("expected default info level, got %v", got)
	}
	if got := ParseLevel("bogus"); got != zerolog.InfoLevel {
		t.Fatalf("expected fallback info level, got %v", got)
	}
}
