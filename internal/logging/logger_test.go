package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestComponentTagsRecords(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	Component(logger, "documents").Info("cache reloaded")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if entry["component"] != "documents" {
		t.Fatalf("expected component tag, got %v", entry)
	}
	if entry["msg"] != "cache reloaded" {
		t.Fatalf("message lost: %v", entry)
	}
}

func TestComponentOfNilLoggerIsUsable(t *testing.T) {
	logger := Component(nil, "identity")
	if logger == nil {
		t.Fatalf("expected a usable logger")
	}
	logger.Info("must not panic")
}

func TestNewFallsBackToInfo(t *testing.T) {
	logger := New("not-a-level")
	ctx := context.Background()
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Fatalf("info must be enabled after fallback")
	}
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Fatalf("debug must stay disabled after fallback")
	}
}
