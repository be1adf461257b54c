package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestInfoWritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()

	Info("analysis.completed", map[string]any{"analysis_id": "a1", "ats_score": 42.5, "err": errors.New("boom")})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected json line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "analysis.completed" || entry["level"] != "info" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if entry["analysis_id"] != "a1" || entry["ats_score"] != 42.5 || entry["err"] != "boom" {
		t.Fatalf("missing fields: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field: %v", entry)
	}
}

func TestDebugRequiresInit(t *testing.T) {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	defer restore()
	defer Init(true, false)

	Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be dropped, got %q", buf.String())
	}

	Init(true, true)
	Debug("shown", nil)
	if !strings.Contains(buf.String(), `"msg":"shown"`) {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}
