package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		log     func(l *Logger)
		wantOut bool
	}{
		{
			name:    "info_passes_at_info",
			level:   LevelInfo,
			log:     func(l *Logger) { l.Info(context.Background(), "hello") },
			wantOut: true,
		},
		{
			name:    "debug_dropped_at_info",
			level:   LevelInfo,
			log:     func(l *Logger) { l.Debug(context.Background(), "hello") },
			wantOut: false,
		},
		{
			name:    "error_passes_at_warn",
			level:   LevelWarn,
			log:     func(l *Logger) { l.Error(context.Background(), "boom") },
			wantOut: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.level, "eco-market-bot", nil)
			tt.log(l)

			if got := buf.Len() > 0; got != tt.wantOut {
				t.Errorf("output written = %v, want %v (%q)", got, tt.wantOut, buf.String())
			}
		})
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	traceID := func(ctx context.Context) string { return "abc123" }
	l := New(&buf, LevelDebug, "eco-market-bot", traceID)

	l.Info(context.Background(), "snapshot built", "items", 42)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}

	if rec["msg"] != "snapshot built" {
		t.Errorf("msg = %v, want %q", rec["msg"], "snapshot built")
	}
	if rec["service"] != "eco-market-bot" {
		t.Errorf("service = %v, want eco-market-bot", rec["service"])
	}
	if rec["items"] != float64(42) {
		t.Errorf("items = %v, want 42", rec["items"])
	}
	if rec["trace_id"] != "abc123" {
		t.Errorf("trace_id = %v, want abc123", rec["trace_id"])
	}
	if _, ok := rec["file"]; !ok {
		t.Error("expected file attribute with caller source")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug": LevelDebug,
		"info":  LevelInfo,
		"warn":  LevelWarn,
		"error": LevelError,
		"":      LevelInfo,
		"loud":  LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
