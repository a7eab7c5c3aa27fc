package observe

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("failed to parse log output as JSON: %v\nOutput: %s", err, line)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLogger_IncludesSpecFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.WithSpec(SpecMeta{Package: "accounts", Name: "WithdrawingTooMuch", Tolerant: true}).
		Info(context.Background(), "test message")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]

	if e["spec.id"] != "accounts.WithdrawingTooMuch" {
		t.Errorf("expected spec.id='accounts.WithdrawingTooMuch', got %v", e["spec.id"])
	}
	if e["spec.package"] != "accounts" {
		t.Errorf("expected spec.package='accounts', got %v", e["spec.package"])
	}
	if e["spec.tolerant"] != true {
		t.Errorf("expected spec.tolerant=true, got %v", e["spec.tolerant"])
	}
	if e["level"] != "info" || e["msg"] != "test message" {
		t.Errorf("unexpected level/msg: %v / %v", e["level"], e["msg"])
	}
	if _, ok := e["timestamp"]; !ok {
		t.Error("expected timestamp field")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		level string
		want  []string
	}{
		{"debug", []string{"debug", "info", "warn", "error"}},
		{"info", []string{"info", "warn", "error"}},
		{"warn", []string{"warn", "error"}},
		{"error", []string{"error"}},
		{"bogus", []string{"info", "warn", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithWriter(tt.level, &buf)
			ctx := context.Background()

			logger.Debug(ctx, "m")
			logger.Info(ctx, "m")
			logger.Warn(ctx, "m")
			logger.Error(ctx, "m")

			entries := decodeLines(t, &buf)
			if len(entries) != len(tt.want) {
				t.Fatalf("expected %d entries, got %d", len(tt.want), len(entries))
			}
			for i, e := range entries {
				if e["level"] != tt.want[i] {
					t.Errorf("entry %d level = %v, want %s", i, e["level"], tt.want[i])
				}
			}
		})
	}
}

func TestLogger_RedactsSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	logger.Info(context.Background(), "msg",
		Field{Key: "token", Value: "abc"},
		Field{Key: "password", Value: "hunter2"},
		Field{Key: "duration_ms", Value: 12.5},
	)

	e := decodeLines(t, &buf)[0]
	if e["token"] != "[REDACTED]" || e["password"] != "[REDACTED]" {
		t.Errorf("expected sensitive fields redacted, got token=%v password=%v", e["token"], e["password"])
	}
	if e["duration_ms"] != 12.5 {
		t.Errorf("expected duration_ms=12.5, got %v", e["duration_ms"])
	}
}

func TestLogger_WithSpecDoesNotLeakToParent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	_ = logger.WithSpec(SpecMeta{Name: "child"})
	logger.Info(context.Background(), "parent")

	e := decodeLines(t, &buf)[0]
	if _, ok := e["spec.name"]; ok {
		t.Error("parent logger should not carry spec fields")
	}
}

func TestLogger_ConcurrentWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter("info", &buf)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			logger.WithSpec(SpecMeta{Name: "concurrent"}).Info(context.Background(), "line", Field{Key: "i", Value: i})
		}(i)
	}
	wg.Wait()

	if got := len(decodeLines(t, &buf)); got != 20 {
		t.Errorf("expected 20 entries, got %d", got)
	}
}

func TestParseLogLevel_RoundTrip(t *testing.T) {
	for _, s := range []string{"debug", "info", "warn", "error"} {
		if got := ParseLogLevel(s).String(); got != s {
			t.Errorf("ParseLogLevel(%q).String() = %q", s, got)
		}
	}
}
