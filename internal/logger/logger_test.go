package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"loud":    slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if RequestID(ctx) != "" {
		t.Fatal("empty context has a request id")
	}
	ctx = NewContext(ctx, "req-1")
	if got := RequestID(ctx); got != "req-1" {
		t.Fatalf("request id = %q", got)
	}
	if WithContext(ctx) == nil {
		t.Fatal("nil logger")
	}
}

func TestNewWritesServiceAndLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "WARN", true)
	log.Info("hidden")
	log.Warn("shown", "k", 1)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record passed a warn logger: %s", out)
	}
	if !strings.Contains(out, `"service":"root_tycoon"`) || !strings.Contains(out, `"msg":"shown"`) {
		t.Fatalf("unexpected output: %s", out)
	}
}
