package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func captureDefault(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWithBuildID(t *testing.T) {
	ctx := WithBuildID(context.Background(), "build-123")

	lc := GetContext(ctx)
	if lc.BuildID != "build-123" {
		t.Errorf("expected build-123, got %s", lc.BuildID)
	}
}

func TestWithPhase(t *testing.T) {
	ctx := WithPhase(context.Background(), "walk")

	lc := GetContext(ctx)
	if lc.Phase != "walk" {
		t.Errorf("expected walk, got %s", lc.Phase)
	}
}

func TestContextChaining(t *testing.T) {
	ctx := WithBuildID(context.Background(), "build-1")
	ctx = WithPhase(ctx, "static")
	ctx = WithPhase(ctx, "walk")

	lc := GetContext(ctx)
	if lc.BuildID != "build-1" {
		t.Error("BuildID was lost in chaining")
	}
	if lc.Phase != "walk" {
		t.Errorf("expected later phase to win, got %s", lc.Phase)
	}
}

func TestEmptyContext(t *testing.T) {
	lc := GetContext(context.Background())
	if lc.BuildID != "" || lc.Phase != "" {
		t.Error("expected empty context")
	}
}

func TestInfoContext(t *testing.T) {
	buf := captureDefault(t)

	ctx := WithPhase(WithBuildID(context.Background(), "build-1"), "walk")
	InfoContext(ctx, "test message", slog.String("extra", "value"))

	output := buf.String()
	for _, want := range []string{`"build_id":"build-1"`, `"phase":"walk"`, "test message", `"extra":"value"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in log output: %s", want, output)
		}
	}
}

func TestLevels(t *testing.T) {
	buf := captureDefault(t)
	ctx := WithBuildID(context.Background(), "b")

	DebugContext(ctx, "d")
	WarnContext(ctx, "w")
	ErrorContext(ctx, "e")

	output := buf.String()
	for _, want := range []string{`"level":"DEBUG"`, `"level":"WARN"`, `"level":"ERROR"`} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in log output", want)
		}
	}
}
