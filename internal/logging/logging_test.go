package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "json", "warn")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("hidden")
	l.Warn("shown", "card", "Goblin")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"card":"Goblin"`) {
		t.Errorf("unexpected output %q", out)
	}
}

func TestNewRejectsUnknown(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "xml", "info"); err == nil {
		t.Error("unknown format should fail")
	}
	if _, err := New(&bytes.Buffer{}, "text", "loud"); err == nil {
		t.Error("unknown level should fail")
	}
}

func TestNop(t *testing.T) {
	if Nop().Enabled(context.Background(), slog.LevelError) {
		t.Error("Nop logger should be disabled")
	}
	if OrNop(nil) == nil {
		t.Error("OrNop(nil) returned nil")
	}
}
