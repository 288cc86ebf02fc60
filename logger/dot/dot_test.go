package dot

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/fatih/color"
)

func TestHandle(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	h, err := New(slog.NewTextHandler(io.Discard, nil), &buf)
	if err != nil {
		t.Fatal(err)
	}
	logger := slog.New(h).With(slog.String("run_id", "test"))

	logger.Info("rendering icon", slog.Int("size", 192))
	logger.Info("wrote icon", slog.Int("size", 192))
	logger.Info("verified icon", slog.String("status", "identical"))
	logger.Info("verified icon", slog.String("status", "similar"))
	logger.Info("verified icon", slog.String("status", "missing"))
	logger.Info("verified icon", slog.String("status", "stale"))
	logger.Error("failed to write icon", slog.String("path", "x.png"))
	logger.Info("something else")
	logger.Info("generate completed")

	if got, want := buf.String(), "..~-x!\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
