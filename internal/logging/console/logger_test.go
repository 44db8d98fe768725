package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-notion2wp/internal/logging"
	"github.com/goliatone/go-notion2wp/internal/logging/console"
)

func TestConsoleLoggerWritesSortedFields(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer: &buf,
		Clock:  func() time.Time { return now },
	})

	logger := logging.WithFields(provider.GetLogger("notion2wp.importer"), map[string]any{"module": "notion2wp.importer"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"batch": "b-1"})
	logger = logger.WithContext(ctx)

	postID := uuid.MustParse("8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999")
	logger.Info("importer.page.imported", "page_id", "abc", "post_id", postID, "title", "Hello world")

	got := strings.TrimSpace(buf.String())
	want := `2025-03-14T15:09:26Z INFO importer.page.imported batch=b-1 logger=notion2wp.importer module=notion2wp.importer page_id=abc post_id=8a51a9b1-2d30-4b2c-8ecd-2c0b87dfa999 title="Hello world"`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: console.ParseLevel("info"),
		OmitTime: true,
	})

	logger := provider.GetLogger("notion2wp.test")
	logger.Debug("ignored.debug")
	logger.Error("included.error", "error", errors.New("boom"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d: %q", len(lines), buf.String())
	}
	if lines[0] != "ERROR included.error error=boom logger=notion2wp.test" {
		t.Fatalf("unexpected line %q", lines[0])
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if console.ParseLevel("nonsense") != console.LevelInfo {
		t.Fatal("expected unknown level to map to info")
	}
	if console.ParseLevel(" Warning ") != console.LevelWarn {
		t.Fatal("expected warning alias")
	}
}
