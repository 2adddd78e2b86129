package server

import (
	"strings"
	"testing"

	"github.com/avolkov/youtube-playlist-mcp/internal/youtube"
)

func TestFormatBulkReport(t *testing.T) {
	outcomes := []youtube.AddOutcome{
		{Ref: "dQw4w9WgXcQ", VideoID: "dQw4w9WgXcQ", Added: true, Title: "Song A", Position: 5},
		{Ref: "https://youtu.be/abc12345678", VideoID: "abc12345678", Error: "video is private"},
		{Ref: "not a url at all", Error: "not a recognizable YouTube video ID or URL"},
	}

	t.Run("one line per reference", func(t *testing.T) {
		report := formatBulkReport("PL1", outcomes, true)
		lines := strings.Split(report, "\n")

		// Header plus one line per input reference
		if len(lines) != len(outcomes)+1 {
			t.Fatalf("report has %d lines, want %d:\n%s", len(lines), len(outcomes)+1, report)
		}
		if !strings.Contains(lines[0], "Added 1 of 3") {
			t.Errorf("header = %q, want added/total summary", lines[0])
		}
	})

	t.Run("success lines carry title and position", func(t *testing.T) {
		report := formatBulkReport("PL1", outcomes, true)
		if !strings.Contains(report, `[1/3] ok: "Song A" (dQw4w9WgXcQ) at position 5`) {
			t.Errorf("missing success line in report:\n%s", report)
		}
	})

	t.Run("positions omitted when appending", func(t *testing.T) {
		report := formatBulkReport("PL1", outcomes, false)
		if strings.Contains(report, "at position") {
			t.Errorf("append-mode report should not mention positions:\n%s", report)
		}
	})

	t.Run("failure lines carry the reason", func(t *testing.T) {
		report := formatBulkReport("PL1", outcomes, true)
		if !strings.Contains(report, "[2/3] failed: https://youtu.be/abc12345678: video is private") {
			t.Errorf("missing provider failure line:\n%s", report)
		}
		if !strings.Contains(report, "[3/3] failed: not a url at all: not a recognizable YouTube video ID or URL") {
			t.Errorf("missing unrecognized-reference line:\n%s", report)
		}
	})
}

func TestRequireVideoID(t *testing.T) {
	t.Run("accepts url shapes", func(t *testing.T) {
		id, err := requireVideoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id != "dQw4w9WgXcQ" {
			t.Errorf("id = %q, want dQw4w9WgXcQ", id)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := requireVideoID("https://example.com/not-a-video"); err == nil {
			t.Error("expected error for unrecognized reference")
		}
	})
}
