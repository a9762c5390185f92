package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mixtape-cli/mixtape/internal/models"
)

func sampleReport() *models.BuildReport {
	return &models.BuildReport{
		Playlist: &models.Playlist{
			ID:          "pl123",
			Name:        "Road Trip",
			Description: "Songs for the drive",
			TrackCount:  2,
			Public:      true,
			URL:         "https://open.spotify.com/playlist/pl123",
		},
		Matches: []models.MatchResult{
			{
				Request: models.SongRequest{Artist: "Toto", Title: "Africa"},
				Track: &models.Track{
					ID:       "track1",
					Title:    "Africa",
					Artist:   "Toto",
					Album:    "Toto IV",
					Duration: 295,
					URI:      "spotify:track:track1",
				},
			},
			{
				Request: models.SongRequest{Artist: "ABBA", Title: "Waterloo"},
				Track: &models.Track{
					ID:       "track2",
					Title:    "Waterloo",
					Artist:   "ABBA",
					Album:    "Waterloo",
					Duration: 165,
					URI:      "spotify:track:track2",
				},
			},
		},
		Unmatched: []models.SongRequest{
			{Artist: "Obscure Band", Title: "Unknown Song"},
		},
		Malformed: []models.MalformedLine{
			{Number: 4, Text: "not a valid line"},
		},
		Batches: 1,
	}
}

func TestExporters(t *testing.T) {
	t.Run("ReportToCSV", func(t *testing.T) {
		data, err := ReportToCSV(sampleReport())
		if err != nil {
			t.Fatalf("ReportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Input,Matched,TrackID,Title,Artist,Album,Duration,URI") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "Toto - Africa,true,track1") {
			t.Errorf("CSV missing matched row, got: %s", output)
		}
		if !strings.Contains(output, "Obscure Band - Unknown Song,false,") {
			t.Errorf("CSV missing unmatched row, got: %s", output)
		}
		if !strings.Contains(output, "spotify:track:track2") {
			t.Errorf("CSV missing track URI")
		}
	})

	t.Run("ReportToMarkdown", func(t *testing.T) {
		data, err := ReportToMarkdown(sampleReport())
		if err != nil {
			t.Fatalf("ReportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# Road Trip") {
			t.Errorf("Markdown missing title, got: %s", output)
		}
		if !strings.Contains(output, "**Matched**: 2/3 (66.7%)") {
			t.Errorf("Markdown missing match summary, got: %s", output)
		}
		if !strings.Contains(output, "1. Toto - Africa (Toto IV) [4:55]") {
			t.Errorf("Markdown missing track line, got: %s", output)
		}
		if !strings.Contains(output, "## Unmatched") {
			t.Error("Markdown missing unmatched section")
		}
		if !strings.Contains(output, "- line 4: not a valid line") {
			t.Errorf("Markdown missing skipped line, got: %s", output)
		}
	})

	t.Run("ReportToText", func(t *testing.T) {
		data, err := ReportToText(sampleReport())
		if err != nil {
			t.Fatalf("ReportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "Playlist: Road Trip") {
			t.Errorf("text missing playlist name, got: %s", output)
		}
		if !strings.Contains(output, "Matched: 2/3") {
			t.Errorf("text missing match count, got: %s", output)
		}
		if !strings.Contains(output, "Obscure Band - Unknown Song") {
			t.Errorf("text missing unmatched section, got: %s", output)
		}
	})

	t.Run("nil playlist rejected", func(t *testing.T) {
		report := &models.BuildReport{}

		if _, err := ReportToMarkdown(report); err == nil {
			t.Error("expected error for report without playlist")
		}
		if _, err := ReportToText(report); err == nil {
			t.Error("expected error for report without playlist")
		}
	})
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"csv":      FormatCSV,
		"markdown": FormatMarkdown,
		"md":       FormatMarkdown,
		"text":     FormatText,
		"txt":      FormatText,
	}

	for name, want := range cases {
		got, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", name, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", name, got, want)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestWriteReport(t *testing.T) {
	t.Run("writes to explicit path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")

		written, err := WriteReport(sampleReport(), path, FormatCSV)
		if err != nil {
			t.Fatalf("WriteReport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected path %q, got %q", path, written)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read report: %v", err)
		}
		if !strings.Contains(string(data), "track1") {
			t.Error("written report missing content")
		}
	})

	t.Run("defaults path from playlist ID", func(t *testing.T) {
		dir := t.TempDir()
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get cwd: %v", err)
		}
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("failed to chdir: %v", err)
		}
		defer os.Chdir(cwd)

		written, err := WriteReport(sampleReport(), "", FormatMarkdown)
		if err != nil {
			t.Fatalf("WriteReport failed: %v", err)
		}
		if written != "pl123_report.md" {
			t.Errorf("unexpected default path: %q", written)
		}
	})

	t.Run("rejects unknown format", func(t *testing.T) {
		if _, err := WriteReport(sampleReport(), "", Format("xml")); err == nil {
			t.Error("expected error for unknown format")
		}
	})
}
