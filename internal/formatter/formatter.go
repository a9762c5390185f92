// package formatter exports build reports to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/mixtape-cli/mixtape/internal/models"
	"github.com/mixtape-cli/mixtape/internal/shared"
)

// Format identifies a report export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat validates a format name from a CLI flag.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatCSV, FormatMarkdown, FormatText:
		return Format(name), nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, name)
	}
}

// ReportToCSV converts a BuildReport to CSV with one row per input song.
//
// Unmatched songs have empty track columns. Columns: Input, Matched, TrackID,
// Title, Artist, Album, Duration, URI.
func ReportToCSV(report *models.BuildReport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Input", "Matched", "TrackID", "Title", "Artist", "Album", "Duration", "URI"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, match := range report.Matches {
		record := []string{
			match.Request.String(),
			"true",
			match.Track.ID,
			match.Track.Title,
			match.Track.Artist,
			match.Track.Album,
			strconv.Itoa(match.Track.Duration),
			match.Track.URI,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	for _, req := range report.Unmatched {
		record := []string{req.String(), "false", "", "", "", "", "", ""}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ReportToMarkdown converts a BuildReport to Markdown with matched and unmatched sections.
func ReportToMarkdown(report *models.BuildReport) ([]byte, error) {
	if report.Playlist == nil {
		return nil, fmt.Errorf("%w: report has no playlist", shared.ErrInvalidInput)
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", report.Playlist.Name))

	if report.Playlist.Description != "" {
		buf.WriteString(fmt.Sprintf("**Description**: %s\n\n", report.Playlist.Description))
	}

	buf.WriteString(fmt.Sprintf("**Matched**: %d/%d (%.1f%%)\n", report.MatchedCount(), report.TotalRequested(), report.MatchPercentage()))
	buf.WriteString(fmt.Sprintf("**Visibility**: %s\n", shared.VisibilityString(report.Playlist.Public)))
	if report.Playlist.URL != "" {
		buf.WriteString(fmt.Sprintf("**URL**: %s\n", report.Playlist.URL))
	}
	buf.WriteString("\n")

	buf.WriteString("## Tracks\n\n")
	for i, match := range report.Matches {
		duration := shared.FormatDuration(match.Track.Duration)
		albumPart := ""
		if match.Track.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", match.Track.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, match.Track.Artist, match.Track.Title, albumPart, duration))
	}

	if len(report.Unmatched) > 0 {
		buf.WriteString("\n## Unmatched\n\n")
		for _, req := range report.Unmatched {
			buf.WriteString(fmt.Sprintf("- %s\n", req))
		}
	}

	if len(report.Malformed) > 0 {
		buf.WriteString("\n## Skipped lines\n\n")
		for _, line := range report.Malformed {
			buf.WriteString(fmt.Sprintf("- line %d: %s\n", line.Number, line.Text))
		}
	}

	return buf.Bytes(), nil
}

// ReportToText converts a BuildReport to plain text.
func ReportToText(report *models.BuildReport) ([]byte, error) {
	if report.Playlist == nil {
		return nil, fmt.Errorf("%w: report has no playlist", shared.ErrInvalidInput)
	}

	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", report.Playlist.Name))
	if report.Playlist.URL != "" {
		buf.WriteString(fmt.Sprintf("URL: %s\n", report.Playlist.URL))
	}
	buf.WriteString(fmt.Sprintf("Matched: %d/%d\n\n", report.MatchedCount(), report.TotalRequested()))

	for i, match := range report.Matches {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, match.Track.Artist, match.Track.Title))
	}

	if len(report.Unmatched) > 0 {
		buf.WriteString("\nUnmatched:\n")
		for _, req := range report.Unmatched {
			buf.WriteString(fmt.Sprintf("  %s\n", req))
		}
	}

	return buf.Bytes(), nil
}

// WriteReport renders a report in the given format and writes it to path.
//
// Defaults the path to the playlist ID with a format-appropriate extension.
// Returns the path written.
func WriteReport(report *models.BuildReport, path string, format Format) (string, error) {
	var (
		data []byte
		err  error
		ext  string
	)

	switch format {
	case FormatCSV:
		data, err = ReportToCSV(report)
		ext = "csv"
	case FormatMarkdown:
		data, err = ReportToMarkdown(report)
		ext = "md"
	case FormatText:
		data, err = ReportToText(report)
		ext = "txt"
	default:
		return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
	if err != nil {
		return "", fmt.Errorf("failed to render report: %w", err)
	}

	if path == "" {
		base := "report"
		if report.Playlist != nil && report.Playlist.ID != "" {
			base = report.Playlist.ID
		}
		path = fmt.Sprintf("%s_report.%s", base, ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	return path, nil
}
