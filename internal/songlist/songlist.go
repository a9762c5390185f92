// Package songlist parses plain-text song lists into [models.SongRequest] values.
//
// Input files contain one song per line in "Artist - Song Name" form. Lines
// are split on the first " - " delimiter; lines lacking the delimiter are
// recorded as malformed and skipped, never failing the whole parse.
package songlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mixtape-cli/mixtape/internal/models"
)

// Delimiter separates artist from title on each input line.
const Delimiter = " - "

// List holds the parsed requests and any malformed lines, both in input order.
type List struct {
	Requests  []models.SongRequest
	Malformed []models.MalformedLine
}

// Len returns the number of valid parsed requests.
func (l *List) Len() int {
	return len(l.Requests)
}

// Parse reads newline-separated "Artist - Song Name" entries from r.
//
// Blank lines are ignored. A line without the delimiter, or with an empty
// artist or title around it, is recorded in Malformed and excluded from
// Requests. Only a read failure returns an error.
func Parse(r io.Reader) (*List, error) {
	list := &List{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		artist, title, ok := splitLine(line)
		if !ok {
			list.Malformed = append(list.Malformed, models.MalformedLine{
				Number: lineNo,
				Text:   line,
			})
			continue
		}

		list.Requests = append(list.Requests, models.SongRequest{
			Artist: artist,
			Title:  title,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read song list: %w", err)
	}

	return list, nil
}

// Load parses the song list file at path.
//
// A missing or unreadable file is an error; the caller treats it as fatal.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open song list %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// splitLine splits on the FIRST delimiter occurrence so titles containing
// " - " stay intact.
func splitLine(line string) (artist, title string, ok bool) {
	before, after, found := strings.Cut(line, Delimiter)
	if !found {
		return "", "", false
	}

	artist = strings.TrimSpace(before)
	title = strings.TrimSpace(after)
	if artist == "" || title == "" {
		return "", "", false
	}

	return artist, title, true
}
