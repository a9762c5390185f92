package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mixtape-cli/mixtape/internal/songlist"
)

// SongsCheck parses a song list and reports what would be searched.
//
// Dry run: never touches Spotify or the cache.
func (r *Runner) SongsCheck(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.StringArg("file")
	if filePath == "" {
		filePath = defaultSongFile
	}

	songs, err := songlist.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to read song list: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	r.writePlain("Parsed %s: %d songs, %d malformed lines\n\n", filePath, len(songs.Requests), len(songs.Malformed))

	for i, req := range songs.Requests {
		r.writePlain("%d. %s\n", i+1, req)
	}

	if len(songs.Malformed) > 0 {
		r.writePlain("\nMalformed lines (missing %q separator):\n", songlist.Delimiter)
		for _, line := range songs.Malformed {
			r.writePlain("  line %d: %s\n", line.Number, line.Text)
		}
	}

	return nil
}
