package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mixtape-cli/mixtape/internal/formatter"
	"github.com/mixtape-cli/mixtape/internal/models"
	"github.com/mixtape-cli/mixtape/internal/repositories"
	"github.com/mixtape-cli/mixtape/internal/shared"
	"github.com/mixtape-cli/mixtape/internal/songlist"
	"github.com/mixtape-cli/mixtape/internal/tasks"
	"github.com/mixtape-cli/mixtape/internal/ui"
)

// defaultSongFile is used when the file argument is omitted.
const defaultSongFile = "songs.txt"

// Build creates a Spotify playlist from a song list file.
//
// Reads "Artist - Title" lines, resolves each against Spotify search, and
// submits the matches in batches. Unmatched songs are reported, not fatal.
func (r *Runner) Build(ctx context.Context, cmd *cli.Command) error {
	filePath := cmd.StringArg("file")
	if filePath == "" {
		filePath = defaultSongFile
	}

	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	songs, err := songlist.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to read song list: %w", err)
	}

	for _, line := range songs.Malformed {
		r.logger.Warnf("skipping malformed line %d: %q", line.Number, line.Text)
	}

	r.logger.Infof("parsed %d songs from %s (%d malformed)", len(songs.Requests), filePath, len(songs.Malformed))

	name := cmd.String("name")
	if name == "" {
		if name, err = ui.PromptPlaylistName(""); err != nil {
			return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
		}
	}

	if err := r.ensureAuth(ctx, config); err != nil {
		return err
	}

	opts := r.buildOpts(cmd, config, name)
	if !cmd.Bool("no-cache") {
		opts.Cache = r.openCache(config)
	}

	report, err := r.runBuild(ctx, cmd, songs, opts)
	if err != nil {
		return err
	}

	r.printReport(report)

	if output := cmd.String("output"); output != "" || cmd.String("format") != "text" {
		format, err := formatter.ParseFormat(cmd.String("format"))
		if err != nil {
			return err
		}
		written, err := formatter.WriteReport(report, output, format)
		if err != nil {
			return err
		}
		r.writePlain("\n✓ Report written to %s\n", written)
	}

	return nil
}

// buildOpts merges playlist settings from config with flag overrides.
func (r *Runner) buildOpts(cmd *cli.Command, config *shared.Config, name string) tasks.BuildOpts {
	opts := tasks.BuildOpts{
		Name:        name,
		Description: cmd.String("description"),
		Public:      config.Playlist.Public,
		BatchSize:   config.Playlist.BatchSize,
		RateLimit:   config.Playlist.RateLimit,
	}

	if cmd.Bool("private") {
		opts.Public = false
	}
	if size := cmd.Int("batch-size"); size > 0 {
		opts.BatchSize = int(size)
	}
	if limit := cmd.Float("rate-limit"); limit > 0 {
		opts.RateLimit = limit
	}

	return opts
}

// openCache opens the search cache database. Failures are logged, never fatal.
func (r *Runner) openCache(config *shared.Config) tasks.TrackCacher {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		r.logger.Warnf("search cache unavailable: %v", err)
		return nil
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		r.logger.Warnf("search cache unavailable: %v", err)
		db.Close()
		return nil
	}

	return repositories.NewTrackCacheAdapter(repositories.NewTrackRepository(db))
}

// runBuild runs the engine with live progress output, retrying once after
// token reauthorization. The retry only happens when the failure preceded
// playlist creation; a rerun after that point would create a second playlist,
// so the partial result is surfaced instead.
func (r *Runner) runBuild(ctx context.Context, cmd *cli.Command, songs *songlist.List, opts tasks.BuildOpts) (*models.BuildReport, error) {
	report, err := r.runBuildOnce(ctx, songs, opts)
	if err == nil {
		return report, nil
	}

	if report != nil && report.Playlist != nil {
		r.writePlain("\n⚠ Build aborted: %v\n", err)
		r.printReport(report)
		return nil, err
	}

	reauthed, authErr := r.handleAuthError(ctx, err, cmd)
	if !reauthed {
		return nil, err
	}
	if authErr != nil {
		return nil, authErr
	}

	return r.runBuildOnce(ctx, songs, opts)
}

func (r *Runner) runBuildOnce(ctx context.Context, songs *songlist.List, opts tasks.BuildOpts) (*models.BuildReport, error) {
	progressCh := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for update := range progressCh {
			switch update.Phase {
			case tasks.CreatePlaylist:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.SearchTracks:
				r.writePlain("   %s\n", update.Message)
			case tasks.AddTracks:
				r.writePlain("📦 %s\n", update.Message)
			}
		}
	}()

	report, err := r.engine.Build(ctx, progressCh, songs, opts)
	close(progressCh)
	<-done

	return report, err
}

// printReport writes the human-readable build summary.
func (r *Runner) printReport(report *models.BuildReport) {
	r.writePlain("\n")
	r.writePlainHeader("Playlist Created!")
	r.writePlain("Name: %s\n", report.Playlist.Name)
	if report.Playlist.URL != "" {
		r.writePlain("URL: %s\n", report.Playlist.URL)
	}
	r.writePlain("Matched: %d/%d (%.1f%%)\n", report.MatchedCount(), report.TotalRequested(), report.MatchPercentage())
	r.writePlain("Batches submitted: %d\n", report.Batches)

	if len(report.Unmatched) > 0 {
		r.writePlain("\nNo match found for %d songs:\n", len(report.Unmatched))
		for _, req := range report.Unmatched {
			r.writePlain("  - %s\n", req)
		}
	}

	if len(report.Malformed) > 0 {
		r.writePlain("\nSkipped %d malformed lines:\n", len(report.Malformed))
		for _, line := range report.Malformed {
			r.writePlain("  - line %d: %s\n", line.Number, line.Text)
		}
	}
}
