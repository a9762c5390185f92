package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/mixtape-cli/mixtape/internal/repositories"
	"github.com/mixtape-cli/mixtape/internal/shared"
)

// openRepository opens the cache database for direct repository access.
func (r *Runner) openRepository(configPath string) (*repositories.TrackRepository, *sql.DB, error) {
	config, err := r.loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewTrackRepository(db), db, nil
}

// CacheList lists cached search results in insertion order.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openRepository(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	cached, err := repo.List()
	if err != nil {
		return fmt.Errorf("failed to list cache: %w", err)
	}

	if cmd.Bool("json") {
		entries := make([]map[string]any, len(cached))
		for i, c := range cached {
			entries[i] = map[string]any{
				"query": c.Query(),
				"track": c.Track(),
			}
		}
		return r.writeJSON(entries, true)
	}

	r.writePlain("Cached searches: %d\n\n", len(cached))
	for i, c := range cached {
		track := c.Track()
		r.writePlain("%d. %q → %s - %s [%s]\n", i+1, c.Query(), track.Artist, track.Title, shared.FormatDuration(track.Duration))
	}

	return nil
}

// CacheClear removes all cached search results.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openRepository(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	removed, err := repo.Purge()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Infof("cleared %d cached searches", removed)
	r.writePlain("✓ Removed %d cached searches\n", removed)

	return nil
}
