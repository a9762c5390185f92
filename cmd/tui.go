package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/mixtape-cli/mixtape/internal/shared"
	"github.com/mixtape-cli/mixtape/internal/songlist"
	"github.com/mixtape-cli/mixtape/internal/tasks"
	"github.com/mixtape-cli/mixtape/internal/ui"
)

// TUI launches the interactive terminal UI for playlist builds.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

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

	if err := r.ensureAuth(ctx, config); err != nil {
		return err
	}

	opts := tasks.BuildOpts{
		Name:      cmd.String("name"),
		Public:    config.Playlist.Public,
		BatchSize: config.Playlist.BatchSize,
		RateLimit: config.Playlist.RateLimit,
		Cache:     r.openCache(config),
	}

	model := ui.NewModel(ctx, r.engine, songs, opts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	if model.Err() != nil {
		return model.Err()
	}

	return nil
}
