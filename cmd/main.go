package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/mixtape-cli/mixtape/internal/services"
	"github.com/mixtape-cli/mixtape/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)
	httpClient := &http.Client{Timeout: 30 * time.Second}

	var spotifyService services.Service

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			svc.SetHTTPClient(httpClient)
			spotifyService = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Spotify:    spotifyService,
		HTTPClient: httpClient,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "mixtape",
		Usage:    "Build Spotify playlists from a plain text song list",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
