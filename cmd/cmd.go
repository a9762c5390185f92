// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// buildCommand handles the core playlist build operation
func buildCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "build",
		Aliases: []string{"run"},
		Usage:   "Create a Spotify playlist from a song list file",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (prompted interactively when omitted)",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Playlist description",
			},
			&cli.BoolFlag{
				Name:  "private",
				Usage: "Create the playlist as private",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Tracks per submission request (max 100)",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Search requests per second",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Skip the local search cache",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write a build report to this path",
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Report format: csv, markdown, or text",
				Value: "text",
			},
		},
		Action: r.Build,
	}
}

// authCommand handles Spotify authentication
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authenticate with Spotify using OAuth2",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Auth,
	}
}

// songsCommand handles song list inspection without touching Spotify
func songsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "songs",
		Usage: "Inspect song list files",
		Commands: []*cli.Command{
			{
				Name:  "check",
				Usage: "Parse a song list and report malformed lines without building anything",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "file",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.SongsCheck,
			},
		},
	}
}

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Create a config.toml from the bundled template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize the search cache database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
		},
	}
}

// cacheCommand manages the local search cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local search cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached search results",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "clear",
				Usage: "Remove all cached search results",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CacheClear,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive playlist builds.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Build a playlist interactively",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "file",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Pre-fill the playlist name prompt",
			},
		},
		Action: r.TUI,
	}
}
