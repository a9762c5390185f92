package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Playlist.BatchSize != 100 {
			t.Errorf("expected default batch size 100, got %d", config.Playlist.BatchSize)
		}
		if config.Playlist.RateLimit != 5.0 {
			t.Errorf("expected default rate limit 5.0, got %f", config.Playlist.RateLimit)
		}
		if config.Server.Port != 8888 {
			t.Errorf("expected default port 8888, got %d", config.Server.Port)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		content := `
[credentials.spotify]
client_id = "test_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:9999/callback"

[playlist]
batch_size = 50
rate_limit = 2.5
public = false
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if config.Credentials.Spotify.ClientID != "test_id" {
			t.Errorf("expected client_id 'test_id', got %q", config.Credentials.Spotify.ClientID)
		}
		if config.Playlist.BatchSize != 50 {
			t.Errorf("expected batch size 50, got %d", config.Playlist.BatchSize)
		}
		if config.Playlist.Public {
			t.Error("expected public to be false")
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_id")
		t.Setenv("SPOTIFY_CLIENT_SECRET", "env_secret")

		config := DefaultConfig()

		if config.Credentials.Spotify.ClientID != "env_id" {
			t.Errorf("expected env client_id, got %q", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Spotify.ClientSecret != "env_secret" {
			t.Errorf("expected env client_secret, got %q", config.Credentials.Spotify.ClientSecret)
		}
	})

	t.Run("SaveConfig Round Trip", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "saved_id"
		config.Credentials.Spotify.AccessToken = "saved_token"

		if err := SaveConfig(path, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}

		if loaded.Credentials.Spotify.ClientID != "saved_id" {
			t.Errorf("expected client_id 'saved_id', got %q", loaded.Credentials.Spotify.ClientID)
		}
		if loaded.Credentials.Spotify.AccessToken != "saved_token" {
			t.Errorf("expected access token to round trip, got %q", loaded.Credentials.Spotify.AccessToken)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when config file already exists")
		}
	})
}

func TestSpotifyConfig(t *testing.T) {
	t.Run("Map", func(t *testing.T) {
		cfg := SpotifyConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURI:  "http://localhost:8888/callback",
			AccessToken:  "token",
		}

		m := cfg.Map()
		if m["client_id"] != "id" {
			t.Errorf("expected client_id 'id', got %q", m["client_id"])
		}
		if m["access_token"] != "token" {
			t.Errorf("expected access_token 'token', got %q", m["access_token"])
		}
	})

	t.Run("Update", func(t *testing.T) {
		cfg := SpotifyConfig{RefreshToken: "old_refresh"}
		expiry := time.Now().Add(time.Hour)

		err := cfg.Update(&oauth2.Token{
			AccessToken: "new_access",
			Expiry:      expiry,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if cfg.AccessToken != "new_access" {
			t.Errorf("expected new access token, got %q", cfg.AccessToken)
		}
		if cfg.RefreshToken != "old_refresh" {
			t.Error("expected refresh token to be preserved when absent from new token")
		}
		if cfg.TokenExpiry == "" {
			t.Error("expected token expiry to be recorded")
		}
	})

	t.Run("Update Rejects Empty Token", func(t *testing.T) {
		cfg := SpotifyConfig{}
		if err := cfg.Update(nil); err == nil {
			t.Error("expected error for nil token")
		}
		if err := cfg.Update(&oauth2.Token{}); err == nil {
			t.Error("expected error for empty access token")
		}
	})
}
