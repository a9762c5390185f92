package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/mixtape-cli/mixtape/internal/server"
	"github.com/mixtape-cli/mixtape/internal/services"
	"github.com/mixtape-cli/mixtape/internal/shared"
	"github.com/mixtape-cli/mixtape/internal/tasks"
)

// Auth performs the OAuth2 authentication flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// exchanges the auth code for tokens.
func (r *Runner) Auth(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	config, err := r.loadConfig(configPath)
	if err != nil {
		return err
	}

	if config.Credentials.Spotify.ClientID == "" || config.Credentials.Spotify.ClientSecret == "" {
		return fmt.Errorf("%w: Spotify client_id and client_secret must be set in config.toml or the environment", shared.ErrMissingCredentials)
	}

	spotifyService, err := services.NewSpotifyService(config.Credentials.Spotify.Map())
	if err != nil {
		return fmt.Errorf("failed to create Spotify service: %w", err)
	}
	spotifyService.SetHTTPClient(r.httpClient)

	token, err := r.doOAuth(config, spotifyService, "authorization")
	if err != nil {
		return err
	}

	if err := config.Credentials.Spotify.Update(token); err != nil {
		return fmt.Errorf("failed to update spotify configuration: %w", err)
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.config = config
	r.spotify = spotifyService
	r.engine = tasks.NewBuildEngine(spotifyService)

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Tokens saved to %s\n\n", configPath)
	r.writePlain("You can now use: mixtape build songs.txt\n")

	return nil
}

// reauth performs the full OAuth2 flow to get new tokens and persists them.
func (r *Runner) reauth(configPath string, config *shared.Config, srv services.OAuthService) (*shared.Config, error) {
	token, err := r.doOAuth(config, srv, "reauthorization")
	if err != nil {
		return nil, err
	}

	if err := config.Credentials.Spotify.Update(token); err != nil {
		return nil, fmt.Errorf("failed to update spotify configuration: %w", err)
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to save config: %w", err)
	}

	r.writePlainln("✓ Reauthorization successful")
	r.writePlain("✓ New tokens saved to %s\n", configPath)

	return config, nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *shared.Config, oauthSrv services.OAuthService, prefix string) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthSrv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(oauthSrv.GetOAuthConfig(), state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth server for %s at %v", prefix, serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify %s...\n", prefix)
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}

// ensureAuth authenticates the Spotify service with tokens cached in config.
//
// Returns ErrNotAuthenticated when no tokens are stored yet.
func (r *Runner) ensureAuth(ctx context.Context, config *shared.Config) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	if config.Credentials.Spotify.AccessToken == "" {
		return fmt.Errorf("%w: run 'mixtape auth' first", shared.ErrNotAuthenticated)
	}

	if err := r.spotify.Authenticate(ctx, config.Credentials.Spotify.Map()); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	return nil
}

// handleAuthError checks if an error is a token expiration error and triggers reauthorization if needed.
func (r *Runner) handleAuthError(ctx context.Context, err error, cmd *cli.Command) (bool, error) {
	if err == nil {
		return false, nil
	}

	if !errors.Is(err, shared.ErrTokenExpired) {
		return false, err
	}

	r.writePlainln("⚠ Authentication token expired. Starting reauthorization...\n")

	configPath := cmd.String("config")
	if configPath == "" {
		configPath = "config.toml"
	}

	config := r.config
	if config == nil {
		if _, statErr := os.Stat(configPath); statErr == nil {
			if loaded, loadErr := shared.LoadConfig(configPath); loadErr == nil {
				config = loaded
			}
		}
		if config == nil {
			config = shared.DefaultConfig()
		}
	}

	oauthSrv, ok := r.spotify.(services.OAuthService)
	if !ok {
		return false, fmt.Errorf("%w: service does not support reauthorization", shared.ErrServiceUnavailable)
	}

	updated, reauthErr := r.reauth(configPath, config, oauthSrv)
	if reauthErr != nil {
		return true, reauthErr
	}

	r.config = updated
	if authErr := r.spotify.Authenticate(ctx, updated.Credentials.Spotify.Map()); authErr != nil {
		return true, fmt.Errorf("failed to authenticate with new tokens: %w", authErr)
	}

	return true, nil
}

// loadConfig loads the config file at path, falling back to defaults.
func (r *Runner) loadConfig(configPath string) (*shared.Config, error) {
	if r.config != nil {
		return r.config, nil
	}

	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			r.logger.Warnf("failed to load config, using defaults %v", err)
			return shared.DefaultConfig(), nil
		}
		return config, nil
	}

	return shared.DefaultConfig(), nil
}
