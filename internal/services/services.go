// package services defines interface Service for interacting with music streaming HTTP APIs
package services

import (
	"context"

	"github.com/mixtape-cli/mixtape/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the interface for music service providers that can resolve
// songs and populate playlists.
type Service interface {
	// Authenticate performs OAuth or token-based authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// CurrentUser retrieves the authenticated user's profile.
	CurrentUser(ctx context.Context) (*models.User, error)

	// SearchTrack searches for a track matching the request and returns the
	// first candidate. Returns shared.ErrTrackNotFound (wrapped) when the
	// search yields no results.
	SearchTrack(ctx context.Context, artist, title string) (*models.Track, error)

	// CreatePlaylist creates an empty playlist owned by the current user.
	CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error)

	// AddTracks appends up to the service's per-request maximum of track IDs
	// to a playlist. Callers are responsible for chunking.
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends Service for providers using the OAuth2 authorization code flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the provider's authorization URL for the given state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying config for callback token exchange.
	GetOAuthConfig() *oauth2.Config
}
