// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mixtape-cli/mixtape/internal/models"
	"github.com/mixtape-cli/mixtape/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Spotify rejects playlist additions above this many tracks per request.
	MaxTracksPerRequest = 100
)

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

type externalURLs struct {
	Spotify string `json:"spotify"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Description  string       `json:"description"`
	Public       bool         `json:"public"`
	ExternalURLs externalURLs `json:"external_urls"`
	URI          string       `json:"uri"`
}

type searchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyService implements the [Service] interface for Spotify API interactions.
// Uses [oauth2] for authentication; the oauth2 client refreshes expired tokens
// automatically when a refresh token is available.
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	baseClient *http.Client // Transport the oauth2 client is built on
	httpClient *http.Client
	baseURL    string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:8888/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes: []string{
			"playlist-modify-public",
			"playlist-modify-private",
		},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		baseClient: http.DefaultClient,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
	}, nil
}

// SetHTTPClient replaces the HTTP client used for all Spotify requests.
// Token refreshes performed by the oauth2 client reuse it as well. Must be
// called before Authenticate; a nil client is ignored.
func (s *SpotifyService) SetHTTPClient(client *http.Client) {
	if client == nil {
		return
	}
	s.baseClient = client
	s.httpClient = client
}

// Authenticate performs OAuth2 authentication with Spotify.
//
// Expects either an "access_token" (with optional "refresh_token" and
// "token_expiry" in RFC3339) or an "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.baseClient)

	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		token := &oauth2.Token{
			AccessToken:  accessToken,
			RefreshToken: credentials["refresh_token"],
		}
		if expiry := credentials["token_expiry"]; expiry != "" {
			if t, err := time.Parse(time.RFC3339, expiry); err == nil {
				token.Expiry = t
			}
		}

		s.token = token
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: failed to exchange auth code: %v", shared.ErrAuthFailed, err)
		}
		s.token = token
		s.httpClient = s.config.Client(ctx, s.token)
		return nil
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig exposes the OAuth2 config for the callback handler.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// doRequest performs an authenticated HTTP request to the Spotify API.
//
// A non-nil body is JSON-encoded. A non-nil result receives the decoded
// response body.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := s.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: status %d", shared.ErrTokenExpired, resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// CurrentUser retrieves the current authenticated user's profile.
func (s *SpotifyService) CurrentUser(ctx context.Context) (*models.User, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}

	return &models.User{ID: user.ID, DisplayName: user.DisplayName}, nil
}

// SearchTrack searches Spotify for "artist title" and returns the first candidate.
//
// No ranking or fuzzy matching is applied: the service's own relevance order
// decides, and an empty result set maps to shared.ErrTrackNotFound.
func (s *SpotifyService) SearchTrack(ctx context.Context, artist, title string) (*models.Track, error) {
	query := artist + " " + title
	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=1", url.QueryEscape(query))

	var response searchResponse
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	if len(response.Tracks.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", shared.ErrTrackNotFound, query)
	}

	return trackFromSpotify(response.Tracks.Items[0]), nil
}

// CreatePlaylist creates a playlist for the current user.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"name":        name,
		"description": description,
		"public":      public,
	}

	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(user.ID))
	if err := s.doRequest(ctx, http.MethodPost, endpoint, body, &playlist); err != nil {
		return nil, err
	}

	playlistURL := playlist.ExternalURLs.Spotify
	if playlistURL == "" {
		playlistURL = "https://open.spotify.com/playlist/" + playlist.ID
	}

	return &models.Playlist{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		Public:      playlist.Public,
		URL:         playlistURL,
	}, nil
}

// AddTracks appends up to [MaxTracksPerRequest] tracks to a playlist.
func (s *SpotifyService) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return fmt.Errorf("%w: no track IDs provided", shared.ErrInvalidInput)
	}
	if len(trackIDs) > MaxTracksPerRequest {
		return fmt.Errorf("%w: maximum %d track IDs allowed", shared.ErrInvalidInput, MaxTracksPerRequest)
	}

	uris := make([]string, len(trackIDs))
	for i, id := range trackIDs {
		uris[i] = "spotify:track:" + id
	}

	body := map[string]any{"uris": uris}
	endpoint := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))

	return s.doRequest(ctx, http.MethodPost, endpoint, body, nil)
}

// trackFromSpotify converts the Spotify wire type to the domain Track.
func trackFromSpotify(st SpotifyTrack) *models.Track {
	track := &models.Track{
		ID:       st.ID,
		Title:    st.Name,
		Album:    st.Album.Name,
		Duration: st.DurationMS / 1000,
		URI:      st.URI,
	}

	if len(st.Artists) > 0 {
		track.Artist = st.Artists[0].Name
	}

	return track
}
