// Package services defines the [Service] interface for music streaming providers and implements it for Spotify.
//
// # Service Interface
//
// The pipeline talks to providers through a small abstraction: authenticate,
// look up the current user, search one track, create a playlist, and append a
// batch of tracks. Everything else the Spotify Web API offers is out of scope.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 (authorization code flow) for authentication.
//
// The [oauth2.Config] client automatically refreshes expired tokens using the
// refresh token, so the tool performs the interactive flow once and reuses the
// cached tokens across runs.
//
// # OAuth Service Extension
//
// The [OAuthService] interface extends Service for OAuth providers, exposing
// the authorization URL and underlying config needed by the local callback
// server during `mixtape auth`.
package services
