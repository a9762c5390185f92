// Package server hosts the temporary HTTP endpoint used during Spotify
// authorization.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first),
// following the standard Go pattern. [RequestLogger] is the only middleware
// the CLI installs.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with
// method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the
// authorization code for tokens, and sends the result through a channel.
//
// It only processes one callback to prevent replay attacks.
//
// # Usage
//
// When the user runs `mixtape auth`, a temporary HTTP server starts on the
// configured host and port (localhost:8888 by default), handles the Spotify
// callback, and shuts down after receiving the OAuth token.
package server
