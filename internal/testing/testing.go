// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/mixtape-cli/mixtape/internal/models"
)

// MockService is a configurable test double for services.Service.
//
// Function fields override behavior per test; nil fields fall back to benign
// defaults. Call counts and batch sizes are recorded for assertions.
type MockService struct {
	AuthenticateFn   func(ctx context.Context, credentials map[string]string) error
	CurrentUserFn    func(ctx context.Context) (*models.User, error)
	SearchTrackFn    func(ctx context.Context, artist, title string) (*models.Track, error)
	CreatePlaylistFn func(ctx context.Context, name, description string, public bool) (*models.Playlist, error)
	AddTracksFn      func(ctx context.Context, playlistID string, trackIDs []string) error

	mu            sync.Mutex
	SearchCalls   int
	AddCalls      int
	BatchSizes    []int
	AddedTrackIDs []string
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, credentials)
	}
	return nil
}

func (m *MockService) CurrentUser(ctx context.Context) (*models.User, error) {
	if m.CurrentUserFn != nil {
		return m.CurrentUserFn(ctx)
	}
	return &models.User{ID: "mock_user", DisplayName: "Mock User"}, nil
}

func (m *MockService) SearchTrack(ctx context.Context, artist, title string) (*models.Track, error) {
	m.mu.Lock()
	m.SearchCalls++
	m.mu.Unlock()

	if m.SearchTrackFn != nil {
		return m.SearchTrackFn(ctx, artist, title)
	}
	return &models.Track{ID: "mock_track", Title: title, Artist: artist}, nil
}

func (m *MockService) CreatePlaylist(ctx context.Context, name, description string, public bool) (*models.Playlist, error) {
	if m.CreatePlaylistFn != nil {
		return m.CreatePlaylistFn(ctx, name, description, public)
	}
	return &models.Playlist{
		ID:          "mock_playlist",
		Name:        name,
		Description: description,
		Public:      public,
		URL:         "https://open.spotify.com/playlist/mock_playlist",
	}, nil
}

func (m *MockService) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	m.mu.Lock()
	m.AddCalls++
	m.BatchSizes = append(m.BatchSizes, len(trackIDs))
	m.AddedTrackIDs = append(m.AddedTrackIDs, trackIDs...)
	m.mu.Unlock()

	if m.AddTracksFn != nil {
		return m.AddTracksFn(ctx, playlistID, trackIDs)
	}
	return nil
}

func (m *MockService) Name() string { return "mock" }

// MemoryCache is an in-memory tasks.TrackCacher for tests.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]models.Track
	Lookups int
	Stores  int
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]models.Track{}}
}

func (c *MemoryCache) Lookup(query string) (*models.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Lookups++
	track, ok := c.entries[query]
	if !ok {
		return nil, false
	}
	return &track, true
}

func (c *MemoryCache) Store(query string, track models.Track) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Stores++
	c.entries[query] = track
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

var _ io.Writer = (*FWriter)(nil)

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}
