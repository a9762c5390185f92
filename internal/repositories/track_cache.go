package repositories

import (
	"fmt"
	"strings"

	"github.com/mixtape-cli/mixtape/internal/models"
)

// TrackCacheAdapter implements tasks.TrackCacher using [TrackRepository].
//
// Duplicate queries are silently ignored (UNIQUE constraint violations), so
// concurrent or repeated stores for the same song are harmless.
type TrackCacheAdapter struct {
	repo *TrackRepository
}

// NewTrackCacheAdapter creates a new TrackCacheAdapter with the given repository
func NewTrackCacheAdapter(repo *TrackRepository) *TrackCacheAdapter {
	return &TrackCacheAdapter{repo: repo}
}

// Lookup returns the cached track for a normalized query.
// Any repository error is treated as a miss.
func (a *TrackCacheAdapter) Lookup(query string) (*models.Track, bool) {
	cached, err := a.repo.GetByQuery(query)
	if err != nil || cached == nil {
		return nil, false
	}

	track := cached.Track()
	return &track, true
}

// Store caches a resolved query. Returns nil if the query already exists.
func (a *TrackCacheAdapter) Store(query string, track models.Track) error {
	if existing, err := a.repo.GetByQuery(query); err == nil && existing != nil {
		return nil
	}

	if err := a.repo.Create(models.NewCachedTrack(query, track)); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache track: %w", err)
	}

	return nil
}
