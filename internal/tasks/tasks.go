package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/mixtape-cli/mixtape/internal/models"
	"github.com/mixtape-cli/mixtape/internal/services"
	"github.com/mixtape-cli/mixtape/internal/shared"
	"github.com/mixtape-cli/mixtape/internal/songlist"
	"golang.org/x/time/rate"
)

// DefaultBatchSize mirrors Spotify's 100-track-per-request limit.
const DefaultBatchSize = services.MaxTracksPerRequest

// DefaultRateLimit is the default number of search requests per second.
const DefaultRateLimit = 5.0

// TrackCacher persists resolved search queries between runs.
//
// Implemented by repositories.TrackCacheAdapter. Lookup misses and storage
// failures must never fail the build; the engine falls through to the API.
type TrackCacher interface {
	// Lookup returns the cached track for a normalized query, if present.
	Lookup(query string) (*models.Track, bool)

	// Store caches a resolved query. Duplicate queries are ignored.
	Store(query string, track models.Track) error
}

// BuildOpts contains configuration for a playlist build.
type BuildOpts struct {
	Name        string      // Playlist name
	Description string      // Playlist description
	Public      bool        // Playlist visibility
	BatchSize   int         // Tracks per submission (default and max: 100)
	RateLimit   float64     // Search requests per second (default: 5)
	Cache       TrackCacher // Optional search cache
}

// Engine defines the playlist build operation.
type Engine interface {
	// Build resolves every request in list against the music service and
	// populates a newly created playlist with the matches.
	Build(ctx context.Context, progress chan<- ProgressUpdate, list *songlist.List, opts BuildOpts) (*models.BuildReport, error)
}

// BuildEngine implements [Engine] against a single music service.
type BuildEngine struct {
	service services.Service
}

// NewBuildEngine creates a BuildEngine backed by the provided service.
func NewBuildEngine(service services.Service) *BuildEngine {
	return &BuildEngine{service: service}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default so progress reporting never stalls the pipeline.
func (e *BuildEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Build runs the full pipeline: create playlist, resolve each request
// sequentially (first search candidate wins, misses are recorded), then
// submit matched track IDs in fixed-size batches.
//
// Per-song misses are collected in the report and are not errors. A search
// transport failure, playlist creation failure, or batch submission failure
// aborts the run; the report accumulated so far is returned alongside the
// error. Batch failures are surfaced, not retried.
func (e *BuildEngine) Build(ctx context.Context, progress chan<- ProgressUpdate, list *songlist.List, opts BuildOpts) (*models.BuildReport, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: music service not initialized", shared.ErrServiceUnavailable)
	}
	if list == nil {
		return nil, fmt.Errorf("%w: no song list provided", shared.ErrInvalidInput)
	}
	if opts.Name == "" {
		return nil, fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	if opts.BatchSize <= 0 || opts.BatchSize > services.MaxTracksPerRequest {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultRateLimit
	}

	report := &models.BuildReport{
		Malformed: list.Malformed,
	}

	e.sendProgress(progress, createPlaylistUpdate(opts.Name))

	playlist, err := e.service.CreatePlaylist(ctx, opts.Name, opts.Description, opts.Public)
	if err != nil {
		return report, fmt.Errorf("failed to create playlist: %w", err)
	}
	report.Playlist = playlist
	e.sendProgress(progress, playlistCreatedUpdate(playlist))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	total := list.Len()

	for i, req := range list.Requests {
		e.sendProgress(progress, searchTrackUpdate(i+1, total, req))

		track, err := e.resolve(ctx, limiter, req, opts.Cache)
		if err != nil {
			if errors.Is(err, shared.ErrTrackNotFound) {
				report.Unmatched = append(report.Unmatched, req)
				e.sendProgress(progress, trackMissedUpdate(i+1, total, req))
				continue
			}
			// Transport and auth failures are fatal per the error model.
			return report, fmt.Errorf("search failed for %q: %w", req.String(), err)
		}

		report.Matches = append(report.Matches, models.MatchResult{Request: req, Track: track})
		e.sendProgress(progress, trackMatchedUpdate(i+1, total, track))
	}

	trackIDs := make([]string, 0, len(report.Matches))
	for _, match := range report.Matches {
		trackIDs = append(trackIDs, match.Track.ID)
	}

	batches := chunk(trackIDs, opts.BatchSize)
	for i, batch := range batches {
		e.sendProgress(progress, addBatchUpdate(i+1, len(batches), len(batch)))

		if err := e.service.AddTracks(ctx, playlist.ID, batch); err != nil {
			return report, fmt.Errorf("failed to add batch %d/%d: %w", i+1, len(batches), err)
		}
		report.Batches++
	}

	playlist.TrackCount = len(trackIDs)
	e.sendProgress(progress, doneUpdate(report))

	return report, nil
}

// resolve answers a single request from the cache or the service.
//
// The rate limiter only gates real API calls; cache hits are free.
func (e *BuildEngine) resolve(ctx context.Context, limiter *rate.Limiter, req models.SongRequest, cache TrackCacher) (*models.Track, error) {
	key := shared.NormalizeQuery(req.Artist, req.Title)

	if cache != nil {
		if track, ok := cache.Lookup(key); ok {
			return track, nil
		}
	}

	if err := limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter interrupted: %w", err)
	}

	track, err := e.service.SearchTrack(ctx, req.Artist, req.Title)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		// Best effort: a cache write failure must not fail the run.
		_ = cache.Store(key, *track)
	}

	return track, nil
}

// chunk splits ids into groups of at most size, preserving order.
func chunk(ids []string, size int) [][]string {
	if len(ids) == 0 {
		return nil
	}

	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}

	return chunks
}
