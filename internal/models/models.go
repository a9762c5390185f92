package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// SongRequest is one parsed input line. Immutable after parsing.
type SongRequest struct {
	Artist string
	Title  string
}

// String renders the request in the input file's "Artist - Title" form.
func (s SongRequest) String() string {
	return s.Artist + " - " + s.Title
}

// Query returns the search query sent to the music service.
func (s SongRequest) Query() string {
	return s.Artist + " " + s.Title
}

// User represents the authenticated music service user.
type User struct {
	ID          string
	DisplayName string
}

// Track represents a music track returned by a service search.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Album    string
	Duration int // Duration in seconds
	URI      string
}

// MatchResult is the outcome of resolving a single [SongRequest].
// Track is nil when the search returned no candidates.
type MatchResult struct {
	Request SongRequest
	Track   *Track
}

// Found reports whether the request resolved to a track.
func (m MatchResult) Found() bool {
	return m.Track != nil
}

// Playlist represents a playlist created on a music service.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackCount  int
	Public      bool
	URL         string
}

// MalformedLine records an input line that lacked the "Artist - Title" delimiter.
type MalformedLine struct {
	Number int // 1-based line number in the input file
	Text   string
}

// BuildReport aggregates the results of a full playlist build.
//
// Matches and Unmatched preserve input order. Malformed lines are excluded
// from both. All fields live only for the duration of one run.
type BuildReport struct {
	Playlist  *Playlist
	Matches   []MatchResult
	Unmatched []SongRequest
	Malformed []MalformedLine
	Batches   int // Number of track submission calls made
}

// MatchedCount returns the number of requests that resolved to a track.
func (r *BuildReport) MatchedCount() int {
	return len(r.Matches)
}

// TotalRequested returns the number of valid parsed input lines.
//
// Always equals MatchedCount() + len(Unmatched).
func (r *BuildReport) TotalRequested() int {
	return len(r.Matches) + len(r.Unmatched)
}

// MatchPercentage returns the success rate as a percentage, 0 for empty input.
func (r *BuildReport) MatchPercentage() float64 {
	total := r.TotalRequested()
	if total == 0 {
		return 0
	}
	return float64(len(r.Matches)) / float64(total) * 100
}

// CachedTrack is a resolved search query persisted in the SQLite cache.
//
// The normalized query is unique per row so repeat runs skip the network
// round trip for songs that were already resolved.
type CachedTrack struct {
	id        string
	sequence  int
	query     string
	track     Track
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewCachedTrack creates a CachedTrack for the given normalized query and track.
func NewCachedTrack(query string, track Track) *CachedTrack {
	now := time.Now()
	return &CachedTrack{
		query:     query,
		track:     track,
		createdAt: now,
		updatedAt: now,
	}
}

// RestoreCachedTrack rebuilds a CachedTrack from database columns.
func RestoreCachedTrack(id string, sequence int, query string, track Track, createdAt, updatedAt time.Time, deletedAt *time.Time) *CachedTrack {
	return &CachedTrack{
		id:        id,
		sequence:  sequence,
		query:     query,
		track:     track,
		createdAt: createdAt,
		updatedAt: updatedAt,
		deletedAt: deletedAt,
	}
}

func (c *CachedTrack) ID() string { return c.id }
func (c *CachedTrack) Sequence() int { return c.sequence }
func (c *CachedTrack) Query() string { return c.query }
func (c *CachedTrack) Track() Track { return c.track }
func (c *CachedTrack) CreatedAt() time.Time { return c.createdAt }
func (c *CachedTrack) UpdatedAt() time.Time { return c.updatedAt }
func (c *CachedTrack) DeletedAt() *time.Time { return c.deletedAt }

var _ Model = (*CachedTrack)(nil)

func (c *CachedTrack) SetID(id string) { c.id = id }
func (c *CachedTrack) SetSequence(seq int) { c.sequence = seq }
func (c *CachedTrack) SetUpdatedAt(t time.Time) { c.updatedAt = t }
func (c *CachedTrack) SetDeletedAt(t *time.Time) { c.deletedAt = t }

// Validate checks that the cached track has a query and a track ID.
func (c *CachedTrack) Validate() error {
	if c.query == "" {
		return fmt.Errorf("cached track requires a query")
	}
	if c.track.ID == "" {
		return fmt.Errorf("cached track requires a track ID")
	}
	return nil
}
