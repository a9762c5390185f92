package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mixtape-cli/mixtape/internal/models"
	"github.com/mixtape-cli/mixtape/internal/shared"
)

// TrackRepository persists resolved search queries.
//
// Rows are keyed by the normalized query (UNIQUE) so a song resolved once is
// never searched again. Soft deletes keep rows recoverable.
type TrackRepository struct {
	db *sql.DB
}

// NewTrackRepository creates a new TrackRepository with the given database connection
func NewTrackRepository(db *sql.DB) *TrackRepository {
	return &TrackRepository{db: db}
}

// Create inserts a new [models.CachedTrack] into the database with generated ID and sequence
func (r *TrackRepository) Create(track *models.CachedTrack) error {
	sequence, err := NextSequence(r.db, "tracks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	track.SetID(shared.GenerateID())
	track.SetSequence(sequence)

	if err := track.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO tracks (id, sequence, query, track_id, title, artist, album, duration, uri, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	dto := track.Track()
	_, err = r.db.Exec(query,
		track.ID(),
		track.Sequence(),
		track.Query(),
		dto.ID,
		dto.Title,
		dto.Artist,
		dto.Album,
		dto.Duration,
		dto.URI,
		track.CreatedAt(),
		track.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert track: %w", err)
	}

	return nil
}

// Get retrieves a cached track by ID, excluding soft-deleted rows
func (r *TrackRepository) Get(id string) (*models.CachedTrack, error) {
	query := `
		SELECT id, sequence, query, track_id, title, artist, album, duration, uri, created_at, updated_at, deleted_at
		FROM tracks
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByQuery retrieves a cached track by its normalized search query
func (r *TrackRepository) GetByQuery(searchQuery string) (*models.CachedTrack, error) {
	query := `
		SELECT id, sequence, query, track_id, title, artist, album, duration, uri, created_at, updated_at, deleted_at
		FROM tracks
		WHERE query = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, searchQuery))
}

// Delete soft-deletes a cached track by ID
func (r *TrackRepository) Delete(id string) error {
	now := time.Now()

	result, err := r.db.Exec("UPDATE tracks SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL", now, id)
	if err != nil {
		return fmt.Errorf("failed to delete track: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", shared.ErrTrackNotFound, id)
	}

	return nil
}

// List retrieves all cached tracks ordered by insertion sequence
func (r *TrackRepository) List() ([]*models.CachedTrack, error) {
	query := `
		SELECT id, sequence, query, track_id, title, artist, album, duration, uri, created_at, updated_at, deleted_at
		FROM tracks
		WHERE deleted_at IS NULL
		ORDER BY sequence
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer rows.Close()

	var tracks []*models.CachedTrack
	for rows.Next() {
		track, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tracks, nil
}

// Purge permanently removes all rows. Used by `mixtape cache clear`.
func (r *TrackRepository) Purge() (int64, error) {
	result, err := r.db.Exec("DELETE FROM tracks")
	if err != nil {
		return 0, fmt.Errorf("failed to purge tracks: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check purge result: %w", err)
	}

	return affected, nil
}

type trackColumns struct {
	id        string
	sequence  int
	query     string
	trackID   string
	title     string
	artist    string
	album     sql.NullString
	duration  int
	uri       sql.NullString
	createdAt time.Time
	updatedAt time.Time
	deletedAt sql.NullTime
}

func (c *trackColumns) toModel() *models.CachedTrack {
	dto := models.Track{
		ID:       c.trackID,
		Title:    c.title,
		Artist:   c.artist,
		Album:    c.album.String,
		Duration: c.duration,
		URI:      c.uri.String,
	}

	var deletedAt *time.Time
	if c.deletedAt.Valid {
		deletedAt = &c.deletedAt.Time
	}

	return models.RestoreCachedTrack(c.id, c.sequence, c.query, dto, c.createdAt, c.updatedAt, deletedAt)
}

// scanOne scans a single [sql.Row] into a [models.CachedTrack]
func (r *TrackRepository) scanOne(row *sql.Row) (*models.CachedTrack, error) {
	var c trackColumns

	err := row.Scan(&c.id, &c.sequence, &c.query, &c.trackID, &c.title, &c.artist, &c.album, &c.duration, &c.uri, &c.createdAt, &c.updatedAt, &c.deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: no cached entry", shared.ErrTrackNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	return c.toModel(), nil
}

// scanRow scans a row from [sql.Rows] into a [models.CachedTrack]
func (r *TrackRepository) scanRow(rows *sql.Rows) (*models.CachedTrack, error) {
	var c trackColumns

	err := rows.Scan(&c.id, &c.sequence, &c.query, &c.trackID, &c.title, &c.artist, &c.album, &c.duration, &c.uri, &c.createdAt, &c.updatedAt, &c.deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan track: %w", err)
	}

	return c.toModel(), nil
}
