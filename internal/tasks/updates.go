package tasks

import (
	"fmt"

	"github.com/mixtape-cli/mixtape/internal/models"
)

// ProgressUpdate represents a progress event during a playlist build.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	CreatePlaylist Phase = iota
	SearchTracks
	AddTracks
	Done
)

func (p Phase) String() string {
	switch p {
	case CreatePlaylist:
		return "create_playlist"
	case SearchTracks:
		return "search_tracks"
	case AddTracks:
		return "add_tracks"
	case Done:
		return "done"
	default:
		return ""
	}
}

func createPlaylistUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist %q...", name),
	}
}

func playlistCreatedUpdate(pl *models.Playlist) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Playlist created: %s (ID: %s)", pl.Name, pl.ID),
		Data:    pl,
	}
}

func searchTrackUpdate(step, total int, req models.SongRequest) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, req.Artist, req.Title),
	}
}

func trackMatchedUpdate(step, total int, track *models.Track) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✓ Found: %s by %s", track.Title, track.Artist),
		Data:    track,
	}
}

func trackMissedUpdate(step, total int, req models.SongRequest) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✗ Could not find: %s - %s", req.Artist, req.Title),
	}
}

func addBatchUpdate(step, total, size int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddTracks,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Adding batch of %d tracks...", step, total, size),
	}
}

func doneUpdate(report *models.BuildReport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Matched %d/%d tracks", report.MatchedCount(), report.TotalRequested()),
		Data:    report,
	}
}
