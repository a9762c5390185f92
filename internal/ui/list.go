package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/mixtape-cli/mixtape/internal/models"
)

var (
	_ list.Item = matchItem{}
	_ list.Item = unmatchedItem{}
)

// matchItem wraps [models.MatchResult] to implement [list.Item].
type matchItem struct {
	match models.MatchResult
}

func (i matchItem) FilterValue() string { return i.match.Request.String() }
func (i matchItem) Title() string       { return i.match.Track.Title }
func (i matchItem) Description() string {
	desc := i.match.Track.Artist
	if i.match.Track.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.match.Track.Album)
	}
	return desc
}

// unmatchedItem wraps an unmatched [models.SongRequest] to implement [list.Item].
type unmatchedItem struct {
	request models.SongRequest
}

func (i unmatchedItem) FilterValue() string { return i.request.String() }
func (i unmatchedItem) Title() string       { return i.request.String() }
func (i unmatchedItem) Description() string { return "no match found" }
