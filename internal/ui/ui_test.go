package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mixtape-cli/mixtape/internal/models"
	"github.com/mixtape-cli/mixtape/internal/songlist"
	"github.com/mixtape-cli/mixtape/internal/tasks"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	songs, err := songlist.Parse(strings.NewReader("Toto - Africa\nABBA - Waterloo\n"))
	if err != nil {
		t.Fatalf("failed to parse song list: %v", err)
	}

	return NewModel(context.Background(), nil, songs, tasks.BuildOpts{Name: "Road Trip"})
}

func updateModel(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()

	next, _ := m.Update(msg)
	model, ok := next.(*Model)
	if !ok {
		t.Fatalf("expected *Model, got %T", next)
	}
	return model
}

func TestModelUpdate(t *testing.T) {
	t.Run("Handles Initial Window Size", func(t *testing.T) {
		m := newTestModel(t)

		m = updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

		if m.width != 80 || m.height != 24 {
			t.Errorf("expected 80x24, got %dx%d", m.width, m.height)
		}
		if m.results.Width() != 76 {
			t.Errorf("expected results width 76, got %d", m.results.Width())
		}
	})

	t.Run("Result View Survives Keys With Empty Results", func(t *testing.T) {
		m := newTestModel(t)
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
		m = updateModel(t, m, buildCompleteMsg{report: &models.BuildReport{
			Playlist: &models.Playlist{Name: "Road Trip"},
		}})

		if m.view != ResultView {
			t.Fatalf("expected result view, got %v", m.view)
		}

		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})

		if len(m.results.Items()) != 0 {
			t.Errorf("expected empty results, got %d items", len(m.results.Items()))
		}
	})

	t.Run("Result View Lists Matches And Misses", func(t *testing.T) {
		m := newTestModel(t)
		m = updateModel(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

		report := &models.BuildReport{
			Playlist: &models.Playlist{Name: "Road Trip", URL: "https://open.spotify.com/playlist/p1"},
			Matches: []models.MatchResult{
				{
					Request: models.SongRequest{Artist: "Toto", Title: "Africa"},
					Track:   &models.Track{ID: "t1", Title: "Africa", Artist: "Toto", Album: "Toto IV"},
				},
			},
			Unmatched: []models.SongRequest{
				{Artist: "Unknown", Title: "Nothing"},
			},
		}
		m = updateModel(t, m, buildCompleteMsg{report: report})

		if got := len(m.results.Items()); got != 2 {
			t.Fatalf("expected 2 result items, got %d", got)
		}
		if !strings.Contains(m.results.Title, "1 matched, 1 unmatched") {
			t.Errorf("unexpected list title %q", m.results.Title)
		}

		view := m.View()
		if !strings.Contains(view, "Road Trip") {
			t.Errorf("expected playlist name in view, got %q", view)
		}
		if !strings.Contains(view, "Africa") {
			t.Errorf("expected matched track in view, got %q", view)
		}

		// Movement keys go to the results list once it has items.
		m = updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
		if m.results.Index() != 1 {
			t.Errorf("expected selection to move to index 1, got %d", m.results.Index())
		}
	})

	t.Run("Result View Reports Build Error", func(t *testing.T) {
		m := newTestModel(t)
		m = updateModel(t, m, buildCompleteMsg{err: context.DeadlineExceeded})

		if m.Err() == nil {
			t.Error("expected error to be recorded")
		}
		if !strings.Contains(m.View(), "Build failed") {
			t.Errorf("expected failure message, got %q", m.View())
		}
	})
}

func TestListItems(t *testing.T) {
	t.Run("Match Item", func(t *testing.T) {
		item := matchItem{match: models.MatchResult{
			Request: models.SongRequest{Artist: "Toto", Title: "Africa"},
			Track:   &models.Track{Title: "Africa", Artist: "Toto", Album: "Toto IV"},
		}}

		if item.Title() != "Africa" {
			t.Errorf("unexpected title %q", item.Title())
		}
		if item.Description() != "Toto • Toto IV" {
			t.Errorf("unexpected description %q", item.Description())
		}
		if item.FilterValue() != "Toto - Africa" {
			t.Errorf("unexpected filter value %q", item.FilterValue())
		}
	})

	t.Run("Unmatched Item", func(t *testing.T) {
		item := unmatchedItem{request: models.SongRequest{Artist: "Unknown", Title: "Nothing"}}

		if item.Title() != "Unknown - Nothing" {
			t.Errorf("unexpected title %q", item.Title())
		}
		if item.Description() != "no match found" {
			t.Errorf("unexpected description %q", item.Description())
		}
	})
}
