package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mixtape-cli/mixtape/internal/models"
	"github.com/mixtape-cli/mixtape/internal/songlist"
	"github.com/mixtape-cli/mixtape/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PromptView ViewState = iota
	BuildView
	ResultView
)

// Model represents the TUI application state for an interactive build.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       tasks.Engine
	songs        *songlist.List
	opts         tasks.BuildOpts
	width        int
	height       int
	nameInput    textinput.Model
	progressChan chan tasks.ProgressUpdate
	buildDone    chan buildCompleteMsg
	progress     tasks.ProgressUpdate
	report       *models.BuildReport
	results      list.Model
	err          error
	help         help.Model
	keys         keyMap
}

type progressUpdateMsg tasks.ProgressUpdate

type buildCompleteMsg struct {
	report *models.BuildReport
	err    error
}

// NewModel creates a new TUI model for building a playlist from the given song list.
//
// opts.Name is used to pre-fill the name prompt; the user's input replaces it.
func NewModel(ctx context.Context, engine tasks.Engine, songs *songlist.List, opts tasks.BuildOpts) *Model {
	input := textinput.New()
	input.Placeholder = "My Mixtape"
	input.SetValue(opts.Name)
	input.CharLimit = 100
	input.Width = 40
	input.Focus()

	// The results list needs a real delegate before the first
	// WindowSizeMsg arrives; the zero value panics on SetSize.
	results := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)

	return &Model{
		ctx:       ctx,
		view:      PromptView,
		engine:    engine,
		songs:     songs,
		opts:      opts,
		nameInput: input,
		results:   results,
		help:      help.New(),
		keys:      newKeyMap(),
	}
}

// Report returns the build report once the run has finished, nil before that.
func (m *Model) Report() *models.BuildReport {
	return m.report
}

// Err returns the build error, if any.
func (m *Model) Err() error {
	return m.err
}

// Init focuses the name prompt.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.results.Width() == 0 {
			m.results.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PromptView:
			return m.handlePromptKeys(msg)
		case BuildView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case buildCompleteMsg:
		m.report = msg.report
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		if m.report != nil && m.report.TotalRequested() > 0 {
			items := make([]list.Item, 0, m.report.TotalRequested())
			for _, match := range m.report.Matches {
				items = append(items, matchItem{match: match})
			}
			for _, req := range m.report.Unmatched {
				items = append(items, unmatchedItem{request: req})
			}
			m.results.SetItems(items)
			m.results.Title = fmt.Sprintf(
				"Tracks (%d matched, %d unmatched)",
				m.report.MatchedCount(), len(m.report.Unmatched),
			)
			m.results.SetSize(m.width-4, m.height-8)
		}
		return m, nil
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case PromptView:
		return m.renderPrompt()
	case BuildView:
		return m.renderBuild()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "enter":
		name := strings.TrimSpace(m.nameInput.Value())
		if name == "" {
			return m, nil
		}
		m.opts.Name = name
		m.view = BuildView
		return m, m.startBuild()
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter", "esc":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PromptView:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case ResultView:
		m.results, cmd = m.results.Update(msg)
	}
	return m, cmd
}

func (m *Model) startBuild() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	progressChan := m.progressChan

	done := make(chan buildCompleteMsg, 1)
	go func() {
		report, err := m.engine.Build(m.ctx, progressChan, m.songs, m.opts)
		done <- buildCompleteMsg{report: report, err: err}
		close(progressChan)
	}()
	m.buildDone = done

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return <-m.buildDone
		}

		update, ok := <-m.progressChan
		if !ok {
			return <-m.buildDone
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderPrompt() string {
	title := styles.title.Render("Name your playlist")
	count := fmt.Sprintf("%d songs ready to match", len(m.songs.Requests))
	if n := len(m.songs.Malformed); n > 0 {
		count += styles.warn.Render(fmt.Sprintf(" (%d malformed lines skipped)", n))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.quit})

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", title, count, m.nameInput.View(), helpView)
}

func (m *Model) renderBuild() string {
	title := styles.title.Render(fmt.Sprintf("Building '%s'", m.opts.Name))

	var phase string
	switch m.progress.Phase {
	case tasks.CreatePlaylist:
		phase = "Creating playlist on Spotify..."
	case tasks.SearchTracks:
		phase = fmt.Sprintf("Searching tracks (%d/%d)", m.progress.Step, m.progress.Total)
	case tasks.AddTracks:
		phase = fmt.Sprintf("Adding tracks (batch %d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Build failed: %v\n\nPress q to quit", m.err))
	}

	if m.report == nil {
		return styles.err.Render("No result available\n\nPress q to quit")
	}

	title := styles.ok.Render("✓ Playlist Created!")
	info := fmt.Sprintf(
		"\nPlaylist: %s\nMatched: %d/%d (%.1f%%)",
		m.report.Playlist.Name,
		m.report.MatchedCount(),
		m.report.TotalRequested(),
		m.report.MatchPercentage(),
	)
	if m.report.Playlist.URL != "" {
		info += fmt.Sprintf("\nURL: %s", m.report.Playlist.URL)
	}

	var tracks string
	if len(m.results.Items()) > 0 {
		tracks = "\n\n" + m.results.View()
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.quit})

	return fmt.Sprintf("%s\n%s%s\n\n%s", title, info, tracks, helpView)
}
