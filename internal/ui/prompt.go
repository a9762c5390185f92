package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// nameModel is a single-field prompt for the playlist name.
type nameModel struct {
	input    textinput.Model
	done     bool
	canceled bool
}

func newNameModel(defaultName string) nameModel {
	input := textinput.New()
	input.Placeholder = "My Mixtape"
	input.SetValue(defaultName)
	input.CharLimit = 100
	input.Width = 40
	input.Focus()

	return nameModel{input: input}
}

func (m nameModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m nameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.canceled = true
			return m, tea.Quit
		case "enter":
			if strings.TrimSpace(m.input.Value()) != "" {
				m.done = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m nameModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	title := styles.title.Render("Name your playlist")
	hint := styles.help.Render("enter to confirm, esc to cancel")
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.input.View(), hint)
}

// PromptPlaylistName asks the user for a playlist name interactively.
//
// Returns an error if the prompt is canceled or the terminal is unavailable.
func PromptPlaylistName(defaultName string) (string, error) {
	program := tea.NewProgram(newNameModel(defaultName))

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run prompt: %w", err)
	}

	m, ok := final.(nameModel)
	if !ok || m.canceled || !m.done {
		return "", fmt.Errorf("playlist name prompt canceled")
	}

	return strings.TrimSpace(m.input.Value()), nil
}
