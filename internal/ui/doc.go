// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI walks through a playlist build in three views:
//  1. [PromptView] : Enter the playlist name
//  2. [BuildView] : Monitor real-time search and submission progress
//  3. [ResultView] : Review the created playlist and unmatched songs
//
// The [Model] implements bubbletea's standard Init/Update/View pattern.
// Progress updates flow through a channel from the build engine, providing
// non-blocking status reporting while tracks are resolved.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
