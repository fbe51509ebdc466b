// Package ui implements the interactive player using bubbletea's Elm architecture.
//
// The [Model] renders one tab per section (library, favorites, blocked, playlists and settings)
// above a transport line. Every action goes through a [tasks.Session]; the model never touches
// the engine directly except to read a snapshot through [tasks.Session.Inspect].
//
// Session events arrive on a channel and are turned into messages by a command that re-arms
// itself after each event, so list contents follow playlist edits and season changes made
// elsewhere (for example through the control API). A one second tick refreshes the position.
//
// Keyboard navigation uses vim-style bindings with contextual help from charmbracelet/bubbles/help.
package ui
