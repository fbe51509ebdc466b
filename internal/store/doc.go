// Package store implements the flat-file side of the player: artist folders, playlist files and the settings document.
//
// Playlists live in one directory as <name>.txt with one filename per line. Settings are a single JSON
// document merged over [models.DefaultSettings] on load. Writes go through a temp file and a rename so a
// crash never leaves a half-written playlist or settings file.
package store
