// Package models defines domain entities and persistence interfaces for the nmp music player.
//
// The package contains three categories of types:
//
// 1. Library values: immutable data parsed from the music folders
//   - [Song] : one audio file with its filename-derived title, date and [Artist]
//   - [Artist] : the performer resolved from the folder hint or filename
//
// 2. Player state: values shared between the engine, the persisted settings and the UI
//   - [View] : the section or named playlist being shown
//   - [RepeatMode] and [TransportState] : playback navigation state
//   - [Settings] : the JSON settings document restored on start
//
// 3. Persistent entities: database-backed records implementing [Model]
//   - [PlayEvent] : one song started from the player
//   - [ScanRecord] : one full ingest of the music folders
//
// Reserved and seasonal playlist names live here so the engine, the file store and the CLI agree on them.
package models
