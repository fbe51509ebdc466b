// Package tasks runs the playback session around the playlist engine.
//
// # Session
//
// [Session] serializes access to an [engine.Engine] and turns its results into side effects:
//
//  1. Navigation cues drive the [player.AudioSink]; the sink's end-of-song callback advances the engine.
//  2. Engine changes are persisted: playlist changes rewrite the playlist file at once, settings changes
//     are saved after the debounce interval, and [Session.Close] flushes whatever is pending.
//  3. Songs started from the player are recorded through the optional [Recorder].
//
// [Session.Start] loads playlists, scans the library and restores the saved settings.
// [Session.Run] owns the timers: the season re-check, the auto-save and, when enabled,
// the [Watcher] that rescans the library after folder changes.
//
// # Progress Reporting
//
// Scans and exports report [ProgressUpdate] values on an optional channel. Updates use select
// with default so a slow reader never blocks the operation.
//
// # Exports
//
// [Session.BulkExport] writes playlists through a worker pool and summarizes them in a manifest.
package tasks
