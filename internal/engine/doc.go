// Package engine derives playable song lists from the music library and drives playback navigation.
//
// # Derivation
//
// Every list shown to the user comes from one of two pure functions:
//
//   - [DeriveView] : the library filtered by holiday gating, the blocked list and the artist selection, in that order
//   - [LoadNamed] : a named playlist resolved in membership order, with seasonal playlists exempt from holiday gating
//
// [Report] runs the same pipeline and counts what each step removed, so a song hidden by two steps is counted once.
//
// # State
//
// [Engine] holds the library, the playlist memberships, the filters, the current view and the playback position.
// It is owned by a single controller and is not safe for concurrent use. Navigation methods return a [Cue]
// describing what the audio sink should do; the engine itself never touches audio.
//
// After every committed mutation the engine emits exactly one [Change] to its subscribers.
// [Engine.Restore] applies saved settings silently.
//
// # Shuffle
//
// [Shuffle] is Fisher–Yates followed by a best-effort pass that keeps two versions of the same song
// by different artists from playing back to back.
package engine
