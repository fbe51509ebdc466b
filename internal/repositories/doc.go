// Package repositories implements SQLite persistence for listening history.
//
// Each repository implements models.Repository[T] for one table:
//   - [HistoryRepository] : songs started from the player, with play counts and soft deletes
//   - [ScanRepository] : library scans with song and skip counts
//
// [HistoryRecorder] adapts both for the playback session. [Purge] removes soft-deleted rows for good.
package repositories
