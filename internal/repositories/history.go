package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
)

// HistoryRepository implements models.Repository[*models.PlayEvent] for play history.
//
// Deleting an event soft-deletes it; aggregates and listings skip deleted rows.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new [models.PlayEvent] with a generated ID
func (r *HistoryRepository) Create(event *models.PlayEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	event.SetID(shared.GenerateID())

	query := `
		INSERT INTO plays (id, filename, title, artist, source, played_at, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		event.ID(),
		event.Filename,
		event.Title,
		event.Artist.String(),
		event.Source,
		event.PlayedAt,
		event.Completed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert play: %w", err)
	}

	return nil
}

// Get retrieves a play by ID, excluding soft-deleted plays
func (r *HistoryRepository) Get(id string) (*models.PlayEvent, error) {
	query := `
		SELECT id, filename, title, artist, source, played_at, completed
		FROM plays
		WHERE id = ? AND deleted_at IS NULL
	`

	event, err := scanPlay(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("play not found: %s", id)
	}
	return event, err
}

// MarkCompleted flags a play as having reached the end of the song
func (r *HistoryRepository) MarkCompleted(id string) error {
	result, err := r.db.Exec(`UPDATE plays SET completed = 1 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to update play: %w", err)
	}
	return expectOne(result, "play", id)
}

// Delete soft-deletes a play by ID
func (r *HistoryRepository) Delete(id string) error {
	result, err := r.db.Exec(`UPDATE plays SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete play: %w", err)
	}
	return expectOne(result, "play", id)
}

// Clear soft-deletes every play and returns how many were removed
func (r *HistoryRepository) Clear() (int64, error) {
	result, err := r.db.Exec(`UPDATE plays SET deleted_at = ? WHERE deleted_at IS NULL`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	return result.RowsAffected()
}

// List retrieves plays matching the given criteria, newest first.
//
// Recognized criteria: "filename", "artist", "source" (strings), "since" ([time.Time]) and "limit" (int).
func (r *HistoryRepository) List(criteria map[string]any) ([]*models.PlayEvent, error) {
	query := `
		SELECT id, filename, title, artist, source, played_at, completed
		FROM plays
		WHERE deleted_at IS NULL
	`
	args := []any{}

	for _, key := range []string{"filename", "artist", "source"} {
		if v, ok := criteria[key].(string); ok && v != "" {
			query += fmt.Sprintf(" AND %s = ?", key)
			args = append(args, v)
		}
	}
	if since, ok := criteria["since"].(time.Time); ok && !since.IsZero() {
		query += " AND played_at >= ?"
		args = append(args, since)
	}

	query += " ORDER BY played_at DESC"
	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %w", err)
	}
	defer rows.Close()

	var events []*models.PlayEvent
	for rows.Next() {
		event, err := scanPlay(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return events, nil
}

// Recent returns the last limit plays
func (r *HistoryRepository) Recent(limit int) ([]*models.PlayEvent, error) {
	return r.List(map[string]any{"limit": limit})
}

// TopPlayed aggregates plays per song, most played first; ties go to the most recent.
func (r *HistoryRepository) TopPlayed(limit int) ([]models.PlayCount, error) {
	query := `
		SELECT filename, MAX(title), MAX(artist), COUNT(*) AS plays, MAX(played_at) AS last_played
		FROM plays
		WHERE deleted_at IS NULL
		GROUP BY filename
		ORDER BY plays DESC, last_played DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query play counts: %w", err)
	}
	defer rows.Close()

	var counts []models.PlayCount
	for rows.Next() {
		var (
			c          models.PlayCount
			artist     string
			lastPlayed string
		)
		if err := rows.Scan(&c.Filename, &c.Title, &artist, &c.Plays, &lastPlayed); err != nil {
			return nil, fmt.Errorf("failed to scan play count: %w", err)
		}
		c.Artist, _ = models.ParseArtist(artist)
		if c.LastPlayed, err = parseTimestamp(lastPlayed); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return counts, nil
}

// Count returns the number of plays, excluding soft-deleted plays
func (r *HistoryRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM plays WHERE deleted_at IS NULL`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}
	return n, nil
}

func scanPlay(row rowScanner) (*models.PlayEvent, error) {
	var (
		id     string
		event  models.PlayEvent
		artist string
	)

	err := row.Scan(&id, &event.Filename, &event.Title, &artist, &event.Source, &event.PlayedAt, &event.Completed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan play: %w", err)
	}

	event.SetID(id)
	event.Artist, _ = models.ParseArtist(artist)
	return &event, nil
}
