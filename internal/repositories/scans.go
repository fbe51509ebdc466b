package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/nmp/internal/models"
	"github.com/desertthunder/nmp/internal/shared"
)

// ScanRepository implements models.Repository[*models.ScanRecord] for library scan history.
//
// Scan records are append-only; Delete removes the row.
type ScanRepository struct {
	db *sql.DB
}

// NewScanRepository creates a new ScanRepository with the given database connection
func NewScanRepository(db *sql.DB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Create inserts a new [models.ScanRecord] with a generated ID
func (r *ScanRepository) Create(scan *models.ScanRecord) error {
	if err := scan.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	scan.SetID(shared.GenerateID())

	query := `
		INSERT INTO scans (id, started_at, finished_at, song_count, skipped_count, reason)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, scan.ID(), scan.StartedAt, scan.FinishedAt, scan.Songs, scan.Skipped, scan.Reason)
	if err != nil {
		return fmt.Errorf("failed to insert scan: %w", err)
	}

	return nil
}

// Get retrieves a scan by ID
func (r *ScanRepository) Get(id string) (*models.ScanRecord, error) {
	query := `
		SELECT id, started_at, finished_at, song_count, skipped_count, reason
		FROM scans
		WHERE id = ?
	`

	scan, err := scanScan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("scan not found: %s", id)
	}
	return scan, err
}

// Latest returns the most recent scan, or nil when the library has never been scanned.
func (r *ScanRepository) Latest() (*models.ScanRecord, error) {
	scans, err := r.List(map[string]any{"limit": 1})
	if err != nil || len(scans) == 0 {
		return nil, err
	}
	return scans[0], nil
}

// Delete removes a scan by ID
func (r *ScanRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM scans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete scan: %w", err)
	}
	return expectOne(result, "scan", id)
}

// List retrieves scans newest first. Supports "reason" (string) and "limit" (int) criteria.
func (r *ScanRepository) List(criteria map[string]any) ([]*models.ScanRecord, error) {
	query := `
		SELECT id, started_at, finished_at, song_count, skipped_count, reason
		FROM scans
		WHERE 1 = 1
	`
	args := []any{}

	if reason, ok := criteria["reason"].(string); ok && reason != "" {
		query += " AND reason = ?"
		args = append(args, reason)
	}

	query += " ORDER BY started_at DESC"
	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query scans: %w", err)
	}
	defer rows.Close()

	var scans []*models.ScanRecord
	for rows.Next() {
		scan, err := scanScan(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return scans, nil
}

func scanScan(row rowScanner) (*models.ScanRecord, error) {
	var (
		id   string
		scan models.ScanRecord
	)

	err := row.Scan(&id, &scan.StartedAt, &scan.FinishedAt, &scan.Songs, &scan.Skipped, &scan.Reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan scan record: %w", err)
	}

	scan.SetID(id)
	return &scan, nil
}
