package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/shared"
)

// HistoryRepository implements models.Repository[*models.HistoryEntry] for
// the local watch-history mirror.
//
// Entries are deduplicated via the (user_id, movie_id) constraint, mirroring
// the server's own history semantics.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository with the given database connection
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a new [models.HistoryEntry] with generated ID and sequence
func (r *HistoryRepository) Create(entry *models.HistoryEntry) error {
	sequence, err := NextSequence(r.db, "view_history")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	entry.SetID(id)

	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO view_history (id, sequence, user_id, movie_id, title, viewed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		entry.UserID(),
		entry.MovieID(),
		entry.Title(),
		entry.ViewedAt(),
		entry.CreatedAt(),
		entry.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Get retrieves a history entry by ID, excluding soft-deleted rows
func (r *HistoryRepository) Get(id string) (*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, user_id, movie_id, title, viewed_at, created_at, updated_at, deleted_at
		FROM view_history
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// Update modifies an existing history entry in the database
func (r *HistoryRepository) Update(entry *models.HistoryEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	entry.SetUpdatedAt(now)

	query := `
		UPDATE view_history
		SET title = ?, viewed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, entry.Title(), entry.ViewedAt(), now, entry.ID())
	if err != nil {
		return fmt.Errorf("failed to update history entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("history entry not found or already deleted: %s", entry.ID())
	}

	return nil
}

// Delete soft-deletes a history entry by ID
func (r *HistoryRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE view_history
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("history entry not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves history entries matching the given criteria, excluding soft-deleted rows
func (r *HistoryRepository) List(criteria map[string]any) ([]*models.HistoryEntry, error) {
	query := `
		SELECT id, sequence, user_id, movie_id, title, viewed_at, created_at, updated_at, deleted_at
		FROM view_history
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if userID, ok := criteria["user_id"].(int64); ok && userID > 0 {
		query += " AND user_id = ?"
		args = append(args, userID)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*models.HistoryEntry
	for rows.Next() {
		entry, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

// Record caches one remote history record for the user.
// Returns nil when the entry already exists (deduplication).
// Only returns errors for actual failures, not constraint violations.
func (r *HistoryRepository) Record(userID int64, viewed models.ViewedMovie) error {
	entry := models.NewHistoryEntry(0, userID, viewed)

	if err := r.Create(entry); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to record history entry: %w", err)
	}

	return nil
}

// scanOne scans a single [sql.Row] into a [models.HistoryEntry]
func (r *HistoryRepository) scanOne(row *sql.Row) (*models.HistoryEntry, error) {
	return scanHistory(row.Scan)
}

// scanRow scans a [sql.Rows] cursor position into a [models.HistoryEntry]
func (r *HistoryRepository) scanRow(rows *sql.Rows) (*models.HistoryEntry, error) {
	return scanHistory(rows.Scan)
}

func scanHistory(scan func(...any) error) (*models.HistoryEntry, error) {
	var (
		id        string
		sequence  int
		userID    int64
		movieID   int64
		title     string
		viewedAt  sql.NullString
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := scan(&id, &sequence, &userID, &movieID, &title, &viewedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("history entry not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan history entry: %w", err)
	}

	viewed := models.ViewedMovie{
		MovieID: movieID,
		Title:   title,
		Date:    viewedAt.String,
	}

	entry := models.NewHistoryEntry(sequence, userID, viewed)
	entry.SetID(id)
	entry.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		entry.SetDeletedAt(&deletedAt.Time)
	}

	return entry, nil
}
