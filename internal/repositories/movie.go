package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/shared"
)

// MovieRepository implements models.Repository[*models.CachedMovie] for the
// local movie cache.
//
// Rows mirror remote summaries so browse and export commands can render
// titles without re-fetching. The remote API stays authoritative.
type MovieRepository struct {
	db *sql.DB
}

// NewMovieRepository creates a new MovieRepository with the given database connection
func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts a new [models.CachedMovie] into the database with generated ID and sequence
func (r *MovieRepository) Create(movie *models.CachedMovie) error {
	sequence, err := NextSequence(r.db, "movies")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	movie.SetID(id)

	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO movies (id, sequence, remote_id, title, release_date, poster_url, rating, overview, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		movie.RemoteID(),
		movie.Title(),
		movie.ReleaseDate(),
		movie.PosterURL(),
		movie.Rating(),
		movie.Overview(),
		movie.CreatedAt(),
		movie.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	return nil
}

// Get retrieves a movie by ID, excluding soft-deleted rows
func (r *MovieRepository) Get(id string) (*models.CachedMovie, error) {
	query := `
		SELECT id, sequence, remote_id, title, release_date, poster_url, rating, overview, created_at, updated_at, deleted_at
		FROM movies
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByRemoteID retrieves a movie by its id on the remote API
func (r *MovieRepository) GetByRemoteID(remoteID int64) (*models.CachedMovie, error) {
	query := `
		SELECT id, sequence, remote_id, title, release_date, poster_url, rating, overview, created_at, updated_at, deleted_at
		FROM movies
		WHERE remote_id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, remoteID))
}

// Update modifies an existing movie in the database
func (r *MovieRepository) Update(movie *models.CachedMovie) error {
	if err := movie.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	movie.SetUpdatedAt(now)

	query := `
		UPDATE movies
		SET title = ?, release_date = ?, poster_url = ?, rating = ?, overview = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		movie.Title(),
		movie.ReleaseDate(),
		movie.PosterURL(),
		movie.Rating(),
		movie.Overview(),
		now,
		movie.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("movie not found or already deleted: %s", movie.ID())
	}

	return nil
}

// Delete soft-deletes a movie by ID
func (r *MovieRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE movies
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("movie not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all cached movies matching the given criteria, excluding soft-deleted rows
func (r *MovieRepository) List(criteria map[string]any) ([]*models.CachedMovie, error) {
	query := `
		SELECT id, sequence, remote_id, title, release_date, poster_url, rating, overview, created_at, updated_at, deleted_at
		FROM movies
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if title, ok := criteria["title"].(string); ok && title != "" {
		query += " AND title LIKE ?"
		args = append(args, "%"+title+"%")
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	var movies []*models.CachedMovie
	for rows.Next() {
		movie, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return movies, nil
}

// Cache upserts a remote summary into the local cache. Existing rows are
// refreshed in place so repeated browsing never accumulates duplicates.
func (r *MovieRepository) Cache(summary models.MovieSummary) error {
	existing, err := r.GetByRemoteID(summary.ID)
	if err == nil && existing != nil {
		refreshed := models.NewCachedMovie(existing.Sequence(), summary)
		refreshed.SetID(existing.ID())
		refreshed.SetOverview(existing.Overview())
		return r.Update(refreshed)
	}

	movie := models.NewCachedMovie(0, summary)
	if err := r.Create(movie); err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache movie: %w", err)
	}

	return nil
}

// scanOne scans a single [sql.Row] into a [models.CachedMovie]
func (r *MovieRepository) scanOne(row *sql.Row) (*models.CachedMovie, error) {
	return scanMovie(row.Scan)
}

// scanRow scans a [sql.Rows] cursor position into a [models.CachedMovie]
func (r *MovieRepository) scanRow(rows *sql.Rows) (*models.CachedMovie, error) {
	return scanMovie(rows.Scan)
}

func scanMovie(scan func(...any) error) (*models.CachedMovie, error) {
	var (
		id          string
		sequence    int
		remoteID    int64
		title       string
		releaseDate sql.NullString
		posterURL   sql.NullString
		rating      sql.NullFloat64
		overview    sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := scan(&id, &sequence, &remoteID, &title, &releaseDate, &posterURL, &rating, &overview, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("movie not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	summary := models.MovieSummary{
		ID:          remoteID,
		Title:       title,
		ReleaseDate: releaseDate.String,
	}
	if posterURL.Valid {
		summary.PosterURL = &posterURL.String
	}
	if rating.Valid {
		summary.Rating = &rating.Float64
	}

	movie := models.NewCachedMovie(sequence, summary)
	movie.SetID(id)
	if overview.Valid {
		movie.SetOverview(overview.String)
	}
	movie.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		movie.SetDeletedAt(&deletedAt.Time)
	}

	return movie, nil
}
