package repositories

import (
	"database/sql"
	"testing"

	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func summary(id int64, title string) models.MovieSummary {
	return models.MovieSummary{ID: id, Title: title, ReleaseDate: "2024-05-01"}
}

func TestMovieRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewCachedMovie(0, summary(550, "Fight Club"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		if movie.ID() == "" {
			t.Error("movie ID should be set after creation")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewCachedMovie(0, summary(550, "Fight Club"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		retrieved, err := repo.Get(movie.ID())
		if err != nil {
			t.Fatalf("failed to get movie: %v", err)
		}

		if retrieved.RemoteID() != 550 {
			t.Errorf("expected remote id 550, got %d", retrieved.RemoteID())
		}
		if retrieved.Title() != "Fight Club" {
			t.Errorf("expected title 'Fight Club', got %s", retrieved.Title())
		}
	})

	t.Run("GetByRemoteID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewCachedMovie(0, summary(603, "The Matrix"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		retrieved, err := repo.GetByRemoteID(603)
		if err != nil {
			t.Fatalf("failed to get movie by remote id: %v", err)
		}
		if retrieved.ID() != movie.ID() {
			t.Errorf("expected ID %s, got %s", movie.ID(), retrieved.ID())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewCachedMovie(0, summary(550, "Fight Club"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		movie.SetOverview("An insomniac office worker.")
		if err := repo.Update(movie); err != nil {
			t.Fatalf("failed to update movie: %v", err)
		}

		retrieved, err := repo.Get(movie.ID())
		if err != nil {
			t.Fatalf("failed to get movie: %v", err)
		}
		if retrieved.Overview() != "An insomniac office worker." {
			t.Errorf("expected updated overview, got %q", retrieved.Overview())
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		movie := models.NewCachedMovie(0, summary(550, "Fight Club"))

		if err := repo.Create(movie); err != nil {
			t.Fatalf("failed to create movie: %v", err)
		}

		if err := repo.Delete(movie.ID()); err != nil {
			t.Fatalf("failed to delete movie: %v", err)
		}

		if _, err := repo.Get(movie.ID()); err == nil {
			t.Error("expected soft-deleted movie to be excluded from Get")
		}

		// Deleting twice should fail
		if err := repo.Delete(movie.ID()); err == nil {
			t.Error("expected error when deleting an already deleted movie")
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewMovieRepository(db)
		for i, title := range []string{"Fight Club", "The Matrix", "Matrix Reloaded"} {
			movie := models.NewCachedMovie(0, summary(int64(100+i), title))
			if err := repo.Create(movie); err != nil {
				t.Fatalf("failed to create movie: %v", err)
			}
		}

		all, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list movies: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 movies, got %d", len(all))
		}

		matching, err := repo.List(map[string]any{"title": "Matrix"})
		if err != nil {
			t.Fatalf("failed to list movies by title: %v", err)
		}
		if len(matching) != 2 {
			t.Errorf("expected 2 matching movies, got %d", len(matching))
		}
	})

	t.Run("Cache", func(t *testing.T) {
		t.Run("inserts new summaries", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewMovieRepository(db)
			if err := repo.Cache(summary(550, "Fight Club")); err != nil {
				t.Fatalf("failed to cache movie: %v", err)
			}

			if _, err := repo.GetByRemoteID(550); err != nil {
				t.Errorf("expected cached movie to be retrievable: %v", err)
			}
		})

		t.Run("refreshes existing rows without duplicating", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewMovieRepository(db)
			if err := repo.Cache(summary(550, "Fight Club")); err != nil {
				t.Fatalf("failed to cache movie: %v", err)
			}

			updated := summary(550, "Fight Club")
			rating := 8.4
			updated.Rating = &rating
			if err := repo.Cache(updated); err != nil {
				t.Fatalf("failed to re-cache movie: %v", err)
			}

			all, err := repo.List(map[string]any{})
			if err != nil {
				t.Fatalf("failed to list movies: %v", err)
			}
			if len(all) != 1 {
				t.Fatalf("expected 1 row after re-cache, got %d", len(all))
			}
			if all[0].Rating() == nil || *all[0].Rating() != 8.4 {
				t.Error("expected refreshed rating to be persisted")
			}
		})
	})
}

func TestHistoryRepository(t *testing.T) {
	viewed := models.ViewedMovie{MovieID: 550, Title: "Fight Club", Date: "2024-05-01"}

	t.Run("Create and Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewHistoryRepository(db)
		entry := models.NewHistoryEntry(0, 7, viewed)

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create history entry: %v", err)
		}

		retrieved, err := repo.Get(entry.ID())
		if err != nil {
			t.Fatalf("failed to get history entry: %v", err)
		}
		if retrieved.UserID() != 7 || retrieved.MovieID() != 550 {
			t.Errorf("unexpected entry user=%d movie=%d", retrieved.UserID(), retrieved.MovieID())
		}
		if retrieved.ViewedAt() != "2024-05-01" {
			t.Errorf("expected viewed_at to survive, got %q", retrieved.ViewedAt())
		}
	})

	t.Run("Create rejects invalid entries", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewHistoryRepository(db)
		entry := models.NewHistoryEntry(0, 0, viewed)

		if err := repo.Create(entry); err == nil {
			t.Error("expected validation error for missing user id")
		}
	})

	t.Run("Record deduplicates", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewHistoryRepository(db)
		if err := repo.Record(7, viewed); err != nil {
			t.Fatalf("failed to record entry: %v", err)
		}
		if err := repo.Record(7, viewed); err != nil {
			t.Fatalf("expected duplicate record to be a no-op, got %v", err)
		}

		entries, err := repo.List(map[string]any{"user_id": int64(7)})
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry after duplicate record, got %d", len(entries))
		}
	})

	t.Run("Record keeps separate users apart", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewHistoryRepository(db)
		if err := repo.Record(7, viewed); err != nil {
			t.Fatalf("failed to record entry: %v", err)
		}
		if err := repo.Record(8, viewed); err != nil {
			t.Fatalf("failed to record entry for second user: %v", err)
		}

		entries, err := repo.List(map[string]any{"user_id": int64(8)})
		if err != nil {
			t.Fatalf("failed to list history: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("expected 1 entry for user 8, got %d", len(entries))
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewHistoryRepository(db)
		entry := models.NewHistoryEntry(0, 7, viewed)

		if err := repo.Create(entry); err != nil {
			t.Fatalf("failed to create history entry: %v", err)
		}
		if err := repo.Delete(entry.ID()); err != nil {
			t.Fatalf("failed to delete history entry: %v", err)
		}
		if _, err := repo.Get(entry.ID()); err == nil {
			t.Error("expected soft-deleted entry to be excluded from Get")
		}
	})
}
