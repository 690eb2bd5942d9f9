package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/repositories"
	"github.com/cineia/cinex/internal/shared"
	"github.com/urfave/cli/v3"
)

// openDatabase opens the cache database named by the config file at path,
// falling back to the runner's config when the file is absent.
func (r *Runner) openDatabase(configPath string) (*sql.DB, error) {
	config := r.config
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if loaded, err := shared.LoadConfig(configPath); err == nil {
				config = loaded
			}
		}
	}

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
	return db, nil
}

// cacheMovie stores a fetched movie in the local cache database.
func (r *Runner) cacheMovie(detail *models.MovieDetail) error {
	db, err := r.openDatabase("")
	if err != nil {
		return err
	}
	defer db.Close()

	rating := detail.VoteAverage
	repo := repositories.NewMovieRepository(db)
	return repo.Cache(models.MovieSummary{
		ID:          detail.ID,
		Title:       detail.Title,
		ReleaseDate: detail.ReleaseDate,
		PosterURL:   detail.PosterURL,
		Rating:      &rating,
	})
}

// CacheMovies lists locally cached movies, optionally filtered by title.
func (r *Runner) CacheMovies(ctx context.Context, cmd *cli.Command) error {
	db, err := r.openDatabase(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if title := cmd.String("title"); title != "" {
		criteria["title"] = title
	}

	repo := repositories.NewMovieRepository(db)
	movies, err := repo.List(criteria)
	if err != nil {
		return fmt.Errorf("failed to list cached movies: %w", err)
	}

	if len(movies) == 0 {
		return r.writePlain("Cache is empty. Run 'cinex movies show <id> --cache' to populate it.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Cached Movies (%d)", len(movies)))
	for _, m := range movies {
		rating := "   -"
		if m.Rating() != nil {
			rating = fmt.Sprintf("%4.1f", *m.Rating())
		}
		r.writePlain("%8d  %s  %s  %s\n", m.RemoteID(), shared.ReleaseYear(m.ReleaseDate()), rating, m.Title())
	}
	return nil
}

// CacheHistory lists the locally mirrored watch history.
func (r *Runner) CacheHistory(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	db, err := r.openDatabase(cmd.String("config"))
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewHistoryRepository(db)
	entries, err := repo.List(map[string]any{"user_id": userID})
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if len(entries) == 0 {
		return r.writePlain("No local history. Run 'cinex profile sync' first.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Local Watch History (%d)", len(entries)))
	for _, e := range entries {
		r.writePlain("%s  %8d  %s\n", e.ViewedAt(), e.MovieID(), e.Title())
	}
	return nil
}
