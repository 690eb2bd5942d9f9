package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/shared"
	"github.com/urfave/cli/v3"
)

// parseID parses a numeric id argument.
func parseID(value, label string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: %s is required", shared.ErrMissingArgument, label)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", shared.ErrInvalidArgument, label, value)
	}
	return id, nil
}

func (r *Runner) writeMovieTable(movies []models.MovieSummary) error {
	if len(movies) == 0 {
		return r.writePlain("No movies found.\n")
	}
	for _, m := range movies {
		rating := "   -"
		if m.Rating != nil {
			rating = fmt.Sprintf("%4.1f", *m.Rating)
		}
		year := shared.ReleaseYear(m.ReleaseDate)
		if year == "" {
			year = "????"
		}
		if err := r.writePlain("%8d  %s  %s  %s\n", m.ID, year, rating, m.Title); err != nil {
			return err
		}
	}
	return nil
}

// MoviesRecent lists one page of recently released movies.
func (r *Runner) MoviesRecent(ctx context.Context, cmd *cli.Command) error {
	page := cmd.Int("page")
	limit := cmd.Int("limit")

	r.logger.Info("fetching recent movies", "page", page, "limit", limit)

	movies, err := r.svc.RecentMovies(ctx, page, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Recent Movies (page %d)", page))
	return r.writeMovieTable(movies)
}

// MoviesTop lists one page of top-rated movies.
func (r *Runner) MoviesTop(ctx context.Context, cmd *cli.Command) error {
	page := cmd.Int("page")
	limit := cmd.Int("limit")

	r.logger.Info("fetching top movies", "page", page, "limit", limit)

	movies, err := r.svc.TopMovies(ctx, page, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, cmd.Bool("pretty"))
	}

	r.writePlainHeader(fmt.Sprintf("Top Rated Movies (page %d)", page))
	return r.writeMovieTable(movies)
}

// MoviesSearch searches the catalog by title.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	page := cmd.Int("page")
	limit := cmd.Int("limit")

	r.logger.Info("searching movies", "query", query, "page", page)

	movies, err := r.svc.SearchMovies(ctx, query, page, limit)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, false)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	return r.writeMovieTable(movies)
}

// MoviesShow fetches and renders the full record for one movie.
//
// When authenticated the view is recorded in the watch history, matching the
// web client. --cache stores the summary in the local database and --open
// opens the poster in the system browser.
func (r *Runner) MoviesShow(ctx context.Context, cmd *cli.Command) error {
	movieID, err := parseID(cmd.StringArg("id"), "movie id")
	if err != nil {
		return err
	}

	r.logger.Info("fetching movie", "id", movieID)

	detail, err := r.svc.Movie(ctx, movieID)
	if err != nil {
		return err
	}

	if userID, err := r.userID(); err == nil {
		if err := r.svc.RecordView(ctx, userID, movieID); err != nil {
			r.logger.Warn("failed to record view", "error", err)
		}
	}

	if cmd.Bool("cache") {
		if err := r.cacheMovie(detail); err != nil {
			r.logger.Warn("failed to cache movie", "error", err)
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, true)
	}

	r.writePlainHeader(detail.Title)
	r.writePlain("Released: %s", detail.ReleaseDate)
	if detail.Runtime > 0 {
		r.writePlain("  Runtime: %d min", detail.Runtime)
	}
	if detail.Director != "" {
		r.writePlain("  Director: %s", detail.Director)
	}
	r.writePlain("\nRating: %.1f (%d votes)\n", detail.VoteAverage, detail.VoteCount)
	if detail.UserRating != nil {
		r.writePlain("Your rating: %.1f\n", *detail.UserRating)
	}
	if detail.Overview != "" {
		r.writePlainln("%s", detail.Overview)
	}
	if len(detail.Actors) > 0 {
		names := make([]string, 0, len(detail.Actors))
		for _, a := range detail.Actors {
			names = append(names, a.Name)
		}
		r.writePlain("Cast: %s\n", strings.Join(names, ", "))
	}

	if cmd.Bool("open") {
		if detail.PosterURL == nil {
			r.writePlain("No poster available to open.\n")
		} else if err := shared.OpenBrowser(*detail.PosterURL); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
		}
	}

	return nil
}

// MoviesRate submits a rating for a movie.
func (r *Runner) MoviesRate(ctx context.Context, cmd *cli.Command) error {
	movieID, err := parseID(cmd.StringArg("id"), "movie id")
	if err != nil {
		return err
	}

	ratingArg := strings.TrimSpace(cmd.StringArg("rating"))
	rating, err := strconv.ParseFloat(ratingArg, 64)
	if err != nil {
		return fmt.Errorf("%w: rating must be a number between 0 and 10, got %q", shared.ErrInvalidArgument, ratingArg)
	}

	r.logger.Info("rating movie", "id", movieID, "rating", rating)

	if err := r.svc.Rate(ctx, movieID, rating); err != nil {
		return err
	}

	return r.writePlain("✓ Rated movie %d at %.1f\n", movieID, rating)
}

// MoviesFavorite adds a movie to the caller's favorites.
func (r *Runner) MoviesFavorite(ctx context.Context, cmd *cli.Command) error {
	movieID, err := parseID(cmd.StringArg("id"), "movie id")
	if err != nil {
		return err
	}

	if err := r.svc.Favorite(ctx, movieID); err != nil {
		return err
	}

	return r.writePlain("✓ Added movie %d to favorites\n", movieID)
}

// MoviesUnfavorite removes a movie from the caller's favorites.
func (r *Runner) MoviesUnfavorite(ctx context.Context, cmd *cli.Command) error {
	movieID, err := parseID(cmd.StringArg("id"), "movie id")
	if err != nil {
		return err
	}

	if err := r.svc.Unfavorite(ctx, movieID); err != nil {
		return err
	}

	return r.writePlain("✓ Removed movie %d from favorites\n", movieID)
}

// MoviesComments lists the comments on a movie.
func (r *Runner) MoviesComments(ctx context.Context, cmd *cli.Command) error {
	movieID, err := parseID(cmd.StringArg("id"), "movie id")
	if err != nil {
		return err
	}

	comments, err := r.svc.Comments(ctx, movieID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(comments, true)
	}

	if len(comments) == 0 {
		return r.writePlain("No comments yet.\n")
	}
	for _, c := range comments {
		r.writePlain("%s (%s)\n  %s\n", c.Username, c.CreatedAt, c.Body)
	}
	return nil
}

// MoviesComment posts a comment on a movie.
func (r *Runner) MoviesComment(ctx context.Context, cmd *cli.Command) error {
	movieID, err := parseID(cmd.StringArg("id"), "movie id")
	if err != nil {
		return err
	}
	body := cmd.String("body")

	if err := r.svc.AddComment(ctx, movieID, body); err != nil {
		return err
	}

	return r.writePlain("✓ Comment posted on movie %d\n", movieID)
}

// MoviesRecommend fetches personalized recommendations.
func (r *Runner) MoviesRecommend(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}
	top := cmd.Int("top")

	r.logger.Info("fetching recommendations", "user", userID, "top", top)

	set, err := r.svc.Recommend(ctx, userID, top)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(set, true)
	}

	r.writePlainHeader(fmt.Sprintf("Recommendations (%s)", set.Strategy))
	for _, rec := range set.Items {
		score := ""
		if rec.Score != nil {
			score = fmt.Sprintf("  score %.3f", *rec.Score)
		}
		r.writePlain("%2d. %s (%s)%s\n", rec.Rank, rec.Title, shared.ReleaseYear(rec.ReleaseDate), score)
	}
	return nil
}

// MoviesPopular fetches popular movies within the user's preferred genres.
func (r *Runner) MoviesPopular(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	movies, err := r.svc.PopularByPreference(ctx, userID)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(movies, true)
	}

	r.writePlainHeader("Popular In Your Genres")
	return r.writeMovieTable(movies)
}
