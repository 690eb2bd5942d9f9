// package services defines interface Service for interacting with the movie API
package services

import (
	"context"

	"github.com/cineia/cinex/internal/models"
)

// Service defines the movie catalog and account operations the client
// depends on. [CineService] implements it against the CinéIA HTTP API.
type Service interface {
	// Name returns the name of the backing service.
	Name() string

	// RecentMovies retrieves one page of recently released movies.
	RecentMovies(ctx context.Context, page, limit int) ([]models.MovieSummary, error)

	// TopMovies retrieves one page of top-rated movies.
	TopMovies(ctx context.Context, page, limit int) ([]models.MovieSummary, error)

	// SearchMovies retrieves one page of movies matching the query.
	SearchMovies(ctx context.Context, query string, page, limit int) ([]models.MovieSummary, error)

	// Movie retrieves the full detail record for a movie.
	// The credential is attached when a session is active so the response
	// can include the caller's own rating.
	Movie(ctx context.Context, movieID int64) (*models.MovieDetail, error)

	// Rate submits a rating (0-10) for a movie. Requires authentication.
	Rate(ctx context.Context, movieID int64, rating float64) error

	// Favorite adds a movie to the caller's favorites. Requires authentication.
	Favorite(ctx context.Context, movieID int64) error

	// Unfavorite removes a movie from the caller's favorites. Requires authentication.
	Unfavorite(ctx context.Context, movieID int64) error

	// Comments retrieves the comments on a movie.
	Comments(ctx context.Context, movieID int64) ([]models.Comment, error)

	// AddComment posts a comment on a movie. Requires authentication.
	AddComment(ctx context.Context, movieID int64, body string) error

	// Lists retrieves the named lists owned by a user. Requires authentication.
	Lists(ctx context.Context, userID int64) ([]models.List, error)

	// ListMovies retrieves the movie ids contained in a list. Requires authentication.
	ListMovies(ctx context.Context, listID int64) ([]int64, error)

	// AddToList adds a movie to a list by name, creating the list if needed.
	// Requires authentication.
	AddToList(ctx context.Context, movieID int64, listName string) error

	// AddToListByID adds a movie to an existing list. Requires authentication.
	// The server answers 409 when the movie is already present.
	AddToListByID(ctx context.Context, userID, listID, movieID int64) error

	// DeleteList deletes a list and its movie entries. Requires authentication.
	DeleteList(ctx context.Context, listID int64) error

	// RemoveFromList removes a single movie from a list. Requires authentication.
	RemoveFromList(ctx context.Context, listID, movieID int64) error

	// RecordView appends a movie to the user's watch history. Requires authentication.
	RecordView(ctx context.Context, userID, movieID int64) error

	// Profile retrieves a user's profile with genre preferences and watch
	// history. Requires authentication.
	Profile(ctx context.Context, userID int64) (*models.UserProfile, error)

	// UpdateGenres replaces the user's preferred genres. Requires authentication.
	UpdateGenres(ctx context.Context, userID int64, genres []string) error

	// Recommend retrieves personalized recommendations. Requires authentication.
	Recommend(ctx context.Context, userID int64, top int) (*models.RecommendationSet, error)

	// PopularByPreference retrieves popular movies within the user's
	// preferred genres. Requires authentication.
	PopularByPreference(ctx context.Context, userID int64) ([]models.MovieSummary, error)
}
