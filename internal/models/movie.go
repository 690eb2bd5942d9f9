package models

// MovieSummary is the compact movie representation returned by list endpoints
// (recent, top, search, recommendations).
type MovieSummary struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	PosterURL   *string  `json:"poster_url"` // nil when the API has no poster
	Rating      *float64 `json:"rating"`
}

// Actor represents a cast member on a movie detail page.
type Actor struct {
	ActorID    int64   `json:"actor_id"`
	Name       string  `json:"actor_name"`
	ProfileURL *string `json:"profile_url"`
	Character  string  `json:"character"`
}

// MovieDetail is the full movie record returned by GET /movies/{id}.
type MovieDetail struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	Overview         string   `json:"overview"`
	PosterURL        *string  `json:"poster_url"`
	BackdropURL      *string  `json:"backdrop_url"`
	ReleaseDate      string   `json:"release_date"`
	Director         string   `json:"director"`
	IsAdult          bool     `json:"is_adult"`
	Budget           int64    `json:"budget"`
	OriginalLanguage string   `json:"original_language"`
	Popularity       float64  `json:"popularity"`
	Revenue          int64    `json:"revenue"`
	Runtime          int      `json:"runtime"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int      `json:"vote_count"`
	UserRating       *float64 `json:"user_rating,omitempty"`
	Actors           []Actor  `json:"actors"`
}

// List is a named movie collection owned by a user.
type List struct {
	ID   int64  `json:"list_id"`
	Name string `json:"list_name"`
}

// ListExport bundles a list with its resolved movies for export.
type ListExport struct {
	List   List           `json:"list"`
	Movies []MovieSummary `json:"movies"`
}

// Comment is a user comment on a movie.
type Comment struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	Body      string `json:"body"`
	CreatedAt string `json:"created_at"`
}

// Genre is a genre preference entry on a user profile.
type Genre struct {
	ID   int64  `json:"genre_id"`
	Name string `json:"genre_name"`
}

// ViewedMovie is a watch-history entry on a user profile.
type ViewedMovie struct {
	MovieID int64  `json:"movie_id"`
	Title   string `json:"title"`
	Date    string `json:"date"`
}

// UserProfile is the record returned by GET /users/{id}.
type UserProfile struct {
	UserID        int64         `json:"user_id"`
	Email         string        `json:"email"`
	Age           int           `json:"age"`
	Genres        []Genre       `json:"genres"`
	CheckedMovies []ViewedMovie `json:"checked_movies"`
}

// Recommendation is a ranked movie suggestion from the recommender.
type Recommendation struct {
	Rank        int      `json:"rank"`
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"release_date"`
	PosterURL   *string  `json:"poster_url"`
	Rating      *float64 `json:"rating"`
	Score       *float64 `json:"score"`
}

// RecommendationSet is the full response of GET /movies/{userId}/recommend
// including the server's strategy tag (cold | warm+rank).
type RecommendationSet struct {
	UserID   int64            `json:"user_id"`
	Strategy string           `json:"strategy"`
	Items    []Recommendation `json:"items"`
}

// Summary converts a Recommendation to a MovieSummary for uniform rendering.
func (r Recommendation) Summary() MovieSummary {
	return MovieSummary{
		ID:          r.ID,
		Title:       r.Title,
		ReleaseDate: r.ReleaseDate,
		PosterURL:   r.PosterURL,
		Rating:      r.Rating,
	}
}

// PreferredGenres is the fixed genre catalog the profile editor offers.
var PreferredGenres = []string{
	"Western", "Drama", "Action", "Crime", "Mystery", "Thriller", "Horror",
	"Adventure", "Science Fiction", "Romance", "Comedy", "War", "Fantasy",
	"Animation", "Family", "History", "TV Movie", "Music", "Documentary",
}

// ValidGenre reports whether name is part of the supported genre catalog.
func ValidGenre(name string) bool {
	for _, g := range PreferredGenres {
		if g == name {
			return true
		}
	}
	return false
}
