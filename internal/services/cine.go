// CinéIA API [Service] implementation
//
// Communicates with the Flask catalog server running on port 5000. Read
// endpoints are open; mutations require the session's bearer token.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2"

	"github.com/cineia/cinex/internal/auth"
	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/shared"
)

const defaultCineBaseURL string = "http://127.0.0.1:5000"

// authMode controls whether a request carries the session's bearer token.
type authMode int

const (
	// authNone sends the request without a credential.
	authNone authMode = iota
	// authRequired fails with [shared.ErrLoginRequired] before any network
	// traffic when the session is anonymous.
	authRequired
	// authOptional attaches the token when a session is active and falls
	// back to an anonymous request otherwise.
	authOptional
)

// statusError is an error response from the API. Unwrap maps well-known
// status codes to sentinel errors so callers can test with errors.Is.
type statusError struct {
	status int
	detail string
}

func (e *statusError) Error() string {
	if e.detail != "" {
		return fmt.Sprintf("API error (status %d): %s", e.status, e.detail)
	}
	return fmt.Sprintf("API error: status %d", e.status)
}

func (e *statusError) Unwrap() error {
	switch e.status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return shared.ErrAuthFailed
	case http.StatusConflict:
		return shared.ErrDuplicateEntry
	default:
		return shared.ErrAPIRequest
	}
}

func isStatus(err error, code int) bool {
	var se *statusError
	return errors.As(err, &se) && se.status == code
}

// CineService implements the Service interface against the CinéIA API.
type CineService struct {
	baseURL    string
	session    *auth.Session
	httpClient *http.Client
}

// NewCineService creates a new catalog service instance. The session gates
// authenticated endpoints and supplies the bearer token.
func NewCineService(baseURL string, session *auth.Session, client *http.Client) *CineService {
	if baseURL == "" {
		baseURL = defaultCineBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &CineService{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		session:    session,
		httpClient: client,
	}
}

// Name returns the service name.
func (c *CineService) Name() string {
	return "CinéIA"
}

// client returns the HTTP client for the given auth mode. Required requests
// against an anonymous session fail here, before touching the network.
func (c *CineService) client(mode authMode) (*http.Client, error) {
	if mode == authNone {
		return c.httpClient, nil
	}

	token, err := c.session.Token()
	if err != nil {
		if mode == authOptional {
			return c.httpClient, nil
		}
		return nil, err
	}

	return &http.Client{
		Transport: &oauth2.Transport{
			Source: auth.TokenSource(token),
			Base:   c.httpClient.Transport,
		},
		Timeout: c.httpClient.Timeout,
	}, nil
}

func (c *CineService) doRequest(ctx context.Context, method, endpoint string, payload, result any, mode authMode) error {
	client, err := c.client(mode)
	if err != nil {
		return err
	}

	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		detail := ""
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
			detail = errResp.Error
			if detail == "" {
				detail = errResp.Message
			}
		}
		return &statusError{status: resp.StatusCode, detail: detail}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

func pageQuery(page, limit int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q.Encode()
}

// RecentMovies retrieves one page of recently released movies.
//
// Calls GET /api/movies/recent.
func (c *CineService) RecentMovies(ctx context.Context, page, limit int) ([]models.MovieSummary, error) {
	var movies []models.MovieSummary
	endpoint := "/api/movies/recent?" + pageQuery(page, limit)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &movies, authNone); err != nil {
		return nil, err
	}
	return movies, nil
}

// TopMovies retrieves one page of top-rated movies.
//
// Calls GET /api/movies/top.
func (c *CineService) TopMovies(ctx context.Context, page, limit int) ([]models.MovieSummary, error) {
	var movies []models.MovieSummary
	endpoint := "/api/movies/top?" + pageQuery(page, limit)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &movies, authNone); err != nil {
		return nil, err
	}
	return movies, nil
}

// SearchMovies retrieves one page of movies matching the query. The server
// matches title substrings and exact keywords.
//
// Calls GET /api/movies/search.
func (c *CineService) SearchMovies(ctx context.Context, query string, page, limit int) ([]models.MovieSummary, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%w: search query is required", shared.ErrInvalidInput)
	}

	var result struct {
		Movies []models.MovieSummary `json:"movies"`
	}

	q := url.Values{}
	q.Set("query", query)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	endpoint := "/api/movies/search?" + q.Encode()
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &result, authNone); err != nil {
		return nil, err
	}
	return result.Movies, nil
}

// Movie retrieves the full detail record for a movie. The credential is
// attached when a session is active so the response can carry the caller's
// own rating.
//
// Calls GET /api/movies/{id}.
func (c *CineService) Movie(ctx context.Context, movieID int64) (*models.MovieDetail, error) {
	var detail models.MovieDetail
	endpoint := fmt.Sprintf("/api/movies/%d", movieID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &detail, authOptional); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, movieID)
		}
		return nil, err
	}
	return &detail, nil
}

// Rate submits a rating for a movie. The server upserts, so re-rating
// replaces the previous value.
//
// Calls POST /api/movies/{id}/rate.
func (c *CineService) Rate(ctx context.Context, movieID int64, rating float64) error {
	if rating < 0 || rating > 10 {
		return fmt.Errorf("%w: rating must be between 0 and 10", shared.ErrInvalidInput)
	}

	payload := map[string]float64{"rating": rating}
	endpoint := fmt.Sprintf("/api/movies/%d/rate", movieID)
	return c.doRequest(ctx, http.MethodPost, endpoint, payload, nil, authRequired)
}

// Favorite adds a movie to the caller's favorites list, creating the list on
// first use. Re-favoriting is a no-op on the server.
//
// Calls POST /api/movies/{id}/favorite.
func (c *CineService) Favorite(ctx context.Context, movieID int64) error {
	endpoint := fmt.Sprintf("/api/movies/%d/favorite", movieID)
	return c.doRequest(ctx, http.MethodPost, endpoint, nil, nil, authRequired)
}

// Unfavorite removes a movie from the caller's favorites list.
//
// Calls DELETE /api/movies/{id}/favorite.
func (c *CineService) Unfavorite(ctx context.Context, movieID int64) error {
	endpoint := fmt.Sprintf("/api/movies/%d/favorite", movieID)
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, authRequired)
}

// Comments retrieves the comments on a movie.
//
// Calls GET /api/movies/{id}/comments.
func (c *CineService) Comments(ctx context.Context, movieID int64) ([]models.Comment, error) {
	var comments []models.Comment
	endpoint := fmt.Sprintf("/api/movies/%d/comments", movieID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &comments, authNone); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %d", shared.ErrMovieNotFound, movieID)
		}
		return nil, err
	}
	return comments, nil
}

// AddComment posts a comment on a movie.
//
// Calls POST /api/movies/{id}/comments.
func (c *CineService) AddComment(ctx context.Context, movieID int64, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: comment body is required", shared.ErrInvalidInput)
	}

	payload := map[string]string{"body": body}
	endpoint := fmt.Sprintf("/api/movies/%d/comments", movieID)
	return c.doRequest(ctx, http.MethodPost, endpoint, payload, nil, authRequired)
}

// Lists retrieves the named lists owned by a user.
//
// Calls GET /api/users/{id}/lists.
func (c *CineService) Lists(ctx context.Context, userID int64) ([]models.List, error) {
	var lists []models.List
	endpoint := fmt.Sprintf("/api/users/%d/lists", userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &lists, authRequired); err != nil {
		return nil, err
	}
	return lists, nil
}

// ListMovies retrieves the movie ids in a list.
//
// Calls GET /api/movies/{listId}/movies.
func (c *CineService) ListMovies(ctx context.Context, listID int64) ([]int64, error) {
	var result struct {
		MovieIDs []int64 `json:"movie_ids"`
	}

	endpoint := fmt.Sprintf("/api/movies/%d/movies", listID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &result, authRequired); err != nil {
		if isStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %d", shared.ErrListNotFound, listID)
		}
		return nil, err
	}
	return result.MovieIDs, nil
}

// AddToList adds a movie to a list by name. The server creates the list on
// first use and ignores duplicate entries.
//
// Calls POST /api/movies/{id}/add-to-list.
func (c *CineService) AddToList(ctx context.Context, movieID int64, listName string) error {
	if strings.TrimSpace(listName) == "" {
		return fmt.Errorf("%w: list name is required", shared.ErrInvalidInput)
	}

	payload := map[string]string{"list_name": listName}
	endpoint := fmt.Sprintf("/api/movies/%d/add-to-list", movieID)
	return c.doRequest(ctx, http.MethodPost, endpoint, payload, nil, authRequired)
}

// AddToListByID adds a movie to an existing list. Unlike AddToList the
// server rejects duplicates with 409, surfaced as [shared.ErrDuplicateEntry].
//
// Calls POST /api/users/{userId}/{listId}/add.
func (c *CineService) AddToListByID(ctx context.Context, userID, listID, movieID int64) error {
	payload := map[string]int64{"movieId": movieID}
	endpoint := fmt.Sprintf("/api/users/%d/%d/add", userID, listID)
	err := c.doRequest(ctx, http.MethodPost, endpoint, payload, nil, authRequired)
	if err != nil && isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %v", shared.ErrListNotFound, err)
	}
	return err
}

// DeleteList deletes a list and its movie entries.
//
// Calls DELETE /api/movies/{listId}.
func (c *CineService) DeleteList(ctx context.Context, listID int64) error {
	endpoint := fmt.Sprintf("/api/movies/%d", listID)
	err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, authRequired)
	if err != nil && isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %d", shared.ErrListNotFound, listID)
	}
	return err
}

// RemoveFromList removes a single movie from a list.
//
// Calls DELETE /api/movies/{listId}/movies/{movieId}.
func (c *CineService) RemoveFromList(ctx context.Context, listID, movieID int64) error {
	endpoint := fmt.Sprintf("/api/movies/%d/movies/%d", listID, movieID)
	err := c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil, authRequired)
	if err != nil && isStatus(err, http.StatusNotFound) {
		return fmt.Errorf("%w: %d", shared.ErrListNotFound, listID)
	}
	return err
}

// RecordView appends a movie to the user's watch history. The server
// deduplicates, so viewing a movie twice records one entry.
//
// Calls POST /api/movies/{userId}/history.
func (c *CineService) RecordView(ctx context.Context, userID, movieID int64) error {
	payload := map[string]int64{"movie_id": movieID}
	endpoint := fmt.Sprintf("/api/movies/%d/history", userID)
	return c.doRequest(ctx, http.MethodPost, endpoint, payload, nil, authRequired)
}

// Profile retrieves a user's profile with genre preferences and watch history.
//
// Calls GET /api/users/{id}.
func (c *CineService) Profile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	var profile models.UserProfile
	endpoint := fmt.Sprintf("/api/users/%d", userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &profile, authRequired); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateGenres replaces the user's preferred genres. Names are validated
// against the supported catalog before the request is sent.
//
// Calls PUT /api/users/{id}/genres.
func (c *CineService) UpdateGenres(ctx context.Context, userID int64, genres []string) error {
	for _, name := range genres {
		if !models.ValidGenre(name) {
			return fmt.Errorf("%w: unknown genre %q", shared.ErrInvalidInput, name)
		}
	}

	payload := map[string][]string{"preferred_genres": genres}
	endpoint := fmt.Sprintf("/api/users/%d/genres", userID)
	return c.doRequest(ctx, http.MethodPut, endpoint, payload, nil, authRequired)
}

// Recommend retrieves personalized recommendations with the server's
// strategy tag.
//
// Calls GET /api/movies/{userId}/recommend.
func (c *CineService) Recommend(ctx context.Context, userID int64, top int) (*models.RecommendationSet, error) {
	if top <= 0 {
		top = 10
	}

	var set models.RecommendationSet
	endpoint := fmt.Sprintf("/api/movies/%d/recommend?top=%d", userID, top)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &set, authRequired); err != nil {
		return nil, err
	}
	return &set, nil
}

// PopularByPreference retrieves the most popular movies within each of the
// user's preferred genres, flattened in the server's genre order.
//
// Calls GET /api/users/{id}/popular-by-preference.
func (c *CineService) PopularByPreference(ctx context.Context, userID int64) ([]models.MovieSummary, error) {
	// The server wraps the per-genre map in a popular_movies envelope.
	var resp struct {
		PopularMovies map[string][]struct {
			MovieID     int64   `json:"movie_id"`
			Title       string  `json:"title"`
			PosterURL   *string `json:"poster_url"`
			ReleaseDate string  `json:"release_date"`
			Popularity  float64 `json:"popularity"`
		} `json:"popular_movies"`
	}

	endpoint := fmt.Sprintf("/api/users/%d/popular-by-preference", userID)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &resp, authRequired); err != nil {
		return nil, err
	}

	var movies []models.MovieSummary
	seen := make(map[int64]bool)
	for _, name := range models.PreferredGenres {
		for _, m := range resp.PopularMovies[name] {
			if seen[m.MovieID] {
				continue
			}
			seen[m.MovieID] = true
			movies = append(movies, models.MovieSummary{
				ID:          m.MovieID,
				Title:       m.Title,
				ReleaseDate: m.ReleaseDate,
				PosterURL:   m.PosterURL,
			})
		}
	}
	return movies, nil
}

// LoginResult is the response of a successful login.
type LoginResult struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token. The caller decodes the
// token and transitions the session.
//
// Calls POST /api/auth/login.
func (c *CineService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput)
	}

	payload := map[string]string{"email": email, "password": password}

	var result LoginResult
	if err := c.doRequest(ctx, http.MethodPost, "/api/auth/login", payload, &result, authNone); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, fmt.Errorf("%w: server returned no token", shared.ErrAuthFailed)
	}
	return &result, nil
}

// Register creates an account with an age and initial genre preferences.
// Registering does not log in; callers follow up with Login.
//
// Calls POST /api/auth/register.
func (c *CineService) Register(ctx context.Context, email, password string, age int, genres []string) error {
	if email == "" || password == "" {
		return fmt.Errorf("%w: email and password are required", shared.ErrInvalidInput)
	}
	if age <= 0 {
		return fmt.Errorf("%w: age is required", shared.ErrInvalidInput)
	}
	for _, name := range genres {
		if !models.ValidGenre(name) {
			return fmt.Errorf("%w: unknown genre %q", shared.ErrInvalidInput, name)
		}
	}

	payload := map[string]any{
		"email":          email,
		"password":       password,
		"age":            age,
		"selectedGenres": genres,
	}
	return c.doRequest(ctx, http.MethodPost, "/api/auth/register", payload, nil, authNone)
}
