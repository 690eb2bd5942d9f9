// package testing contains shared testing utilities
package testing

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cineia/cinex/internal/models"
)

// ForgeToken builds an unsigned compact JWT with the given claims for tests.
//
// The signature segment is a fixed placeholder; the client never verifies it.
func ForgeToken(email string, userID int64, exp time.Time) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))

	claims := map[string]any{"user_id": userID, "exp": exp.Unix()}
	if email != "" {
		claims["email"] = email
	}
	payload, _ := json.Marshal(claims)

	return fmt.Sprintf("%s.%s.%s", header, base64.RawURLEncoding.EncodeToString(payload), "forged")
}

// MockService is a test double for the movie service interface.
type MockService struct{}

func (m *MockService) Name() string { return "mock" }

func (m *MockService) RecentMovies(ctx context.Context, page, limit int) ([]models.MovieSummary, error) {
	return []models.MovieSummary{}, nil
}

func (m *MockService) TopMovies(ctx context.Context, page, limit int) ([]models.MovieSummary, error) {
	return []models.MovieSummary{}, nil
}

func (m *MockService) SearchMovies(ctx context.Context, query string, page, limit int) ([]models.MovieSummary, error) {
	return []models.MovieSummary{}, nil
}

func (m *MockService) Movie(ctx context.Context, movieID int64) (*models.MovieDetail, error) {
	return nil, nil
}

func (m *MockService) Rate(ctx context.Context, movieID int64, rating float64) error { return nil }
func (m *MockService) Favorite(ctx context.Context, movieID int64) error             { return nil }
func (m *MockService) Unfavorite(ctx context.Context, movieID int64) error           { return nil }

func (m *MockService) Comments(ctx context.Context, movieID int64) ([]models.Comment, error) {
	return []models.Comment{}, nil
}

func (m *MockService) AddComment(ctx context.Context, movieID int64, body string) error { return nil }

func (m *MockService) Lists(ctx context.Context, userID int64) ([]models.List, error) {
	return []models.List{}, nil
}

func (m *MockService) ListMovies(ctx context.Context, listID int64) ([]int64, error) {
	return []int64{}, nil
}

func (m *MockService) AddToList(ctx context.Context, movieID int64, listName string) error {
	return nil
}

func (m *MockService) AddToListByID(ctx context.Context, userID, listID, movieID int64) error {
	return nil
}

func (m *MockService) DeleteList(ctx context.Context, listID int64) error { return nil }

func (m *MockService) RemoveFromList(ctx context.Context, listID, movieID int64) error { return nil }

func (m *MockService) RecordView(ctx context.Context, userID, movieID int64) error { return nil }

func (m *MockService) Profile(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return &models.UserProfile{}, nil
}

func (m *MockService) UpdateGenres(ctx context.Context, userID int64, genres []string) error {
	return nil
}

func (m *MockService) Recommend(ctx context.Context, userID int64, top int) (*models.RecommendationSet, error) {
	return &models.RecommendationSet{}, nil
}

func (m *MockService) PopularByPreference(ctx context.Context, userID int64) ([]models.MovieSummary, error) {
	return []models.MovieSummary{}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// CountingRoundTripper counts round trips, used to assert that refused
// operations never reach the network.
type CountingRoundTripper struct {
	Calls int64
	next  http.RoundTripper
}

func NewCountingRoundTripper(next http.RoundTripper) *CountingRoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return &CountingRoundTripper{next: next}
}

func (c *CountingRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	atomic.AddInt64(&c.Calls, 1)
	return c.next.RoundTrip(r)
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
