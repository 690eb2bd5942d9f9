// package tasks implements account library operations against the movie API.
//
// The core abstraction is Engine, which orchestrates profile dumps, watch
// history sync, and bulk list exports.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/services"
	"github.com/cineia/cinex/internal/shared"
)

// EndpointResult represents the result of fetching data from a single API endpoint.
type EndpointResult struct {
	Endpoint string `json:"endpoint"`
	Data     any    `json:"data,omitempty"`
	Error    error  `json:"-"`
	ErrorMsg string `json:"error,omitempty"`
}

func endpointFailure(endpoint string, err error) EndpointResult {
	return EndpointResult{Endpoint: endpoint, Error: err, ErrorMsg: err.Error()}
}

// DumpResult contains all account data fetched from the API.
type DumpResult struct {
	Health          any                       `json:"health,omitempty"`
	Profile         *models.UserProfile       `json:"profile,omitempty"`
	Lists           []models.List             `json:"lists,omitempty"`
	ListMovies      map[int64][]int64         `json:"list_movies,omitempty"`
	Recommendations *models.RecommendationSet `json:"recommendations,omitempty"`
	Popular         []models.MovieSummary     `json:"popular,omitempty"`
	Errors          []EndpointResult          `json:"errors,omitempty"`
}

// SyncHistoryResult summarizes a watch-history sync into the local cache.
type SyncHistoryResult struct {
	Total  int              `json:"total"`
	Synced int              `json:"synced"`
	Errors []EndpointResult `json:"errors,omitempty"`
}

type endpointOperation struct {
	name    string
	phase   Phase
	message string
	fetch   func(ctx context.Context) error
}

// Engine defines long-running operations over the user's library.
type Engine interface {
	// Dump fetches all account data by retrieving health, profile, lists,
	// recommendations, and genre-popular movies, collecting per-endpoint errors.
	Dump(ctx context.Context, progress chan<- ProgressUpdate, userID int64) (*DumpResult, error)

	// SyncHistory mirrors the remote watch history into the local cache.
	SyncHistory(ctx context.Context, progress chan<- ProgressUpdate, userID int64) (*SyncHistoryResult, error)

	// BulkExport exports the user's lists to files concurrently.
	BulkExport(ctx context.Context, progress chan<- ProgressUpdate, userID int64, listIDs []int64, opts BulkExportOpts) (*BulkExportResult, error)
}

// APIClient defines the interface for making raw API requests.
// This abstraction allows for easier testing and decoupling from concrete implementation.
type APIClient interface {
	Get(ctx context.Context, path string) (*services.APIResponse, error)
}

// HistoryCacher persists watch-history entries locally.
// Implemented by repositories.HistoryRepository; duplicates are a no-op.
type HistoryCacher interface {
	Record(userID int64, viewed models.ViewedMovie) error
}

// LibraryEngine implements Engine for account library operations.
// Contains dependencies on the catalog service and raw API client.
type LibraryEngine struct {
	svc     services.Service
	api     APIClient
	history HistoryCacher
}

// NewLibraryEngine creates a new LibraryEngine with the provided dependencies.
// The history cacher is optional; without it SyncHistory is unavailable.
func NewLibraryEngine(svc services.Service, api APIClient, history HistoryCacher) *LibraryEngine {
	return &LibraryEngine{
		svc:     svc,
		api:     api,
		history: history,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *LibraryEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Dump fetches all account data from the API.
//
// Endpoint failures are collected in the result rather than aborting the
// dump, so a partial account snapshot is still useful.
func (e *LibraryEngine) Dump(ctx context.Context, progress chan<- ProgressUpdate, userID int64) (*DumpResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	result := &DumpResult{
		ListMovies: make(map[int64][]int64),
		Errors:     []EndpointResult{},
	}

	endpoints := []endpointOperation{
		// /health is optional on the server; a miss lands in Errors like any
		// other endpoint failure.
		{name: "health", phase: FetchHealth, message: "Fetching health status...", fetch: func(ctx context.Context) error {
			if e.api == nil {
				return fmt.Errorf("%w: API client not initialized", shared.ErrServiceUnavailable)
			}
			resp, err := e.api.Get(ctx, "/health")
			if err != nil {
				return err
			}
			if resp.StatusCode < 200 || resp.StatusCode >= 300 {
				return fmt.Errorf("status %d", resp.StatusCode)
			}
			result.Health = resp.JSONData
			return nil
		}},
		{name: "profile", phase: FetchProfile, message: "Fetching profile...", fetch: func(ctx context.Context) error {
			profile, err := e.svc.Profile(ctx, userID)
			if err != nil {
				return err
			}
			result.Profile = profile
			return nil
		}},
		{name: "lists", phase: FetchLists, message: "Fetching lists...", fetch: func(ctx context.Context) error {
			lists, err := e.svc.Lists(ctx, userID)
			if err != nil {
				return err
			}
			result.Lists = lists
			return nil
		}},
		{name: "list_movies", phase: FetchListMovies, message: "Fetching list movies...", fetch: func(ctx context.Context) error {
			for _, list := range result.Lists {
				ids, err := e.svc.ListMovies(ctx, list.ID)
				if err != nil {
					return fmt.Errorf("list %d: %w", list.ID, err)
				}
				result.ListMovies[list.ID] = ids
			}
			return nil
		}},
		{name: "recommendations", phase: FetchRecommendations, message: "Fetching recommendations...", fetch: func(ctx context.Context) error {
			set, err := e.svc.Recommend(ctx, userID, 10)
			if err != nil {
				return err
			}
			result.Recommendations = set
			return nil
		}},
		{name: "popular", phase: FetchPopular, message: "Fetching popular movies by preference...", fetch: func(ctx context.Context) error {
			movies, err := e.svc.PopularByPreference(ctx, userID)
			if err != nil {
				return err
			}
			result.Popular = movies
			return nil
		}},
	}

	totalSteps := len(endpoints)

	for i, endpoint := range endpoints {
		e.sendProgress(progress, operationUpdate(endpoint, i+1, totalSteps))

		if err := endpoint.fetch(ctx); err != nil {
			result.Errors = append(result.Errors, endpointFailure(endpoint.name, err))
		}
	}

	return result, nil
}

// SyncHistory mirrors the user's remote watch history into the local cache.
//
// Entries already cached are counted as synced; only persistence failures
// land in the error list.
func (e *LibraryEngine) SyncHistory(ctx context.Context, progress chan<- ProgressUpdate, userID int64) (*SyncHistoryResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if e.history == nil {
		return nil, fmt.Errorf("%w: history cache not initialized", shared.ErrServiceUnavailable)
	}

	profile, err := e.svc.Profile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	total := len(profile.CheckedMovies)
	result := &SyncHistoryResult{Total: total}

	e.sendProgress(progress, syncHistoryUpdate(0, total, nil))

	for i, viewed := range profile.CheckedMovies {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		e.sendProgress(progress, syncHistoryUpdate(i+1, total, &viewed))

		if err := e.history.Record(userID, viewed); err != nil {
			result.Errors = append(result.Errors, endpointFailure(fmt.Sprintf("history/%d", viewed.MovieID), err))
			continue
		}
		result.Synced++
	}

	return result, nil
}
