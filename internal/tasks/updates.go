package tasks

import (
	"fmt"

	"github.com/cineia/cinex/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchHealth Phase = iota
	FetchProfile
	FetchLists
	FetchListMovies
	FetchRecommendations
	FetchPopular
	SyncHistory
	ExportList
)

func (p Phase) String() string {
	switch p {
	case FetchHealth:
		return "fetch_health"
	case FetchProfile:
		return "fetch_profile"
	case FetchLists:
		return "fetch_lists"
	case FetchListMovies:
		return "fetch_list_movies"
	case FetchRecommendations:
		return "fetch_recommendations"
	case FetchPopular:
		return "fetch_popular"
	case SyncHistory:
		return "sync_history"
	case ExportList:
		return "export_list"
	default:
		return ""
	}
}

func operationUpdate(endpoint endpointOperation, step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   endpoint.phase,
		Step:    step,
		Total:   total,
		Message: endpoint.message,
	}
}

func syncHistoryUpdate(step, total int, viewed *models.ViewedMovie) ProgressUpdate {
	if viewed == nil {
		return ProgressUpdate{
			Phase:   SyncHistory,
			Step:    step,
			Total:   total,
			Message: "Syncing watch history...",
		}
	}
	return ProgressUpdate{
		Phase:   SyncHistory,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, viewed.Title),
	}
}

func fetchingListsUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLists,
		Step:    step,
		Total:   total,
		Message: "Fetching lists...",
	}
}

func exportingListUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Exporting: %s...", step, total, name),
	}
}

func exportCompletedUpdate(step, total int, name string, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d files)", step, total, name, filesCount),
	}
}

func exportFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
