package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cineia/cinex/internal/formatter"
	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts contains configuration for bulk list exports.
type BulkExportOpts struct {
	Format     string  // Export format: json, csv, markdown, txt
	OutputDir  string  // Base output directory (default: cinex_export_{epoch})
	NumWorkers int     // Concurrent workers (default: 5)
	RateLimit  float64 // Requests per second (default: 5)
}

// ListExportJob carries one resolved list into the worker pool.
type ListExportJob struct {
	ListID int64
	Export *models.ListExport
}

// ListExportResult describes the outcome of exporting a single list.
type ListExportResult struct {
	ListID   int64    `json:"list_id"`
	ListName string   `json:"list_name"`
	Success  bool     `json:"success"`
	Files    []string `json:"files,omitempty"`
	Error    error    `json:"-"`
	ErrorMsg string   `json:"error,omitempty"`
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalLists        int                `json:"total_lists"`
	SuccessfulExports int                `json:"successful_exports"`
	FailedExports     int                `json:"failed_exports"`
	OutputDirectory   string             `json:"output_directory"`
	Format            string             `json:"format"`
	Results           []ListExportResult `json:"results"`
	ManifestPath      string             `json:"-"`
}

// BulkExport exports multiple lists concurrently with rate limiting and progress tracking.
//
// This method implements a worker pool pattern to efficiently export multiple lists.
// It respects API rate limits, handles partial failures gracefully, and generates a manifest file summarizing the export results.
func (e *LibraryEngine) BulkExport(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	userID int64,
	listIDs []int64,
	opts BulkExportOpts,
) (*BulkExportResult, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("cinex_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	e.sendProgress(prog, fetchingListsUpdate(1, 1))

	lists, err := e.svc.Lists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lists: %w", err)
	}

	names := make(map[int64]string, len(lists))
	for _, list := range lists {
		names[list.ID] = list.Name
	}

	if len(listIDs) == 0 {
		for _, list := range lists {
			listIDs = append(listIDs, list.ID)
		}
	}

	result := &BulkExportResult{
		TotalLists:      len(listIDs),
		OutputDirectory: opts.OutputDir,
		Format:          opts.Format,
		Results:         make([]ListExportResult, 0, len(listIDs)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan ListExportJob, len(listIDs))
	results := make(chan ListExportResult, len(listIDs))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, listID := range listIDs {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			name, ok := names[listID]
			if !ok {
				results <- ListExportResult{
					ListID:   listID,
					ListName: fmt.Sprintf("Unknown (%d)", listID),
					Success:  false,
					Error:    fmt.Errorf("%w: %d", shared.ErrListNotFound, listID),
				}
				continue
			}

			export, err := e.resolveList(ctx, limiter, models.List{ID: listID, Name: name})
			if err != nil {
				results <- ListExportResult{
					ListID:   listID,
					ListName: name,
					Success:  false,
					Error:    fmt.Errorf("failed to resolve list: %w", err),
				}
				continue
			}

			jobs <- ListExportJob{ListID: listID, Export: export}

			e.sendProgress(prog, exportingListUpdate(i+1, len(listIDs), name))
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.ErrorMsg = res.Error.Error()
		}
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(listIDs), res.ListName, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(listIDs), res.ListName, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	manifest, err := shared.MarshalJSON(result, true)
	if err != nil {
		return result, fmt.Errorf("export completed but failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(manifestPath, manifest, 0644); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// resolveList fetches a list's movie ids and resolves each to a summary,
// waiting on the limiter before every request.
func (e *LibraryEngine) resolveList(ctx context.Context, limiter *rate.Limiter, list models.List) (*models.ListExport, error) {
	if err := limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ids, err := e.svc.ListMovies(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	export := &models.ListExport{List: list, Movies: make([]models.MovieSummary, 0, len(ids))}

	for _, id := range ids {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}

		detail, err := e.svc.Movie(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("movie %d: %w", id, err)
		}

		export.Movies = append(export.Movies, models.MovieSummary{
			ID:          detail.ID,
			Title:       detail.Title,
			ReleaseDate: detail.ReleaseDate,
			PosterURL:   detail.PosterURL,
			Rating:      &detail.VoteAverage,
		})
	}

	return export, nil
}

// exportWorker is a worker goroutine that exports lists from the jobs channel.
func (e *LibraryEngine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan ListExportJob,
	results chan<- ListExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.exportSingleList(job, opts)
	}
}

// fileBase derives a filesystem-safe base name for a list.
func fileBase(job ListExportJob) string {
	name := strings.ToLower(strings.TrimSpace(job.Export.List.Name))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
	if name == "" {
		return fmt.Sprintf("list_%d", job.ListID)
	}
	return fmt.Sprintf("%s_%d", name, job.ListID)
}

// exportSingleList exports a single list to the appropriate format.
func (e *LibraryEngine) exportSingleList(j ListExportJob, opts BulkExportOpts) ListExportResult {
	result := ListExportResult{
		ListID:   j.ListID,
		ListName: j.Export.List.Name,
		Success:  false,
		Files:    []string{},
	}

	base := fileBase(j)

	switch opts.Format {
	case "csv":
		baseFilepath := filepath.Join(opts.OutputDir, base)
		csvRes, err := formatter.WriteCSVExport(j.Export, baseFilepath)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.MoviesFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		outputDir := filepath.Join(opts.OutputDir, base)
		mdFile, err := formatter.WriteMarkdownExport(j.Export, outputDir)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = []string{mdFile}
		result.Success = true

	case "txt":
		txtPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_movies.txt", base))
		written, err := formatter.WriteTextExport(j.Export, txtPath)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	case "json":
		fallthrough
	default:
		jsonPath := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", base))
		data, err := shared.MarshalJSON(j.Export, true)
		if err != nil {
			result.Error = fmt.Errorf("JSON marshal failed: %w", err)
			return result
		}
		if err := os.WriteFile(jsonPath, data, 0644); err != nil {
			result.Error = fmt.Errorf("JSON write failed: %w", err)
			return result
		}
		result.Files = []string{jsonPath}
		result.Success = true
	}
	return result
}
