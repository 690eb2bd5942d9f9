package tasks

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLibraryEngine_BulkExport(t *testing.T) {
	ctx := context.Background()

	t.Run("exports all lists as JSON by default", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewLibraryEngine(fullService(), nil, nil)

		result, err := engine.BulkExport(ctx, nil, 7, nil, BulkExportOpts{OutputDir: dir, RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		if result.TotalLists != 2 || result.SuccessfulExports != 2 || result.FailedExports != 0 {
			t.Errorf("unexpected counts %+v", result)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read output dir: %v", err)
		}
		// 2 list files + manifest
		if len(entries) != 3 {
			t.Errorf("expected 3 output files, got %d", len(entries))
		}

		if result.ManifestPath == "" {
			t.Fatal("expected a manifest path")
		}
		data, err := os.ReadFile(result.ManifestPath)
		if err != nil {
			t.Fatalf("failed to read manifest: %v", err)
		}
		var manifest map[string]any
		if err := json.Unmarshal(data, &manifest); err != nil {
			t.Fatalf("manifest is not valid JSON: %v", err)
		}
		if manifest["successful_exports"] != float64(2) {
			t.Errorf("unexpected manifest %v", manifest)
		}
	})

	t.Run("exports a selected list as CSV", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewLibraryEngine(fullService(), nil, nil)

		result, err := engine.BulkExport(ctx, nil, 7, []int64{3}, BulkExportOpts{
			Format:    "csv",
			OutputDir: dir,
			RateLimit: 1000,
		})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		if result.SuccessfulExports != 1 {
			t.Fatalf("expected 1 successful export, got %d", result.SuccessfulExports)
		}

		csvFile := filepath.Join(dir, "watch_later_3_movies.csv")
		data, err := os.ReadFile(csvFile)
		if err != nil {
			t.Fatalf("expected CSV output at %s: %v", csvFile, err)
		}
		if !strings.Contains(string(data), "Fight Club") {
			t.Errorf("CSV missing resolved movie title, got: %s", data)
		}
	})

	t.Run("reports unknown lists as failures", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewLibraryEngine(fullService(), nil, nil)

		result, err := engine.BulkExport(ctx, nil, 7, []int64{3, 99}, BulkExportOpts{OutputDir: dir, RateLimit: 1000})
		if err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}

		if result.SuccessfulExports != 1 || result.FailedExports != 1 {
			t.Errorf("expected 1 success and 1 failure, got %+v", result)
		}

		for _, res := range result.Results {
			if res.ListID == 99 {
				if res.Success || res.ErrorMsg == "" {
					t.Errorf("expected failure detail for unknown list, got %+v", res)
				}
			}
		}
	})

	t.Run("emits export progress", func(t *testing.T) {
		dir := t.TempDir()
		engine := NewLibraryEngine(fullService(), nil, nil)

		progress := make(chan ProgressUpdate, 32)
		if _, err := engine.BulkExport(ctx, progress, 7, nil, BulkExportOpts{OutputDir: dir, RateLimit: 1000}); err != nil {
			t.Fatalf("BulkExport failed: %v", err)
		}
		close(progress)

		sawExport := false
		for update := range progress {
			if update.Phase == ExportList {
				sawExport = true
			}
		}
		if !sawExport {
			t.Error("expected export progress updates")
		}
	})

	t.Run("fails without a service", func(t *testing.T) {
		engine := NewLibraryEngine(nil, nil, nil)
		if _, err := engine.BulkExport(ctx, nil, 7, nil, BulkExportOpts{OutputDir: t.TempDir(), RateLimit: 1000}); err == nil {
			t.Error("expected error for missing service")
		}
	})

	t.Run("fails when lists cannot be fetched", func(t *testing.T) {
		svc := fullService()
		svc.listsErr = os.ErrDeadlineExceeded
		engine := NewLibraryEngine(svc, nil, nil)

		if _, err := engine.BulkExport(ctx, nil, 7, nil, BulkExportOpts{OutputDir: t.TempDir(), RateLimit: 1000}); err == nil {
			t.Error("expected error when lists are unavailable")
		}
	})
}
