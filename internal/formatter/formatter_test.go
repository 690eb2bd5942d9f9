package formatter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cineia/cinex/internal/models"
)

func sampleExport() *models.ListExport {
	poster := "https://image.tmdb.org/t/p/w500/abc.jpg"
	rating := 8.4
	return &models.ListExport{
		List: models.List{ID: 3, Name: "watch later"},
		Movies: []models.MovieSummary{
			{ID: 550, Title: "Fight Club", ReleaseDate: "1999-10-15", PosterURL: &poster, Rating: &rating},
			{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-31"},
		},
	}
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "ID,Title,Release Date,Rating,Poster URL") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, "550,Fight Club,1999-10-15,8.4") {
			t.Errorf("CSV missing first record, got: %s", output)
		}
		// movies with no rating or poster export empty columns
		if !strings.Contains(output, "603,The Matrix,1999-03-31,,") {
			t.Errorf("CSV missing second record, got: %s", output)
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "# watch later") {
			t.Errorf("Markdown missing title heading, got: %s", output)
		}
		if !strings.Contains(output, "**Movies**: 2") {
			t.Errorf("Markdown missing movie count, got: %s", output)
		}
		if !strings.Contains(output, "1. Fight Club (1999) [8.4]") {
			t.Errorf("Markdown missing rated entry, got: %s", output)
		}
		if !strings.Contains(output, "2. The Matrix (1999)") {
			t.Errorf("Markdown missing unrated entry, got: %s", output)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)

		if !strings.Contains(output, "List: watch later") {
			t.Errorf("text missing list name, got: %s", output)
		}
		if !strings.Contains(output, "1. Fight Club (1999)") {
			t.Errorf("text missing first entry, got: %s", output)
		}
	})

	t.Run("ToMetadataJSON", func(t *testing.T) {
		data, err := ToMetadataJSON(sampleExport().List)
		if err != nil {
			t.Fatalf("ToMetadataJSON failed: %v", err)
		}

		output := string(data)
		if !strings.Contains(output, `"list_name": "watch later"`) {
			t.Errorf("metadata JSON missing list name, got: %s", output)
		}
	})
}

func TestFileExports(t *testing.T) {
	t.Run("WriteCSVExport", func(t *testing.T) {
		base := filepath.Join(t.TempDir(), "watch_later")

		result, err := WriteCSVExport(sampleExport(), base)
		if err != nil {
			t.Fatalf("WriteCSVExport failed: %v", err)
		}

		if result.MoviesFile != base+"_movies.csv" {
			t.Errorf("unexpected movies file %s", result.MoviesFile)
		}
		if _, err := os.Stat(result.MoviesFile); err != nil {
			t.Errorf("movies file not written: %v", err)
		}
		if _, err := os.Stat(result.MetadataFile); err != nil {
			t.Errorf("metadata file not written: %v", err)
		}
	})

	t.Run("WriteMarkdownExport", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "watch_later")

		mdFile, err := WriteMarkdownExport(sampleExport(), dir)
		if err != nil {
			t.Fatalf("WriteMarkdownExport failed: %v", err)
		}

		data, err := os.ReadFile(mdFile)
		if err != nil {
			t.Fatalf("failed to read markdown output: %v", err)
		}
		if !strings.Contains(string(data), "# watch later") {
			t.Errorf("markdown output missing heading")
		}
	})

	t.Run("WriteTextExport", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "watch_later.txt")

		written, err := WriteTextExport(sampleExport(), path)
		if err != nil {
			t.Fatalf("WriteTextExport failed: %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("text file not written: %v", err)
		}
	})
}
