// package formatter provides functions to export movie list data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/shared"
)

func posterString(url *string) string {
	if url == nil {
		return ""
	}
	return *url
}

func ratingString(rating *float64) string {
	if rating == nil {
		return ""
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

// ExportToCSV converts a ListExport to CSV format with columns: ID, Title, Release Date, Rating, Poster URL
func ExportToCSV(export *models.ListExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Release Date", "Rating", "Poster URL"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range export.Movies {
		record := []string{
			strconv.FormatInt(movie.ID, 10),
			movie.Title,
			movie.ReleaseDate,
			ratingString(movie.Rating),
			posterString(movie.PosterURL),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a ListExport to Markdown format
func ExportToMarkdown(export *models.ListExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.List.Name))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(export.Movies)))

	buf.WriteString("## Movies\n\n")
	for i, movie := range export.Movies {
		yearPart := ""
		if year := shared.ReleaseYear(movie.ReleaseDate); year != "" {
			yearPart = fmt.Sprintf(" (%s)", year)
		}
		ratingPart := ""
		if movie.Rating != nil {
			ratingPart = fmt.Sprintf(" [%s]", ratingString(movie.Rating))
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s%s\n", i+1, movie.Title, yearPart, ratingPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a ListExport to plain text format
func ExportToText(export *models.ListExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("List: %s\n", export.List.Name))
	buf.WriteString(fmt.Sprintf("Movies: %d\n\n", len(export.Movies)))

	for i, movie := range export.Movies {
		if year := shared.ReleaseYear(movie.ReleaseDate); year != "" {
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, movie.Title, year))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, movie.Title))
		}
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of list metadata (without movies)
func ToMetadataJSON(list models.List) ([]byte, error) {
	return shared.MarshalJSON(list, true)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	MoviesFile   string
	MetadataFile string
}

// WriteCSVExport exports a list to CSV format with accompanying metadata JSON file.
//
// Defaults to the list id as the base filename & creates {base}_movies.csv and {base}_metadata.json
func WriteCSVExport(export *models.ListExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = strconv.FormatInt(export.List.ID, 10)
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	moviesFile := baseFilepath + "_movies.csv"
	if err := os.WriteFile(moviesFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export.List)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		MoviesFile:   moviesFile,
		MetadataFile: metadataFile,
	}, nil
}

// WriteMarkdownExport exports a list to Markdown format in a dedicated directory.
//
// Directory name defaults to the list id. Creates {dir}/README.md.
func WriteMarkdownExport(export *models.ListExport, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = strconv.FormatInt(export.List.ID, 10)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := fmt.Sprintf("%s/README.md", outputDir)
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return mdFile, nil
}

// WriteTextExport exports a list to plain text format.
//
// Defaults to {list id}_movies.txt as the filename.
func WriteTextExport(export *models.ListExport, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%d_movies.txt", export.List.ID)
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
