package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/cineia/cinex/internal/models"
	"github.com/cineia/cinex/internal/shared"
)

var (
	_ list.Item = movieItem{}
)

// movieItem wraps [models.MovieSummary] to implement [list.Item].
type movieItem struct {
	movie models.MovieSummary
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := shared.ReleaseYear(i.movie.ReleaseDate)
	if desc == "" {
		desc = "unknown year"
	}
	if i.movie.Rating != nil {
		desc = fmt.Sprintf("%s • %.1f", desc, *i.movie.Rating)
	}
	return desc
}

func movieItems(movies []models.MovieSummary) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}
