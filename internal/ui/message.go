package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cineia/cinex/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgMoviesFetched MsgKind = iota
	MsgSearchDebounce
	MsgSearchResults
	MsgDetailFetched
	MsgCommentsFetched
	MsgActionDone
)

// moviesFetchedMsg is the constructor for [MsgMoviesFetched]
func moviesFetchedMsg(tab browseTab, movies []models.MovieSummary, err error) Msg {
	return Msg{
		kind: MsgMoviesFetched,
		data: struct {
			tab    browseTab
			movies []models.MovieSummary
			err    error
		}{tab, movies, err},
	}
}

// searchDebounceMsg is the constructor for [MsgSearchDebounce]
func searchDebounceMsg(seq int) Msg {
	return Msg{kind: MsgSearchDebounce, data: seq}
}

// searchResultsMsg is the constructor for [MsgSearchResults]
func searchResultsMsg(movies []models.MovieSummary, err error) Msg {
	return Msg{
		kind: MsgSearchResults,
		data: struct {
			movies []models.MovieSummary
			err    error
		}{movies, err},
	}
}

// detailFetchedMsg is the constructor for [MsgDetailFetched]
func detailFetchedMsg(detail *models.MovieDetail, err error) Msg {
	return Msg{
		kind: MsgDetailFetched,
		data: struct {
			detail *models.MovieDetail
			err    error
		}{detail, err},
	}
}

// commentsFetchedMsg is the constructor for [MsgCommentsFetched]
func commentsFetchedMsg(comments []models.Comment, err error) Msg {
	return Msg{
		kind: MsgCommentsFetched,
		data: struct {
			comments []models.Comment
			err      error
		}{comments, err},
	}
}

// actionDoneMsg is the constructor for [MsgActionDone]
func actionDoneMsg(label string, err error) Msg {
	return Msg{
		kind: MsgActionDone,
		data: struct {
			label string
			err   error
		}{label, err},
	}
}
