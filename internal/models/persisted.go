package models

import (
	"fmt"
	"time"
)

var (
	_ Model = (*CachedMovie)(nil)
	_ Model = (*HistoryEntry)(nil)
)

// base carries the lifecycle fields shared by all persistent entities.
type base struct {
	id        string
	sequence  int
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

func (b *base) ID() string                  { return b.id }
func (b *base) Sequence() int               { return b.sequence }
func (b *base) CreatedAt() time.Time        { return b.createdAt }
func (b *base) UpdatedAt() time.Time        { return b.updatedAt }
func (b *base) DeletedAt() *time.Time       { return b.deletedAt }
func (b *base) SetID(id string)             { b.id = id }
func (b *base) SetUpdatedAt(t time.Time)    { b.updatedAt = t }
func (b *base) SetDeletedAt(t *time.Time)   { b.deletedAt = t }

// CachedMovie is a locally cached copy of a remote movie summary.
//
// The remote API stays authoritative; cached rows are invalidated by
// re-fetch, never edited locally.
type CachedMovie struct {
	base
	remoteID    int64
	title       string
	releaseDate string
	posterURL   *string
	rating      *float64
	overview    string
}

// NewCachedMovie creates a CachedMovie from a remote summary.
func NewCachedMovie(sequence int, summary MovieSummary) *CachedMovie {
	now := time.Now()
	return &CachedMovie{
		base:        base{sequence: sequence, createdAt: now, updatedAt: now},
		remoteID:    summary.ID,
		title:       summary.Title,
		releaseDate: summary.ReleaseDate,
		posterURL:   summary.PosterURL,
		rating:      summary.Rating,
	}
}

func (m *CachedMovie) RemoteID() int64     { return m.remoteID }
func (m *CachedMovie) Title() string       { return m.title }
func (m *CachedMovie) ReleaseDate() string { return m.releaseDate }
func (m *CachedMovie) PosterURL() *string  { return m.posterURL }
func (m *CachedMovie) Rating() *float64    { return m.rating }
func (m *CachedMovie) Overview() string    { return m.overview }

func (m *CachedMovie) SetOverview(overview string) { m.overview = overview }

// Validate checks that the cached movie carries its remote identity.
func (m *CachedMovie) Validate() error {
	if m.remoteID <= 0 {
		return fmt.Errorf("cached movie requires a positive remote id")
	}
	if m.title == "" {
		return fmt.Errorf("cached movie requires a title")
	}
	return nil
}

// Summary converts the cached row back to a MovieSummary.
func (m *CachedMovie) Summary() MovieSummary {
	return MovieSummary{
		ID:          m.remoteID,
		Title:       m.title,
		ReleaseDate: m.releaseDate,
		PosterURL:   m.posterURL,
		Rating:      m.rating,
	}
}

// HistoryEntry is a local copy of one remote watch-history record.
type HistoryEntry struct {
	base
	userID   int64
	movieID  int64
	title    string
	viewedAt string
}

// NewHistoryEntry creates a HistoryEntry for the given user and viewed movie.
func NewHistoryEntry(sequence int, userID int64, viewed ViewedMovie) *HistoryEntry {
	now := time.Now()
	return &HistoryEntry{
		base:     base{sequence: sequence, createdAt: now, updatedAt: now},
		userID:   userID,
		movieID:  viewed.MovieID,
		title:    viewed.Title,
		viewedAt: viewed.Date,
	}
}

func (h *HistoryEntry) UserID() int64    { return h.userID }
func (h *HistoryEntry) MovieID() int64   { return h.movieID }
func (h *HistoryEntry) Title() string    { return h.title }
func (h *HistoryEntry) ViewedAt() string { return h.viewedAt }

// Validate checks that the entry links a user to a movie.
func (h *HistoryEntry) Validate() error {
	if h.userID <= 0 {
		return fmt.Errorf("history entry requires a positive user id")
	}
	if h.movieID <= 0 {
		return fmt.Errorf("history entry requires a positive movie id")
	}
	return nil
}
