// Package pager implements the incremental list-loading pattern shared by the
// browse, search, and recommendation views.
//
// A [Pager] accumulates fixed-size pages from a caller-supplied fetch
// function. Pages are appended in order and never re-fetched; the cursor only
// advances. Fetched items are not deduplicated against earlier pages, so an
// item that moves between pages across two loads can appear twice or be
// skipped. That matches the upstream behavior and is deliberately left as is.
package pager

import (
	"context"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 24

// FetchFunc retrieves one page of items. Implementations are expected to
// return fewer than size items (or none) on the final page.
type FetchFunc[T any] func(ctx context.Context, page, size int) ([]T, error)

// Pager owns the incremental loading state for a single view: the
// accumulated items, the next page cursor, and the exhaustion flag.
//
// A Pager belongs to the view that created it and is not safe for use from
// multiple goroutines.
type Pager[T any] struct {
	fetch   FetchFunc[T]
	size    int
	items   []T
	page    int
	hasMore bool
	loading bool
	err     error
}

// New creates a Pager over fetch with the given page size.
// A non-positive size falls back to [DefaultPageSize].
func New[T any](fetch FetchFunc[T], size int) *Pager[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager[T]{
		fetch:   fetch,
		size:    size,
		page:    1,
		hasMore: true,
	}
}

// LoadNext fetches the next page and appends it to the accumulated items.
//
// It is a no-op when the list is exhausted or a load is already in flight.
// On failure the accumulated items and cursor are left untouched and the
// error is retained; exhaustion is not inferred from a failed fetch, so a
// later call retries the same page.
func (p *Pager[T]) LoadNext(ctx context.Context) error {
	if !p.hasMore || p.loading {
		return nil
	}

	p.loading = true
	items, err := p.fetch(ctx, p.page, p.size)
	p.loading = false

	if err != nil {
		p.err = err
		return err
	}

	p.items = append(p.items, items...)
	p.hasMore = len(items) == p.size
	p.page++
	p.err = nil

	return nil
}

// Items returns the accumulated items across all loaded pages.
func (p *Pager[T]) Items() []T { return p.items }

// Page returns the next page cursor to be requested.
func (p *Pager[T]) Page() int { return p.page }

// HasMore reports whether another page may be available.
func (p *Pager[T]) HasMore() bool { return p.hasMore }

// Loading reports whether a load is currently in flight.
func (p *Pager[T]) Loading() bool { return p.loading }

// Err returns the error from the most recent failed load, cleared by the
// next successful one.
func (p *Pager[T]) Err() error { return p.err }

// Len returns the number of accumulated items.
func (p *Pager[T]) Len() int { return len(p.items) }
