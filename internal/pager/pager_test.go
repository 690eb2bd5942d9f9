package pager

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// pageFetcher returns pages of sequential ints with configurable counts and
// per-page failures.
func pageFetcher(counts map[int]int, failures map[int]error) FetchFunc[int] {
	return func(ctx context.Context, page, size int) ([]int, error) {
		if err, ok := failures[page]; ok && err != nil {
			return nil, err
		}
		n := counts[page]
		items := make([]int, n)
		for i := range items {
			items[i] = (page-1)*size + i
		}
		return items, nil
	}
}

func TestPager(t *testing.T) {
	ctx := context.Background()

	t.Run("accumulates pages until a short page", func(t *testing.T) {
		fetch := pageFetcher(map[int]int{1: 24, 2: 24, 3: 10}, nil)
		p := New(fetch, 24)

		for i := 0; i < 3; i++ {
			if err := p.LoadNext(ctx); err != nil {
				t.Fatalf("load %d failed: %v", i+1, err)
			}
		}

		if p.Len() != 58 {
			t.Errorf("expected 58 accumulated items, got %d", p.Len())
		}
		if p.HasMore() {
			t.Error("expected hasMore to be false after a short page")
		}
	})

	t.Run("loadNext after exhaustion is a no-op", func(t *testing.T) {
		fetch := pageFetcher(map[int]int{1: 5}, nil)
		p := New(fetch, 24)

		if err := p.LoadNext(ctx); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		page := p.Page()

		if err := p.LoadNext(ctx); err != nil {
			t.Fatalf("exhausted load should be a no-op: %v", err)
		}
		if p.Len() != 5 {
			t.Errorf("expected 5 items, got %d", p.Len())
		}
		if p.Page() != page {
			t.Errorf("cursor moved on exhausted pager: %d -> %d", page, p.Page())
		}
	})

	t.Run("failure preserves state and retry appends without duplication", func(t *testing.T) {
		failErr := errors.New("boom")
		failures := map[int]error{2: failErr}
		fetch := pageFetcher(map[int]int{1: 24, 2: 24, 3: 10}, failures)
		p := New(fetch, 24)

		if err := p.LoadNext(ctx); err != nil {
			t.Fatalf("page 1 load failed: %v", err)
		}

		if err := p.LoadNext(ctx); !errors.Is(err, failErr) {
			t.Fatalf("expected fetch error, got %v", err)
		}

		if p.Len() != 24 {
			t.Errorf("failed load should not change items, got %d", p.Len())
		}
		if p.Page() != 2 {
			t.Errorf("failed load should not advance cursor, got page %d", p.Page())
		}
		if !p.HasMore() {
			t.Error("failure must not be read as exhaustion")
		}
		if p.Err() == nil {
			t.Error("expected retained error")
		}

		// Retry succeeds and appends page 2 exactly once.
		delete(failures, 2)
		if err := p.LoadNext(ctx); err != nil {
			t.Fatalf("retry failed: %v", err)
		}

		if p.Len() != 48 {
			t.Errorf("expected 48 items after retry, got %d", p.Len())
		}
		if p.Err() != nil {
			t.Errorf("expected error cleared after success, got %v", p.Err())
		}

		seen := map[int]bool{}
		for _, item := range p.Items() {
			if seen[item] {
				t.Fatalf("duplicate item %d after retry", item)
			}
			seen[item] = true
		}
	})

	t.Run("loadNext while loading is a no-op", func(t *testing.T) {
		var p *Pager[int]
		calls := 0
		fetch := func(ctx context.Context, page, size int) ([]int, error) {
			calls++
			// Re-entrant call during an in-flight load must not fetch again.
			if calls == 1 {
				if err := p.LoadNext(ctx); err != nil {
					return nil, fmt.Errorf("re-entrant load errored: %w", err)
				}
			}
			return make([]int, size), nil
		}
		p = New(fetch, 24)

		if err := p.LoadNext(ctx); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if calls != 1 {
			t.Errorf("expected a single fetch, got %d", calls)
		}
	})

	t.Run("default page size", func(t *testing.T) {
		p := New(pageFetcher(nil, nil), 0)
		if p.size != DefaultPageSize {
			t.Errorf("expected default page size %d, got %d", DefaultPageSize, p.size)
		}
	})

	t.Run("empty first page exhausts immediately", func(t *testing.T) {
		p := New(pageFetcher(map[int]int{1: 0}, nil), 24)
		if err := p.LoadNext(ctx); err != nil {
			t.Fatalf("load failed: %v", err)
		}
		if p.HasMore() {
			t.Error("expected exhaustion after empty page")
		}
		if p.Len() != 0 {
			t.Errorf("expected no items, got %d", p.Len())
		}
	})
}
