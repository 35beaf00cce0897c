package adapter

import (
	"context"
	"iter"
)

// Page is one page of a cursor-paginated listing.
type Page[T any] struct {
	Items     []T
	NextToken string
}

// PageFetcher loads the page identified by token ("" for the first page).
type PageFetcher[T any] func(ctx context.Context, token string) (Page[T], error)

// Pager walks a cursor-paginated listing forward, one page per call to Next.
//
// The cursor for the following page is always read from the previous
// response; a response without a next-page token ends the sequence. A failed
// fetch leaves the cursor untouched, so calling Next again retries the same
// page. A Pager cannot be rewound.
type Pager[T any] struct {
	fetch PageFetcher[T]
	token string
	done  bool
	pages int
}

// NewPager returns a pager starting at startToken ("" for the beginning).
func NewPager[T any](fetch PageFetcher[T], startToken string) *Pager[T] {
	return &Pager[T]{fetch: fetch, token: startToken}
}

// Next fetches the next page. It returns [ErrPagerExhausted] once the last
// page has been returned.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, ErrPagerExhausted
	}

	page, err := p.fetch(ctx, p.token)
	if err != nil {
		return nil, err
	}

	p.pages++
	p.token = page.NextToken
	if page.NextToken == "" {
		p.done = true
	}
	return page.Items, nil
}

// Done reports whether the last page has been returned.
func (p *Pager[T]) Done() bool {
	return p.done
}

// Cursor returns the token of the next page to fetch. Persisting it lets a
// new pager resume where this one stopped.
func (p *Pager[T]) Cursor() string {
	return p.token
}

// Pages returns how many pages were fetched so far.
func (p *Pager[T]) Pages() int {
	return p.pages
}

// All iterates over every remaining item. Iteration stops after yielding the
// first fetch error.
func (p *Pager[T]) All(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for !p.done {
			items, err := p.Next(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
		}
	}
}
